package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/serverutils"
	"github.com/ramabhadrarao/face-recognition/internal/service"
)

type IAttendanceController interface {
	RegisterRoutes(r fiber.Router)
	Clock(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type attendanceController struct {
	service service.IAttendanceService
}

func NewAttendanceController(service service.IAttendanceService) IAttendanceController {
	return &attendanceController{service: service}
}

func (c *attendanceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/attendance/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/clock", c.Clock)
	h.Get("/logs/:employeeId", c.Logs)
}

func (c *attendanceController) Clock(ctx *fiber.Ctx) error {
	var req dto.ClockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Clock(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Attendance recorded", res))
}

func (c *attendanceController) Logs(ctx *fiber.Ctx) error {
	employeeId, err := uuid.Parse(ctx.Params("employeeId"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid employee id")
	}

	res, err := c.service.Logs(ctx.Context(), employeeId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get attendance logs", res))
}
