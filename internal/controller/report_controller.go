package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/serverutils"
	"github.com/ramabhadrarao/face-recognition/internal/service"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Monthly(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
}

func NewReportController(service service.IReportService) IReportController {
	return &reportController{service: service}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/monthly", c.Monthly)
}

func (c *reportController) Monthly(ctx *fiber.Ctx) error {
	req := dto.MonthlyReportRequest{
		Year:  ctx.QueryInt("year"),
		Month: ctx.QueryInt("month"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.MonthlyReport(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get monthly report", res))
}
