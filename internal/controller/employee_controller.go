package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/serverutils"
	"github.com/ramabhadrarao/face-recognition/internal/service"
)

type IEmployeeController interface {
	RegisterRoutes(r fiber.Router)
	Enroll(ctx *fiber.Ctx) error
	AddFaceImage(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type employeeController struct {
	service service.IEmployeeService
}

func NewEmployeeController(service service.IEmployeeService) IEmployeeController {
	return &employeeController{service: service}
}

func (c *employeeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/employee/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Enroll)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/face", c.AddFaceImage)
}

func (c *employeeController) Enroll(ctx *fiber.Ctx) error {
	var req dto.EnrollEmployeeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Enroll(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Employee enrolled", res))
}

func (c *employeeController) AddFaceImage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid employee id")
	}

	var req dto.AddFaceImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.EmployeeId = id

	res, err := c.service.AddFaceImage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Face image added", res))
}

func (c *employeeController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all employees", res))
}

func (c *employeeController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid employee id")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show employee", res))
}

func (c *employeeController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid employee id")
	}

	var req dto.UpdateEmployeeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Employee updated", res))
}

func (c *employeeController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid employee id")
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Employee deleted", struct{}{}))
}
