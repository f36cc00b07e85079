package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/serverutils"
	"github.com/ramabhadrarao/face-recognition/internal/service"
)

type ICaptureController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	StopSession(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	SetZoom(ctx *fiber.Ctx) error
	StepZoom(ctx *fiber.Ctx) error
	AutoFrame(ctx *fiber.Ctx) error
	CaptureStill(ctx *fiber.Ctx) error
	PendingArtifact(ctx *fiber.Ctx) error
}

type captureController struct {
	service service.ICaptureService
}

func NewCaptureController(service service.ICaptureService) ICaptureController {
	return &captureController{service: service}
}

func (c *captureController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/capture/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/session", c.StartSession)
	h.Delete("/session", c.StopSession)
	h.Get("/status", c.Status)
	h.Put("/zoom", c.SetZoom)
	h.Post("/zoom/step", c.StepZoom)
	h.Post("/auto-frame", c.AutoFrame)
	h.Post("/still", c.CaptureStill)
	h.Get("/still", c.PendingArtifact)
}

func (c *captureController) StartSession(ctx *fiber.Ctx) error {
	res, err := c.service.StartSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Capture session started", res))
}

func (c *captureController) StopSession(ctx *fiber.Ctx) error {
	c.service.StopSession()
	return ctx.JSON(serverutils.SuccessResponse("Capture session stopped", struct{}{}))
}

func (c *captureController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Capture status", c.service.Status()))
}

func (c *captureController) SetZoom(ctx *fiber.Ctx) error {
	var req dto.SetZoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetZoom(&req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Zoom updated", res))
}

func (c *captureController) StepZoom(ctx *fiber.Ctx) error {
	var req dto.StepZoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.StepZoom(&req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Zoom updated", res))
}

func (c *captureController) AutoFrame(ctx *fiber.Ctx) error {
	res, err := c.service.AutoFrame()
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Auto-frame applied", res))
}

func (c *captureController) CaptureStill(ctx *fiber.Ctx) error {
	res, err := c.service.CaptureStill()
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Still captured", res))
}

func (c *captureController) PendingArtifact(ctx *fiber.Ctx) error {
	res := c.service.PendingArtifact()
	if res == nil {
		return serverutils.NewAppError(fiber.StatusNotFound, "no pending capture")
	}
	return ctx.JSON(serverutils.SuccessResponse("Pending capture", res))
}
