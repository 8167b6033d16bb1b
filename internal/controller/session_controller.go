package controller

import (
	"errors"

	"niche-picker-be/internal/dto"
	"niche-picker-be/internal/pkg/serverutils"
	"niche-picker-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Replace(ctx *fiber.Ctx) error
	Command(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Start)
	h.Get(":id", c.Show)
	h.Put(":id", c.Replace)
	h.Post(":id/command", c.Command)
	h.Delete(":id", c.End)
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	res, err := c.service.Start(ctx.UserContext(), &req)
	if err != nil {
		return sessionError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.Response[*dto.SessionResponse]{
		Code:    fiber.StatusCreated,
		Success: true,
		Message: "Success start session",
		Data:    res,
	})
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return sessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

// Replace takes the complete selection as the body. Anything not in it is
// deselected.
func (c *sessionController) Replace(ctx *fiber.Ctx) error {
	m, err := parseSelection(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Replace(ctx.UserContext(), ctx.Params("id"), m)
	if err != nil {
		return sessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success replace selection", res))
}

func (c *sessionController) Command(ctx *fiber.Ctx) error {
	var req dto.SelectionCommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Apply(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return sessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success apply command", res))
}

func (c *sessionController) End(ctx *fiber.Ctx) error {
	if err := c.service.End(ctx.UserContext(), ctx.Params("id")); err != nil {
		return sessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success end session", nil))
}

// sessionError maps service sentinels to HTTP statuses; the rest fall
// through to the error middleware as 500.
func sessionError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidSelection),
		errors.Is(err, service.ErrUnknownIndustry),
		errors.Is(err, service.ErrUnknownCommand):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
