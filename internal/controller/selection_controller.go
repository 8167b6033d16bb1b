package controller

import (
	"fmt"

	"niche-picker-be/internal/pkg/serverutils"
	"niche-picker-be/internal/service"
	"niche-picker-be/pkg/selection"

	"github.com/gofiber/fiber/v2"
)

type ISelectionController interface {
	RegisterRoutes(r fiber.Router)
	Decode(ctx *fiber.Ctx) error
	Encode(ctx *fiber.Ctx) error
	ExportJSON(ctx *fiber.Ctx) error
	ExportCSV(ctx *fiber.Ctx) error
}

type selectionController struct {
	service service.ISelectionService
}

func NewSelectionController(service service.ISelectionService) ISelectionController {
	return &selectionController{service: service}
}

func (c *selectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/selection/v1")
	h.Get("", c.Decode)
	h.Post("encode", c.Encode)
	h.Get("export/json", c.ExportJSON)
	h.Get("export/csv", c.ExportCSV)
}

// Decode answers with the full view of the selection carried in the query.
func (c *selectionController) Decode(ctx *fiber.Ctx) error {
	m := c.service.Decode(ctx.UserContext(), queryOf(ctx))
	view, err := c.service.View(ctx.UserContext(), m)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success decode selection", view))
}

func (c *selectionController) Encode(ctx *fiber.Ctx) error {
	m, err := parseSelection(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success encode selection", c.service.Encode(m)))
}

func (c *selectionController) ExportJSON(ctx *fiber.Ctx) error {
	out, err := c.service.ExportJSON(c.service.Decode(ctx.UserContext(), queryOf(ctx)))
	if err != nil {
		return err
	}
	return sendAttachment(ctx, selection.JSONFileName, selection.JSONMimeType, out)
}

func (c *selectionController) ExportCSV(ctx *fiber.Ctx) error {
	out, err := c.service.ExportCSV(c.service.Decode(ctx.UserContext(), queryOf(ctx)))
	if err != nil {
		return err
	}
	return sendAttachment(ctx, selection.CSVFileName, selection.CSVMimeType, out)
}

// queryOf reads the raw query string; fiber's own query parsing would fold
// repeated keys.
func queryOf(ctx *fiber.Ctx) selection.QueryParams {
	return selection.ParseQuery(string(ctx.Request().URI().QueryString()))
}

// parseSelection reads a body that is a JSON object of industry -> niche list.
func parseSelection(ctx *fiber.Ctx) (*selection.Model, error) {
	m := selection.New()
	if err := m.UnmarshalJSON(ctx.Body()); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s: %v", service.ErrInvalidSelection, err))
	}
	return m, nil
}

func sendAttachment(ctx *fiber.Ctx, filename, mimeType, body string) error {
	ctx.Attachment(filename)
	ctx.Set(fiber.HeaderContentType, mimeType)
	return ctx.SendString(body)
}
