package controller

import (
	"niche-picker-be/internal/pkg/serverutils"
	"niche-picker-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITaxonomyController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Reload(ctx *fiber.Ctx) error
}

type taxonomyController struct {
	service service.ITaxonomyService
}

func NewTaxonomyController(service service.ITaxonomyService) ITaxonomyController {
	return &taxonomyController{service: service}
}

func (c *taxonomyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/taxonomy/v1")
	h.Get("", c.Get)
	h.Post("reload", c.Reload)
}

func (c *taxonomyController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Response(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get taxonomy", res))
}

func (c *taxonomyController) Reload(ctx *fiber.Ctx) error {
	if _, err := c.service.Reload(ctx.UserContext()); err != nil {
		return err
	}
	res, err := c.service.Response(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reload taxonomy", res))
}
