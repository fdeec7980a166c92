package controller

import (
	"github.com/gofiber/fiber/v2"

	"notepocket/internal/dto"
	"notepocket/internal/pkg/serverutils"
	"notepocket/internal/service"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	GetTheme(ctx *fiber.Ctx) error
	SetTheme(ctx *fiber.Ctx) error
	GetLanguage(ctx *fiber.Ctx) error
	SetLanguage(ctx *fiber.Ctx) error
}

type settingsController struct {
	settingsService service.ISettingsService
}

func NewSettingsController(settingsService service.ISettingsService) ISettingsController {
	return &settingsController{
		settingsService: settingsService,
	}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")
	h.Get("theme", c.GetTheme)
	h.Put("theme", c.SetTheme)
	h.Get("language", c.GetLanguage)
	h.Put("language", c.SetLanguage)
}

func (c *settingsController) GetTheme(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show theme", c.settingsService.GetTheme()))
}

func (c *settingsController) SetTheme(ctx *fiber.Ctx) error {
	var req dto.UpdateThemeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.settingsService.SetTheme(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update theme", res))
}

func (c *settingsController) GetLanguage(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show language", c.settingsService.GetLanguage()))
}

func (c *settingsController) SetLanguage(ctx *fiber.Ctx) error {
	var req dto.UpdateLanguageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.settingsService.SetLanguage(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update language", res))
}
