package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"notepocket/internal/dto"
	"notepocket/internal/pkg/serverutils"
	"notepocket/internal/service"
	"notepocket/pkg/llm"
)

type IEditorController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	DeleteNote(ctx *fiber.Ctx) error
	Cleanup(ctx *fiber.Ctx) error
}

type editorController struct {
	editorService service.IEditorService
}

func NewEditorController(editorService service.IEditorService) IEditorController {
	return &editorController{
		editorService: editorService,
	}
}

func (c *editorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/v1")
	h.Post("sessions", c.Open)
	h.Put("sessions/:id", c.Edit)
	h.Post("sessions/:id/close", c.Close)
	h.Delete("sessions/:id/note", c.DeleteNote)
	h.Post("sessions/:id/cleanup", c.Cleanup)
}

func (c *editorController) Open(ctx *fiber.Ctx) error {
	var req dto.OpenSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res := c.editorService.Open(&req)
	return ctx.JSON(serverutils.SuccessResponse("Success open editing session", res))
}

func (c *editorController) Edit(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	var req dto.EditSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.editorService.Edit(sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success autosave", res))
}

func (c *editorController) Close(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.editorService.Close(sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success close editing session", res))
}

func (c *editorController) DeleteNote(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.editorService.DeleteNote(sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete note", res))
}

func (c *editorController) Cleanup(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.editorService.Cleanup(ctx.Context(), sessionId)
	if err != nil {
		// Map classified collaborator failures to distinct user-facing
		// messages; everything else falls through to the middleware.
		switch {
		case errors.Is(err, llm.ErrMissingAPIKey):
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(
				fiber.StatusInternalServerError,
				"GROQ_API_KEY is not configured. Please add it to your .env file.",
			))
		case errors.Is(err, llm.ErrUnauthorized):
			return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(
				fiber.StatusBadGateway,
				"Invalid API key. Please check your GROQ_API_KEY.",
			))
		case errors.Is(err, llm.ErrRateLimited):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(serverutils.ErrorResponse(
				fiber.StatusTooManyRequests,
				"Rate limit exceeded. Please try again later.",
			))
		case errors.Is(err, llm.ErrBadRequest):
			return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(
				fiber.StatusBadGateway,
				"API error: "+err.Error(),
			))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clean up note", res))
}
