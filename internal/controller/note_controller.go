package controller

import (
	"github.com/gofiber/fiber/v2"

	"notepocket/internal/pkg/serverutils"
	"notepocket/internal/service"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	q := ctx.Query("q", "")

	res := c.noteService.List(q)
	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res := c.noteService.Show(id)
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "Note not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	c.noteService.Delete(id)
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}
