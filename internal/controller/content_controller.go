package controller

import (
	"github.com/gofiber/fiber/v2"

	"shadowwork-be/internal/dto"
	"shadowwork-be/internal/pkg/serverutils"
	"shadowwork-be/internal/service"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	Upsert(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	RefreshIndex(ctx *fiber.Ctx) error
}

type contentController struct {
	contentService service.IContentService
}

func NewContentController(contentService service.IContentService) IContentController {
	return &contentController{
		contentService: contentService,
	}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upsert)
	h.Get("", c.List)
	h.Post("refresh-index", c.RefreshIndex)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *contentController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertContentChunkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.Upsert(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert content chunk", res))
}

func (c *contentController) Show(ctx *fiber.Ctx) error {
	res, err := c.contentService.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Content chunk not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show content chunk", res))
}

func (c *contentController) List(ctx *fiber.Ctx) error {
	res, err := c.contentService.List(ctx.Context(), ctx.Query("lang"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list content chunks", res))
}

func (c *contentController) Delete(ctx *fiber.Ctx) error {
	if err := c.contentService.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete content chunk", nil))
}

func (c *contentController) RefreshIndex(ctx *fiber.Ctx) error {
	if err := c.contentService.RefreshIndex(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success refresh retrieval index", nil))
}
