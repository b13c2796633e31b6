package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shadowwork-be/internal/dto"
	"shadowwork-be/internal/pkg/serverutils"
	"shadowwork-be/internal/service"
)

type ITurnController interface {
	RegisterRoutes(r fiber.Router)
	SendTurn(ctx *fiber.Ctx) error
	Retrieve(ctx *fiber.Ctx) error
	GetSessionState(ctx *fiber.Ctx) error
}

type turnController struct {
	turnService service.ITurnService
}

func NewTurnController(turnService service.ITurnService) ITurnController {
	return &turnController{
		turnService: turnService,
	}
}

func (c *turnController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("turn", c.SendTurn)
	h.Post("retrieve", c.Retrieve)
	h.Get("session/:id/state", c.GetSessionState)
}

func (c *turnController) SendTurn(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}

	var req dto.TurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.turnService.SendTurn(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send turn", res))
}

func (c *turnController) Retrieve(ctx *fiber.Ctx) error {
	var req dto.RetrieveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.turnService.Retrieve(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success retrieve", res))
}

func (c *turnController) GetSessionState(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.turnService.GetSessionState(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Session state not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session state", res))
}
