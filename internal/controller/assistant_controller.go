package controller

import (
	"github.com/suklaray/hrms-sub002/internal/dto"
	"github.com/suklaray/hrms-sub002/internal/pkg/serverutils"
	"github.com/suklaray/hrms-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Similar(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	// Anonymous chat is allowed; a valid token just keys the conversation.
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Post("chat", c.Chat)
	h.Get("similar", c.Similar)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.assistantService.Chat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *assistantController) Similar(ctx *fiber.Ctx) error {
	q := ctx.Query("q", "")
	if q == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter q is required")
	}

	res := c.assistantService.FindSimilar(q)

	return ctx.JSON(serverutils.SuccessResponse("Success find similar questions", res))
}
