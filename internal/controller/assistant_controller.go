package controller

import (
	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/pkg/serverutils"
	"sales-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	CacheStats(ctx *fiber.Ctx) error
	ClearCache(ctx *fiber.Ctx) error
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
	h.Get("health", c.Health)
	h.Use(serverutils.JwtMiddleware)
	h.Post("ask", c.Ask)
	h.Get("cache/stats", c.CacheStats)
	h.Delete("cache", c.ClearCache)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.assistantService.Ask(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}

// Health reports pipeline availability without touching any backend.
func (c *assistantController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok", "service": "assistant"})
}

func (c *assistantController) CacheStats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show cache stats", c.assistantService.CacheStats()))
}

func (c *assistantController) ClearCache(ctx *fiber.Ctx) error {
	c.assistantService.ClearCache()
	return ctx.JSON(serverutils.SuccessResponse("Success clear cache", nil))
}
