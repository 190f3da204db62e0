package controller

import (
	"path/filepath"

	"product-chatbot-be/internal/constant"
	"product-chatbot-be/internal/dto"
	"product-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Welcome(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	ChatPage(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service     service.IChatbotService
	frontendDir string
}

func NewChatbotController(service service.IChatbotService, frontendDir string) IChatbotController {
	return &chatbotController{
		service:     service,
		frontendDir: frontendDir,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Welcome)
	r.Post("/get", c.Chat)
	r.Get("/chat", c.ChatPage)
}

func (c *chatbotController) Welcome(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.WelcomeResponse{Message: constant.WelcomeMessage})
}

// Chat always answers 200; the pipeline outcome goes in a header.
func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	// An unreadable body is answered like an empty message.
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		req = dto.ChatRequest{}
	}

	reply := c.service.Answer(ctx.UserContext(), req.Msg)

	ctx.Set(constant.ChatOutcomeHeader, reply.Outcome)
	return ctx.JSON(dto.ChatResponse{Response: reply.Response})
}

func (c *chatbotController) ChatPage(ctx *fiber.Ctx) error {
	return ctx.SendFile(filepath.Join(c.frontendDir, "index.html"))
}
