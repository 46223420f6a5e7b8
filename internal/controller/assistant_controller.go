package controller

import (
	"growthboss-ai-be/internal/dto"
	"growthboss-ai-be/internal/pkg/serverutils"
	"growthboss-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Council(ctx *fiber.Ctx) error
	Brief(ctx *fiber.Ctx) error
	Metrics(ctx *fiber.Ctx) error
}

type assistantController struct {
	researchService  service.IResearchService
	councilService   service.ICouncilService
	briefService     service.IBriefService
	analyticsService service.IAnalyticsService
}

func NewAssistantController(
	researchService service.IResearchService,
	councilService service.ICouncilService,
	briefService service.IBriefService,
	analyticsService service.IAnalyticsService,
) IAssistantController {
	return &assistantController{
		researchService:  researchService,
		councilService:   councilService,
		briefService:     briefService,
		analyticsService: analyticsService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("/ask", c.Ask)
	h.Post("/council", c.Council)
	h.Post("/brief", c.Brief)
	h.Get("/metrics", c.Metrics)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.researchService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success research answer", res))
}

func (c *assistantController) Council(ctx *fiber.Ctx) error {
	var req dto.CouncilRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.councilService.Deliberate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success council deliberation", res))
}

func (c *assistantController) Brief(ctx *fiber.Ctx) error {
	var req dto.BriefRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.briefService.CreateBrief(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create brief", res))
}

func (c *assistantController) Metrics(ctx *fiber.Ctx) error {
	res, err := c.analyticsService.GetMetrics(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get metrics", res))
}
