package handlers

import (
	"strings"
	"unicode/utf8"

	"misto-helper/internal/dto"
	"misto-helper/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ComplaintHandler struct {
	classifier   service.Classifier
	resolver     *service.ServiceResolver
	appeals      *service.AppealService
	orchestrator *service.Orchestrator
	categories   service.CategoryStore
	logger       *zap.Logger
}

func NewComplaintHandler(
	classifier service.Classifier,
	resolver *service.ServiceResolver,
	appeals *service.AppealService,
	orchestrator *service.Orchestrator,
	categories service.CategoryStore,
	logger *zap.Logger,
) *ComplaintHandler {
	return &ComplaintHandler{
		classifier:   classifier,
		resolver:     resolver,
		appeals:      appeals,
		orchestrator: orchestrator,
		categories:   categories,
		logger:       logger,
	}
}

// minProblemTextLength rejects texts too short to classify at all.
const minProblemTextLength = 5

func validProblemText(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= minProblemTextLength
}

// Classify godoc
// @Summary Classify a complaint
// @Description Determine the problem category, urgency and relevance of a complaint text
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body dto.ClassifyRequest true "Complaint text"
// @Success 200 {object} dto.ClassificationResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/classify [post]
func (h *ComplaintHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if !validProblemText(req.ProblemText) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "problem_text must be at least 5 characters",
		})
	}

	classification, err := h.classifier.Classify(c.Context(), req.ProblemText)
	if err != nil {
		h.logger.Error("Classification failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to classify complaint",
		})
	}

	resp, err := service.DescribeClassification(c.Context(), h.categories, classification)
	if err != nil {
		h.logger.Error("Failed to describe classification", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to classify complaint",
		})
	}

	return c.JSON(resp)
}

// Resolve godoc
// @Summary Resolve the responsible service
// @Description Find the organization responsible for a classified problem at an address
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body dto.ResolveRequest true "Category, urgency and address"
// @Success 200 {object} dto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/resolve [post]
func (h *ComplaintHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.CategoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "category_id is required",
		})
	}

	resp, err := h.resolver.Resolve(c.Context(), req.CategoryID, req.IsUrgent, req.StreetName, req.HouseNumber)
	if err != nil {
		h.logger.Error("Service resolution failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve service",
		})
	}

	return c.JSON(resp)
}

// Appeal godoc
// @Summary Generate an appeal letter
// @Description Draft a formal appeal letter for a problem at an address
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body dto.AppealRequest true "Problem text and address"
// @Success 200 {object} dto.AppealResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/appeal [post]
func (h *ComplaintHandler) Appeal(c *fiber.Ctx) error {
	var req dto.AppealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if !validProblemText(req.ProblemText) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "problem_text must be at least 5 characters",
		})
	}

	letter, err := h.appeals.GenerateAppeal(c.Context(), req.ProblemText, req.Street, req.Building)
	if err != nil {
		h.logger.Error("Appeal generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate appeal letter",
		})
	}

	return c.JSON(dto.AppealResponse{LetterText: letter})
}

// Solve godoc
// @Summary Process a complaint end to end
// @Description Classify the complaint, resolve the responsible service and draft an appeal letter
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body dto.SolveRequest true "Complaint with citizen info"
// @Success 200 {object} dto.SolveResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/solve [post]
func (h *ComplaintHandler) Solve(c *fiber.Ctx) error {
	var req dto.SolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if !validProblemText(req.ProblemText) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "problem_text must be at least 5 characters",
		})
	}

	resp, err := h.orchestrator.Solve(c.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to process complaint", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process complaint",
		})
	}

	return c.JSON(resp)
}
