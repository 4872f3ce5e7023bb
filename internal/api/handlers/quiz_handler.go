package handlers

import (
	"errors"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QuizHandler struct {
	quizService *service.QuizService
	logger      *zap.Logger
}

func NewQuizHandler(quizService *service.QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		logger:      logger,
	}
}

// Questions godoc
// @Summary Quiz questions
// @Description Active questions in display order
// @Tags quiz
// @Produce json
// @Success 200 {array} models.QuizQuestion
// @Router /quiz/questions [get]
func (h *QuizHandler) Questions(c *fiber.Ctx) error {
	questions, err := h.quizService.Questions(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list questions", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list questions")
	}
	return c.JSON(questions)
}

// Submit godoc
// @Summary Submit quiz answers
// @Description Computes and stores recommendations. Works anonymously; a bearer token links the result to the user.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Answers keyed by question id"
// @Success 201 {object} dto.SubmitQuizResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /quiz/submit [post]
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if !req.Answers.Provided() {
		return errorResponse(c, fiber.StatusBadRequest, "answers is required")
	}
	if msg := validateStruct(&req); msg != "" {
		return errorResponse(c, fiber.StatusBadRequest, msg)
	}

	resp, err := h.quizService.Submit(c.UserContext(), &req, optionalUserID(c))
	if err != nil {
		h.logger.Error("Quiz submission failed", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to calculate recommendations")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetResult godoc
// @Summary Quiz result
// @Description Stored result with resolved product records
// @Tags quiz
// @Produce json
// @Param id path int true "Result ID"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 404 {object} map[string]string
// @Router /quiz/results/{id} [get]
func (h *QuizHandler) GetResult(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	resp, err := h.quizService.GetResult(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Result not found")
		}
		h.logger.Error("Failed to get quiz result", zap.Int64("result_id", id), zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to get result")
	}
	return c.JSON(resp)
}

// ListMine godoc
// @Summary My quiz results
// @Tags quiz
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.QuizResultResponse
// @Failure 401 {object} map[string]string
// @Router /quiz/results [get]
func (h *QuizHandler) ListMine(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	results, err := h.quizService.ListMine(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("Failed to list quiz results", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list results")
	}
	return c.JSON(results)
}
