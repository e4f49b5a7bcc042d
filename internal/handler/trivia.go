package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// TriviaHandler handles question, category and quiz HTTP requests
type TriviaHandler struct {
	triviaService *service.TriviaService
}

// NewTriviaHandler creates a new trivia handler
func NewTriviaHandler(triviaService *service.TriviaService) *TriviaHandler {
	return &TriviaHandler{
		triviaService: triviaService,
	}
}

// Register registers the trivia routes
func (h *TriviaHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.ListCategories)
	e.GET("/categories/:id/questions", h.ListByCategory)
	e.GET("/questions", h.ListQuestions)
	e.POST("/questions", h.CreateOrSearchQuestions)
	e.DELETE("/questions/:id", h.DeleteQuestion)
	e.POST("/quizzes", h.PlayQuiz)
}

type categoriesResponse struct {
	Success    bool              `json:"success"`
	Categories domain.Categories `json:"categories"`
}

type questionListResponse struct {
	Success         bool               `json:"success"`
	Questions       []*domain.Question `json:"questions"`
	Categories      domain.Categories  `json:"categories"`
	CurrentCategory string             `json:"current_category"`
	TotalQuestions  int                `json:"total_questions"`
}

type questionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []*domain.Question `json:"questions"`
	CurrentCategory string             `json:"current_category"`
	TotalQuestions  int                `json:"total_questions"`
}

type createdResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
}

type deletedResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

type quizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

// ListCategories handles GET /categories
func (h *TriviaHandler) ListCategories(c echo.Context) error {
	categories, err := h.triviaService.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, categoriesResponse{
		Success:    true,
		Categories: categories,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *TriviaHandler) ListQuestions(c echo.Context) error {
	page, err := h.triviaService.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, questionListResponse{
		Success:         true,
		Questions:       page.Questions,
		Categories:      page.Categories,
		CurrentCategory: page.CurrentCategory,
		TotalQuestions:  page.TotalQuestions,
	})
}

// ListByCategory handles GET /categories/:id/questions?page=N
func (h *TriviaHandler) ListByCategory(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}

	page, err := h.triviaService.ListByCategory(c.Request().Context(), categoryID, pageParam(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, questionsResponse{
		Success:         true,
		Questions:       page.Questions,
		CurrentCategory: page.CurrentCategory,
		TotalQuestions:  page.TotalQuestions,
	})
}

// CreateOrSearchQuestions handles POST /questions. A non-empty searchTerm
// searches; anything else, including an empty searchTerm, creates.
func (h *TriviaHandler) CreateOrSearchQuestions(c echo.Context) error {
	var req CreateOrSearchRequest
	if err := c.Bind(&req); err != nil {
		return unprocessable(err)
	}

	ctx := c.Request().Context()

	if req.SearchTerm != nil && *req.SearchTerm != "" {
		page, err := h.triviaService.SearchQuestions(ctx, *req.SearchTerm)
		if err != nil {
			return unprocessable(err)
		}
		return c.JSON(http.StatusOK, questionsResponse{
			Success:         true,
			Questions:       page.Questions,
			CurrentCategory: page.CurrentCategory,
			TotalQuestions:  page.TotalQuestions,
		})
	}

	id, err := h.triviaService.CreateQuestion(ctx, &domain.NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category.intPtr(),
		Difficulty: req.Difficulty.intPtr(),
	})
	if err != nil {
		return unprocessable(err)
	}

	return c.JSON(http.StatusOK, createdResponse{
		Success: true,
		Created: id,
	})
}

// DeleteQuestion handles DELETE /questions/:id. Deleting a missing question
// is unprocessable, not 404.
func (h *TriviaHandler) DeleteQuestion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}

	deleted, err := h.triviaService.DeleteQuestion(c.Request().Context(), id)
	if err != nil {
		return unprocessable(err)
	}

	return c.JSON(http.StatusOK, deletedResponse{
		Success: true,
		Deleted: deleted,
	})
}

// PlayQuiz handles POST /quizzes. A null question means every question in
// scope has been played.
func (h *TriviaHandler) PlayQuiz(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return unprocessable(err)
	}

	quiz := &domain.QuizRequest{}
	if req.PreviousQuestions != nil {
		quiz.PreviousQuestions = make([]int, 0, len(req.PreviousQuestions))
		for _, id := range req.PreviousQuestions {
			quiz.PreviousQuestions = append(quiz.PreviousQuestions, int(id))
		}
	}
	if req.QuizCategory != nil {
		quiz.QuizCategory = &domain.QuizCategory{
			ID:   req.QuizCategory.ID.intPtr(),
			Type: req.QuizCategory.Type,
		}
	}

	question, err := h.triviaService.NextQuizQuestion(c.Request().Context(), quiz)
	if err != nil {
		return unprocessable(err)
	}

	return c.JSON(http.StatusOK, quizResponse{
		Success:  true,
		Question: question,
	})
}

// pageParam reads the 1-indexed page query parameter. Missing or
// non-integer values mean page 1.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return page
}
