package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/triviabank/trivia-api/internal/logging"
	"github.com/triviabank/trivia-api/pkg/http/respond"
)

// HTTPHandlers exposes the trivia REST surface.
type HTTPHandlers struct {
	service  *Service
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register wires the trivia routes onto the mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.GetCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.QuestionsByCategory)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateQuestion)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.HandleFunc("POST /quizzes", h.PlayQuiz)
}

type categoriesResponse struct {
	Success    bool           `json:"success"`
	Categories map[int]string `json:"categories"`
}

type questionListResponse struct {
	Success         bool                `json:"success"`
	Questions       []FormattedQuestion `json:"questions"`
	TotalQuestions  int                 `json:"total_questions"`
	Categories      map[int]string      `json:"categories,omitempty"`
	CurrentCategory *int                `json:"current_category"`
}

type mutationResponse struct {
	Success        bool                `json:"success"`
	Deleted        *int                `json:"deleted,omitempty"`
	Created        *int                `json:"created,omitempty"`
	Questions      []FormattedQuestion `json:"questions"`
	TotalQuestions int                 `json:"total_questions"`
}

type createQuestionRequest struct {
	Question   *string `json:"question" validate:"required"`
	Answer     *string `json:"answer" validate:"required"`
	Difficulty *int    `json:"difficulty" validate:"required"`
	Category   *int    `json:"category" validate:"required"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type quizCategory struct {
	ID   int     `json:"id"`
	Type *string `json:"type" validate:"required"`
}

type quizRequest struct {
	QuizCategory      *quizCategory `json:"quiz_category" validate:"required"`
	PreviousQuestions *[]int        `json:"previous_questions" validate:"required"`
}

type quizResponse struct {
	Success  bool               `json:"success"`
	Question *FormattedQuestion `json:"question"`
}

// GetCategories handles GET /categories.
func (h *HTTPHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

// ListQuestions handles GET /questions?page=N.
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)

	result, categories, err := h.service.ListQuestions(r.Context(), page)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, questionListResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.TotalQuestions,
		Categories:      categories,
		CurrentCategory: nil,
	})
}

// DeleteQuestion handles DELETE /questions/{id}. A non-numeric id is a
// processing failure, not a bad request; lookup-time validation is
// intentionally loose to keep the observed contract.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respond.Unprocessable(w)
		return
	}

	result, err := h.service.DeleteQuestion(r.Context(), id, pageParam(r))
	if err != nil {
		h.logger.Warn().Err(err).Int("question_id", id).Msg("delete question failed")
		respond.Unprocessable(w)
		return
	}

	respond.JSON(w, http.StatusOK, mutationResponse{
		Success:        true,
		Deleted:        &id,
		Questions:      nonNil(result.Questions),
		TotalQuestions: result.TotalQuestions,
	})
}

// CreateQuestion handles POST /questions. All four fields are mandatory and
// individually non-null; a missing or mistyped field is unprocessable, only a
// syntactically malformed body is a bad request.
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			respond.Unprocessable(w)
			return
		}
		respond.BadRequest(w)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		respond.Unprocessable(w)
		return
	}

	params := InsertQuestionParams{
		Text:       *req.Question,
		Answer:     *req.Answer,
		Category:   *req.Category,
		Difficulty: *req.Difficulty,
	}

	created, result, err := h.service.CreateQuestion(r.Context(), params, pageParam(r))
	if err != nil {
		h.logger.Warn().Err(err).Msg("create question failed")
		respond.Unprocessable(w)
		return
	}

	respond.JSON(w, http.StatusOK, mutationResponse{
		Success:        true,
		Created:        &created,
		Questions:      nonNil(result.Questions),
		TotalQuestions: result.TotalQuestions,
	})
}

// SearchQuestions handles POST /questions/search. An empty term is rejected as
// not found, keeping the observed contract.
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w)
		return
	}

	result, err := h.service.SearchQuestions(r.Context(), req.SearchTerm, pageParam(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, questionListResponse{
		Success:         true,
		Questions:       nonNil(result.Questions),
		TotalQuestions:  result.TotalQuestions,
		CurrentCategory: nil,
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions. A non-numeric id
// never names a category, so it is not found at the routing level.
func (h *HTTPHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respond.NotFound(w)
		return
	}

	result, err := h.service.QuestionsByCategory(r.Context(), categoryID, pageParam(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, questionListResponse{
		Success:         true,
		Questions:       nonNil(result.Questions),
		TotalQuestions:  result.TotalQuestions,
		CurrentCategory: &categoryID,
	})
}

// PlayQuiz handles POST /quizzes. The client threads the seen-id set through
// every call; an exhausted pool is a success with a null question. Every
// failure on this path is unprocessable.
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Unprocessable(w)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		respond.Unprocessable(w)
		return
	}

	// The frontend signals "all categories" with the click pseudo-category;
	// resolve it to an explicit scope at the boundary.
	scope := SpecificCategory(req.QuizCategory.ID)
	if *req.QuizCategory.Type == "click" {
		scope = AllCategories()
	}

	question, err := h.service.PlayQuiz(r.Context(), scope, *req.PreviousQuestions)
	if err != nil {
		h.logger.Warn().Err(err).Msg("quiz selection failed")
		respond.Unprocessable(w)
		return
	}

	respond.JSON(w, http.StatusOK, quizResponse{Success: true, Question: question})
}

// respondServiceError maps service errors onto the three-code contract.
func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEmptySearchTerm):
		respond.NotFound(w)
	default:
		logger := logging.FromContext(r.Context())
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respond.Unprocessable(w)
	}
}

// pageParam reads the page query parameter, defaulting to 1 on absent or
// non-numeric values.
func pageParam(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

func nonNil(questions []FormattedQuestion) []FormattedQuestion {
	if questions == nil {
		return []FormattedQuestion{}
	}
	return questions
}
