package trivia

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// QuestionPage is one bounded window of a listing plus the total size of the
// windowed result set. Recomputed on every request, never cached.
type QuestionPage struct {
	Questions      []FormattedQuestion
	TotalQuestions int
}

// Service implements the query-and-selection layer over a Store. It holds no
// mutable state of its own; every request is an independent unit of work and
// the store is the only shared resource.
type Service struct {
	store  Store
	cache  CategoryCache
	rng    Picker
	logger zerolog.Logger
}

// ServiceOptions tunes optional collaborators. A nil Cache disables category
// caching; a nil Picker falls back to the shared math/rand source.
type ServiceOptions struct {
	Cache CategoryCache
	RNG   Picker
}

func NewService(store Store, opts ServiceOptions, logger zerolog.Logger) *Service {
	rng := opts.RNG
	if rng == nil {
		rng = DefaultPicker()
	}
	return &Service{
		store:  store,
		cache:  opts.Cache,
		rng:    rng,
		logger: logger.With().Str("component", "trivia_service").Logger(),
	}
}

// Categories returns the id-to-type map of every category, cache-first.
// Returns ErrNotFound when the store has none.
func (s *Service) Categories(ctx context.Context) (map[int]string, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if len(cached) > 0 {
			return cached, nil
		}
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}

	byID := make(map[int]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Type
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, byID); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return byID, nil
}

// ListQuestions returns the requested page of the full ordered question set
// together with the category map. An empty page is ErrNotFound: a generic
// listing must not be empty.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, map[int]string, error) {
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return QuestionPage{}, nil, fmt.Errorf("list questions: %w", err)
	}

	current := Paginate(page, questions)
	if len(current) == 0 {
		return QuestionPage{}, nil, ErrNotFound
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, nil, err
	}

	return QuestionPage{Questions: current, TotalQuestions: len(questions)}, categories, nil
}

// DeleteQuestion removes the question and returns the refreshed page of the
// remaining set.
func (s *Service) DeleteQuestion(ctx context.Context, id, page int) (QuestionPage, error) {
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return QuestionPage{}, fmt.Errorf("delete question %d: %w", id, err)
	}

	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	return QuestionPage{Questions: Paginate(page, questions), TotalQuestions: len(questions)}, nil
}

// CreateQuestion inserts a new question and returns its store-assigned id plus
// the refreshed page. Field presence is validated at the HTTP boundary; a
// category that does not resolve fails the insert at the store.
func (s *Service) CreateQuestion(ctx context.Context, params InsertQuestionParams, page int) (int, QuestionPage, error) {
	created, err := s.store.InsertQuestion(ctx, params)
	if err != nil {
		return 0, QuestionPage{}, fmt.Errorf("insert question: %w", err)
	}

	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return 0, QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	return created.ID, QuestionPage{Questions: Paginate(page, questions), TotalQuestions: len(questions)}, nil
}

// SearchQuestions returns the requested page of questions whose text contains
// term, case-insensitively. TotalQuestions counts every match, not just the
// returned page. An empty term is rejected with ErrEmptySearchTerm; a term
// with no matches is a success with an empty page.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (QuestionPage, error) {
	if term == "" {
		return QuestionPage{}, ErrEmptySearchTerm
	}

	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}

	matches := FilterByText(term, questions)
	return QuestionPage{Questions: Paginate(page, matches), TotalQuestions: len(matches)}, nil
}

// QuestionsByCategory returns the requested page of questions in one category.
// Returns ErrNotFound when the category does not exist.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID, page int) (QuestionPage, error) {
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		return QuestionPage{}, fmt.Errorf("get category %d: %w", categoryID, err)
	}

	questions, err := s.store.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions by category %d: %w", categoryID, err)
	}
	return QuestionPage{Questions: Paginate(page, questions), TotalQuestions: len(questions)}, nil
}

// PlayQuiz picks one uniformly-random question from the scope's pool that is
// not in seen. A nil question with a nil error means the pool is exhausted,
// which ends the quiz on the client.
func (s *Service) PlayQuiz(ctx context.Context, scope Scope, seen []int) (*FormattedQuestion, error) {
	var (
		pool []Question
		err  error
	)
	if scope.All() {
		pool, err = s.store.ListQuestions(ctx)
	} else {
		pool, err = s.store.ListQuestionsByCategory(ctx, scope.CategoryID())
	}
	if err != nil {
		return nil, fmt.Errorf("resolve quiz pool: %w", err)
	}

	return SelectNext(pool, seen, s.rng), nil
}
