package trivia

import (
	"context"
	"errors"
)

// Sentinel errors surfaced by the service; the HTTP layer maps them onto the
// wire contract.
var (
	// ErrNotFound signals that the requested page, category or result set has
	// no matching data.
	ErrNotFound = errors.New("not found")
	// ErrEmptySearchTerm signals a missing or empty search term.
	ErrEmptySearchTerm = errors.New("empty search term")
)

// Question is the stored representation of a trivia question.
type Question struct {
	ID         int
	Text       string
	Answer     string
	Category   int
	Difficulty int
}

// FormattedQuestion is the public shape of a question on the wire, decoupled
// from the stored representation.
type FormattedQuestion struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// Format converts a stored question into its public shape.
func (q Question) Format() FormattedQuestion {
	return FormattedQuestion{
		ID:         q.ID,
		Question:   q.Text,
		Answer:     q.Answer,
		Difficulty: q.Difficulty,
		Category:   q.Category,
	}
}

// Category is a read-only question category; categories are seeded by
// migrations and never mutated through the API.
type Category struct {
	ID   int
	Type string
}

// Scope selects the candidate pool for quiz play: either every question or a
// single category. The zero value is not a valid scope; construct one with
// AllCategories or SpecificCategory.
type Scope struct {
	all        bool
	categoryID int
}

// AllCategories returns the scope covering every question in the store.
func AllCategories() Scope {
	return Scope{all: true}
}

// SpecificCategory returns the scope covering one category.
func SpecificCategory(categoryID int) Scope {
	return Scope{categoryID: categoryID}
}

// All reports whether the scope covers every category.
func (s Scope) All() bool { return s.all }

// CategoryID returns the category the scope is restricted to. Only meaningful
// when All reports false.
func (s Scope) CategoryID() int { return s.categoryID }

// InsertQuestionParams carries the fields required to create a question. The
// id is assigned by the store.
type InsertQuestionParams struct {
	Text       string
	Answer     string
	Category   int
	Difficulty int
}

// Store is the capability surface the service needs from the persistence
// layer. Listing methods return questions ordered by ascending id so
// pagination stays stable across requests.
type Store interface {
	ListQuestions(ctx context.Context) ([]Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error)
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int) (Category, error)
	InsertQuestion(ctx context.Context, params InsertQuestionParams) (Question, error)
	DeleteQuestion(ctx context.Context, id int) error
}
