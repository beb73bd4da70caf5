package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triviabank/trivia-api/internal/trivia"
)

// PostgresStore implements trivia.Store on top of a pgx connection pool.
// Listing queries order by ascending id so pagination stays stable.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ trivia.Store = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, question, answer, category, difficulty
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

func (s *PostgresStore) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE category = $1
		ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query questions by category: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, type
		FROM categories
		ORDER BY type
	`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []trivia.Category
	for rows.Next() {
		var c trivia.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) GetCategory(ctx context.Context, id int) (trivia.Category, error) {
	var c trivia.Category
	err := s.pool.QueryRow(ctx, `
		SELECT id, type
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Category{}, trivia.ErrNotFound
		}
		return trivia.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) InsertQuestion(ctx context.Context, params trivia.InsertQuestionParams) (trivia.Question, error) {
	q := trivia.Question{
		Text:       params.Text,
		Answer:     params.Answer,
		Category:   params.Category,
		Difficulty: params.Difficulty,
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, params.Text, params.Answer, params.Category, params.Difficulty).Scan(&q.ID)
	if err != nil {
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (s *PostgresStore) DeleteQuestion(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trivia.ErrNotFound
	}
	return nil
}

func scanQuestions(rows pgx.Rows) ([]trivia.Question, error) {
	var questions []trivia.Question
	for rows.Next() {
		var q trivia.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
