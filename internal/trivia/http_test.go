package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(store Store) *http.ServeMux {
	handlers := NewHTTPHandlers(newTestService(store, ServiceOptions{}), zerolog.Nop())
	mux := http.NewServeMux()
	handlers.Register(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

func assertFailure(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.False(t, body.Success)
	assert.Equal(t, status, body.Error)
	assert.Equal(t, message, body.Message)
}

func TestGetCategories(t *testing.T) {
	mux := newTestMux(newStubStore(nil, defaultCategories()))

	rec := doRequest(t, mux, http.MethodGet, "/categories", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success    bool              `json:"success"`
		Categories map[string]string `json:"categories"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.Equal(t, map[string]string{"1": "Science", "2": "Art", "3": "Geography"}, body.Categories)
}

func TestGetCategoriesEmptyStore(t *testing.T) {
	mux := newTestMux(newStubStore(nil, nil))

	rec := doRequest(t, mux, http.MethodGet, "/categories", nil)

	assertFailure(t, rec, http.StatusNotFound, "resource not found")
}

func TestListQuestionsFirstPage(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(25), defaultCategories()))

	rec := doRequest(t, mux, http.MethodGet, "/questions", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success         bool                `json:"success"`
		Questions       []FormattedQuestion `json:"questions"`
		TotalQuestions  int                 `json:"total_questions"`
		Categories      map[string]string   `json:"categories"`
		CurrentCategory *int                `json:"current_category"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.Len(t, body.Questions, 10)
	assert.Equal(t, 25, body.TotalQuestions)
	assert.NotEmpty(t, body.Categories)
	assert.Nil(t, body.CurrentCategory)
}

func TestListQuestionsBeyondLastPage(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(25), defaultCategories()))

	rec := doRequest(t, mux, http.MethodGet, "/questions?page=1000", nil)

	assertFailure(t, rec, http.StatusNotFound, "resource not found")
}

func TestListQuestionsHugePage(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(25), defaultCategories()))

	rec := doRequest(t, mux, http.MethodGet, "/questions?page=1844674407370955162", nil)

	assertFailure(t, rec, http.StatusNotFound, "resource not found")
}

func TestListQuestionsStoreFailure(t *testing.T) {
	store := newStubStore(makeQuestions(5), defaultCategories())
	store.err = errors.New("connection reset")
	mux := newTestMux(store)

	rec := doRequest(t, mux, http.MethodGet, "/questions", nil)

	assertFailure(t, rec, http.StatusUnprocessableEntity, "unprocessable")
}

func TestListQuestionsNonNumericPageDefaultsToFirst(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(5), defaultCategories()))

	rec := doRequest(t, mux, http.MethodGet, "/questions?page=abc", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteQuestion(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(12), defaultCategories()))

	rec := doRequest(t, mux, http.MethodDelete, "/questions/4", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success        bool                `json:"success"`
		Deleted        int                 `json:"deleted"`
		Questions      []FormattedQuestion `json:"questions"`
		TotalQuestions int                 `json:"total_questions"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.Equal(t, 4, body.Deleted)
	assert.Equal(t, 11, body.TotalQuestions)
	for _, q := range body.Questions {
		assert.NotEqual(t, 4, q.ID)
	}
}

func TestDeleteQuestionNonNumericID(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	rec := doRequest(t, mux, http.MethodDelete, "/questions/yu", nil)

	assertFailure(t, rec, http.StatusUnprocessableEntity, "unprocessable")
}

func TestDeleteQuestionMissingID(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	rec := doRequest(t, mux, http.MethodDelete, "/questions/999", nil)

	assertFailure(t, rec, http.StatusUnprocessableEntity, "unprocessable")
}

func TestCreateQuestion(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(12), defaultCategories()))

	payload := []byte(`{"question":"Who wrote Dune?","answer":"Frank Herbert","difficulty":3,"category":2}`)
	rec := doRequest(t, mux, http.MethodPost, "/questions", payload)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success        bool `json:"success"`
		Created        int  `json:"created"`
		TotalQuestions int  `json:"total_questions"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.Equal(t, 13, body.Created)
	assert.Equal(t, 13, body.TotalQuestions)
}

func TestCreateQuestionMissingField(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	payload := []byte(`{"question":"Who wrote Dune?","answer":"Frank Herbert","category":2}`)
	rec := doRequest(t, mux, http.MethodPost, "/questions", payload)

	assertFailure(t, rec, http.StatusUnprocessableEntity, "unprocessable")
}

func TestCreateQuestionMistypedField(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	payload := []byte(`{"question":"q","answer":"a","difficulty":"","category":1}`)
	rec := doRequest(t, mux, http.MethodPost, "/questions", payload)

	assertFailure(t, rec, http.StatusUnprocessableEntity, "unprocessable")
}

func TestCreateQuestionMalformedBody(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	rec := doRequest(t, mux, http.MethodPost, "/questions", []byte(`{not json`))

	assertFailure(t, rec, http.StatusBadRequest, "bad request")
}

func TestSearchQuestions(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(30), defaultCategories()))

	rec := doRequest(t, mux, http.MethodPost, "/questions/search", []byte(`{"searchTerm":"QUESTION"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success         bool                `json:"success"`
		Questions       []FormattedQuestion `json:"questions"`
		TotalQuestions  int                 `json:"total_questions"`
		CurrentCategory *int                `json:"current_category"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.Len(t, body.Questions, 10)
	assert.Equal(t, 30, body.TotalQuestions)
	assert.Nil(t, body.CurrentCategory)
}

func TestSearchQuestionsEmptyTerm(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	rec := doRequest(t, mux, http.MethodPost, "/questions/search", []byte(`{"searchTerm":""}`))

	assertFailure(t, rec, http.StatusNotFound, "resource not found")
}

func TestSearchQuestionsNoMatches(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	rec := doRequest(t, mux, http.MethodPost, "/questions/search", []byte(`{"searchTerm":"zebra"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Questions []FormattedQuestion `json:"questions"`
	}
	decodeBody(t, rec, &body)
	assert.NotNil(t, body.Questions)
	assert.Empty(t, body.Questions)
}

func TestQuestionsByCategory(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(20), defaultCategories()))

	rec := doRequest(t, mux, http.MethodGet, "/categories/2/questions", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success         bool                `json:"success"`
		Questions       []FormattedQuestion `json:"questions"`
		CurrentCategory *int                `json:"current_category"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	require.NotNil(t, body.CurrentCategory)
	assert.Equal(t, 2, *body.CurrentCategory)
	for _, q := range body.Questions {
		assert.Equal(t, 2, q.Category)
	}
}

func TestQuestionsByCategoryNonNumericID(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(5), defaultCategories()))

	rec := doRequest(t, mux, http.MethodGet, "/categories/a/questions", nil)

	assertFailure(t, rec, http.StatusNotFound, "resource not found")
}

func TestQuestionsByCategoryUnknownID(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(5), defaultCategories()))

	rec := doRequest(t, mux, http.MethodGet, "/categories/7777/questions", nil)

	assertFailure(t, rec, http.StatusNotFound, "resource not found")
}

func TestPlayQuizAllCategories(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(6), defaultCategories()))

	payload := []byte(`{"quiz_category":{"id":0,"type":"click"},"previous_questions":[1,2,3]}`)
	rec := doRequest(t, mux, http.MethodPost, "/quizzes", payload)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success  bool               `json:"success"`
		Question *FormattedQuestion `json:"question"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	require.NotNil(t, body.Question)
	assert.NotContains(t, []int{1, 2, 3}, body.Question.ID)
}

func TestPlayQuizCategoryScope(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(20), defaultCategories()))

	payload := []byte(`{"quiz_category":{"id":3,"type":"Geography"},"previous_questions":[]}`)
	rec := doRequest(t, mux, http.MethodPost, "/quizzes", payload)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Question *FormattedQuestion `json:"question"`
	}
	decodeBody(t, rec, &body)
	require.NotNil(t, body.Question)
	assert.Equal(t, 3, body.Question.Category)
}

func TestPlayQuizExhaustedPool(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	payload := []byte(`{"quiz_category":{"id":0,"type":"click"},"previous_questions":[1,2,3]}`)
	rec := doRequest(t, mux, http.MethodPost, "/quizzes", payload)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success  bool               `json:"success"`
		Question *FormattedQuestion `json:"question"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.Nil(t, body.Question, "exhaustion is a success with a null question")
}

func TestPlayQuizMissingFields(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	rec := doRequest(t, mux, http.MethodPost, "/quizzes", []byte(`{"previous_questions":[]}`))

	assertFailure(t, rec, http.StatusUnprocessableEntity, "unprocessable")
}

func TestPlayQuizCategoryWithoutType(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	payload := []byte(`{"quiz_category":{"id":3},"previous_questions":[]}`)
	rec := doRequest(t, mux, http.MethodPost, "/quizzes", payload)

	assertFailure(t, rec, http.StatusUnprocessableEntity, "unprocessable")
}

func TestPlayQuizMalformedBody(t *testing.T) {
	mux := newTestMux(newStubStore(makeQuestions(3), defaultCategories()))

	rec := doRequest(t, mux, http.MethodPost, "/quizzes", []byte(`{broken`))

	assertFailure(t, rec, http.StatusUnprocessableEntity, "unprocessable")
}
