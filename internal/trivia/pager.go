package trivia

// QuestionsPerPage is the fixed page size for every listing endpoint.
const QuestionsPerPage = 10

// Paginate windows the ordered input to the requested page and formats each
// question in it. The input is never mutated or reordered. A page lying
// entirely beyond the input yields an empty result; callers decide whether
// that is a not-found condition. Pages below 1 are treated as page 1.
func Paginate(page int, questions []Question) []FormattedQuestion {
	if page < 1 {
		page = 1
	}

	// Bound the page before computing offsets: multiplying an arbitrary page
	// number would overflow and wrap past the slice-bounds guard.
	lastPage := (len(questions) + QuestionsPerPage - 1) / QuestionsPerPage
	if page > lastPage {
		return nil
	}

	start := (page - 1) * QuestionsPerPage
	end := start + QuestionsPerPage
	if end > len(questions) {
		end = len(questions)
	}

	formatted := make([]FormattedQuestion, 0, end-start)
	for _, q := range questions[start:end] {
		formatted = append(formatted, q.Format())
	}
	return formatted
}
