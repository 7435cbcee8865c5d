package question

import (
	"strconv"
	"strings"
)

// PageSize is the fixed number of summaries per list page.
const PageSize = 10

// Summary is the display projection used by the list view. It is
// English-biased: no per-language resolution happens here.
type Summary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Prompt     string `json:"prompt"`
	Difficulty string `json:"difficulty"`
	Subject    string `json:"subject"`
	Year       string `json:"year"`
}

// Summarize projects one record for browsing. index is the record's
// 0-based position, used for the "Question {n}" placeholder title.
func Summarize(q Question, index int) Summary {
	var c Content
	if q.Content != nil {
		c = *q.Content
	}

	title := c.Title
	if trim(title) == "" {
		title = q.QuestionText
	}
	if trim(title) == "" {
		title = "Question " + strconv.Itoa(index+1)
	}

	prompt := firstRaw(c.Question, c.SimpleText, q.QuestionText, c.Description)

	meta := q.Metadata
	difficulty, subject, year := "unknown", "general", ""
	if meta != nil {
		if meta.Difficulty != "" {
			difficulty = meta.Difficulty
		}
		if meta.Subject != "" {
			subject = meta.Subject
		}
		year = meta.Year.String()
		if year == "" {
			year = meta.Exam.String()
		}
	}

	return Summary{
		ID:         q.DisplayID(index),
		Title:      title,
		Prompt:     prompt,
		Difficulty: difficulty,
		Subject:    subject,
		Year:       year,
	}
}

// firstRaw keeps the first truthy value without trimming, matching
// the list view's loose precedence.
func firstRaw(fields ...string) string {
	for _, f := range fields {
		if f != "" {
			return f
		}
	}
	return ""
}

// Summaries projects the whole collection in order.
func Summaries(qs []Question) []Summary {
	out := make([]Summary, len(qs))
	for i, q := range qs {
		out[i] = Summarize(q, i)
	}
	return out
}

// Search filters summaries by a case-insensitive substring match over
// title, prompt, subject and difficulty. A blank term matches all.
func Search(items []Summary, term string) []Summary {
	term = strings.ToLower(trim(term))
	if term == "" {
		return items
	}
	out := []Summary{}
	for _, it := range items {
		haystack := strings.ToLower(it.Title + " " + it.Prompt + " " + it.Subject + " " + it.Difficulty)
		if strings.Contains(haystack, term) {
			out = append(out, it)
		}
	}
	return out
}

// Page is one window of filtered summaries plus the display ordinals
// the list header shows.
type Page struct {
	Items      []Summary `json:"items"`
	Number     int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	TotalItems int       `json:"total_items"`
	Start      int       `json:"start"`
	End        int       `json:"end"`
}

// Paginate slices items into the requested page. The page number
// clamps to [1, totalPages]; an empty result set still has one page.
func Paginate(items []Summary, page int) Page {
	totalPages := (len(items) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}

	p := Page{
		Items:      items[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: len(items),
	}
	if len(items) > 0 {
		p.Start = start + 1
		p.End = end
	}
	return p
}
