package question

import "sort"

// FacetFilter narrows analytics to one year and/or exam. The zero
// value (or the literal "all") keeps everything.
type FacetFilter struct {
	Year string
	Exam string
}

func facetActive(v string) bool { return v != "" && v != "all" }

// BreakdownEntry is one row of a frequency table. Missing facet values
// are keyed "Not specified".
type BreakdownEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DifficultyShare is one slice of the four-way difficulty split.
// Percentage is rounded to the nearest integer of the filtered subset,
// so the four shares may sum to 100±2.
type DifficultyShare struct {
	Key        string `json:"key"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Report is the aggregate view over the (optionally filtered)
// collection.
type Report struct {
	Total    int `json:"total"`
	Filtered int `json:"filtered"`

	// Filter option lists: years newest-first, exams alphabetical.
	Years []string `json:"years"`
	Exams []string `json:"exams"`

	Subjects      []BreakdownEntry  `json:"subjects"`
	ExamBreakdown []BreakdownEntry  `json:"exam_breakdown"`
	YearBreakdown []BreakdownEntry  `json:"year_breakdown"`
	Difficulty    []DifficultyShare `json:"difficulty"`

	SubjectsCovered int `json:"subjects_covered"`
	DistinctExams   int `json:"distinct_exams"`
	DistinctYears   int `json:"distinct_years"`
}

// facet is the analytics projection of one record.
type facet struct {
	subject    string
	difficulty string
	year       string
	exam       string
}

func facetOf(q Question) facet {
	f := facet{subject: "general", difficulty: "unknown"}
	if m := q.Metadata; m != nil {
		if m.Subject != "" {
			f.subject = m.Subject
		}
		if m.Difficulty != "" {
			f.difficulty = m.Difficulty
		}
		f.year = m.Year.String()
		f.exam = m.Exam.String()
	}
	return f
}

// Aggregate computes the analytics report for the collection under the
// given facet filter.
func Aggregate(qs []Question, filter FacetFilter) Report {
	all := make([]facet, len(qs))
	for i, q := range qs {
		all[i] = facetOf(q)
	}

	yearSet := map[string]bool{}
	examSet := map[string]bool{}
	for _, f := range all {
		if f.year != "" {
			yearSet[f.year] = true
		}
		if f.exam != "" {
			examSet[f.exam] = true
		}
	}
	years := keysSorted(yearSet, true)
	exams := keysSorted(examSet, false)

	filtered := all[:0:0]
	for _, f := range all {
		if facetActive(filter.Year) && f.year != filter.Year {
			continue
		}
		if facetActive(filter.Exam) && f.exam != filter.Exam {
			continue
		}
		filtered = append(filtered, f)
	}

	rpt := Report{
		Total:         len(all),
		Filtered:      len(filtered),
		Years:         years,
		Exams:         exams,
		Subjects:      countMap(filtered, func(f facet) string { return f.subject }),
		ExamBreakdown: countMap(filtered, func(f facet) string { return f.exam }),
		YearBreakdown: countMap(filtered, func(f facet) string { return f.year }),
		Difficulty:    difficultySplit(filtered),
	}
	rpt.SubjectsCovered = len(rpt.Subjects)

	distinctExams := map[string]bool{}
	distinctYears := map[string]bool{}
	for _, f := range filtered {
		if f.exam != "" {
			distinctExams[f.exam] = true
		}
		if f.year != "" {
			distinctYears[f.year] = true
		}
	}
	rpt.DistinctExams = len(distinctExams)
	rpt.DistinctYears = len(distinctYears)
	return rpt
}

// countMap builds a frequency table ordered by count descending, ties
// broken by label ascending.
func countMap(items []facet, key func(facet) string) []BreakdownEntry {
	counts := map[string]int{}
	for _, it := range items {
		v := key(it)
		if v == "" {
			v = "Not specified"
		}
		counts[v]++
	}
	out := make([]BreakdownEntry, 0, len(counts))
	for label, count := range counts {
		out = append(out, BreakdownEntry{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

var difficultyOrder = []string{"easy", "medium", "hard", "unknown"}

func difficultySplit(items []facet) []DifficultyShare {
	counts := map[string]int{"easy": 0, "medium": 0, "hard": 0, "unknown": 0}
	for _, it := range items {
		k := it.difficulty
		if _, known := counts[k]; !known {
			k = "unknown"
		}
		counts[k]++
	}
	out := make([]DifficultyShare, 0, len(difficultyOrder))
	for _, k := range difficultyOrder {
		share := DifficultyShare{Key: k, Count: counts[k]}
		if len(items) > 0 {
			share.Percentage = int(float64(counts[k])/float64(len(items))*100 + 0.5)
		}
		out = append(out, share)
	}
	return out
}

func keysSorted(set map[string]bool, descending bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	if descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
