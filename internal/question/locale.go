package question

import "strings"

// Language selects which per-language content branch is rendered.
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
)

// ParseLanguage maps a request tag to a supported language, defaulting
// to English for anything unrecognised.
func ParseLanguage(tag string) Language {
	if strings.EqualFold(strings.TrimSpace(tag), string(LangHindi)) {
		return LangHindi
	}
	return LangEnglish
}

// Label returns the human-readable language name used in fallback
// disclosure messages.
func (l Language) Label() string {
	if l == LangHindi {
		return "Hindi"
	}
	return "English"
}

func (l Language) other() Language {
	if l == LangHindi {
		return LangEnglish
	}
	return LangHindi
}

// fieldPolicy declares, per localized field, whether the other
// language's value may be borrowed when the requested one is empty.
type fieldPolicy struct{ fallbackAllowed bool }

var localizedFields = map[string]fieldPolicy{
	"content":       {fallbackAllowed: true},
	"options":       {fallbackAllowed: true},
	"correctAnswer": {fallbackAllowed: true},
	// A missing explanation must never borrow the other language's
	// text; the caller shows a generic message instead.
	"explanation": {fallbackAllowed: false},
}

// resolveField applies the suffix-then-fallback rule shared by every
// localized field. present decides emptiness for the field's type.
func resolveField[T any](primary, alternate T, present func(T) bool, policy fieldPolicy) (value T, ok, fallback bool) {
	if present(primary) {
		return primary, true, false
	}
	if policy.fallbackAllowed && present(alternate) {
		return alternate, true, true
	}
	var zero T
	return zero, false, false
}

// Verdict is the ternary outcome of checking a selected option.
type Verdict string

const (
	VerdictUnanswered Verdict = "unanswered"
	VerdictCorrect    Verdict = "correct"
	VerdictIncorrect  Verdict = "incorrect"
)

// Resolved is the effective display view of one question for one
// language. Resolve is pure: the same record and language always
// produce the same Resolved value.
type Resolved struct {
	Language Language

	Content         Content
	HasContent      bool
	ContentFallback bool

	Options         []string
	OptionsFallback bool

	CorrectAnswer string

	// Explanation is empty when the localized text is absent.
	Explanation string

	// Prompt is the headline text chosen by the title → question →
	// simpleText → description precedence, with the direct question
	// field and the other language's content as last resorts.
	Prompt string

	// QuestionText is the body question line, falling back to Prompt.
	QuestionText string

	// SupplementalPrompt is the optional content.prompt lead-in.
	SupplementalPrompt string

	Statements []Statement
}

// Resolve derives the display view of q for the requested language.
// Each of the four localized fields resolves independently under its
// declared policy.
func Resolve(q Question, lang Language) Resolved {
	r := Resolved{Language: lang}

	contentByLang := func(l Language) *Content {
		if l == LangHindi {
			return q.ContentHi
		}
		return q.Content
	}
	optionsByLang := func(l Language) []string {
		if l == LangHindi {
			return q.OptionsHi
		}
		return q.Options
	}
	answerByLang := func(l Language) string {
		if l == LangHindi {
			return q.CorrectAnsHi
		}
		return q.CorrectAnswer
	}
	explanationByLang := func(l Language) string {
		if l == LangHindi {
			return q.ExplanationHi
		}
		return q.Explanation
	}

	content, ok, fellBack := resolveField(
		contentByLang(lang), contentByLang(lang.other()),
		func(c *Content) bool { return !c.Empty() },
		localizedFields["content"])
	r.HasContent, r.ContentFallback = ok, fellBack
	if ok {
		r.Content = *content
	}

	opts, _, optsFellBack := resolveField(
		optionsByLang(lang), optionsByLang(lang.other()),
		func(o []string) bool { return len(o) > 0 },
		localizedFields["options"])
	r.Options, r.OptionsFallback = opts, optsFellBack

	answer, answered, _ := resolveField(
		answerByLang(lang), answerByLang(lang.other()),
		func(s string) bool { return trim(s) != "" },
		localizedFields["correctAnswer"])
	if answered {
		r.CorrectAnswer = trim(answer)
	} else {
		r.CorrectAnswer = trim(q.CorrectAnswer)
	}

	expl, hasExpl, _ := resolveField(
		explanationByLang(lang), explanationByLang(lang.other()),
		func(s string) bool { return trim(s) != "" },
		localizedFields["explanation"])
	if hasExpl {
		r.Explanation = trim(expl)
	}

	r.Prompt = promptText(q, r.Content, lang)
	if qt := trim(r.Content.Question); qt != "" {
		r.QuestionText = qt
	} else {
		r.QuestionText = r.Prompt
	}
	r.SupplementalPrompt = trim(r.Content.Prompt)
	r.Statements = r.Content.Statements
	return r
}

// promptText picks the headline with a fixed precedence inside the
// resolved content, then the direct top-level question field for the
// language, then the other language's content under the same
// precedence.
func promptText(q Question, content Content, lang Language) string {
	if s := firstNonEmpty(content.Title, content.Question, content.SimpleText, content.Description); s != "" {
		return s
	}

	direct := q.QuestionText
	if lang == LangHindi {
		direct = q.QuestionTextHi
	}
	if s := trim(direct); s != "" {
		return s
	}

	other := q.ContentHi
	if lang == LangHindi {
		other = q.Content
	}
	if other != nil {
		if s := firstNonEmpty(other.Title, other.Question, other.SimpleText, other.Description); s != "" {
			return s
		}
	}
	return ""
}

func firstNonEmpty(fields ...string) string {
	for _, f := range fields {
		if s := trim(f); s != "" {
			return s
		}
	}
	return ""
}

// Evaluate grades a selected option against the resolved answer for
// the active language. The comparison is trimmed and case-insensitive;
// a blank selection means the question is still unanswered.
func (r Resolved) Evaluate(selected string) Verdict {
	sel := trim(selected)
	if sel == "" {
		return VerdictUnanswered
	}
	if r.CorrectAnswer != "" && strings.EqualFold(sel, r.CorrectAnswer) {
		return VerdictCorrect
	}
	return VerdictIncorrect
}

// ExplanationFallback composes the generic message shown when the
// localized explanation is absent.
func (r Resolved) ExplanationFallback(v Verdict) string {
	if r.Explanation != "" {
		return ""
	}
	support := "Review the material and try again."
	if v == VerdictCorrect {
		support = "Great job! That is the correct answer."
	} else if r.CorrectAnswer != "" {
		support = "Correct answer: " + r.CorrectAnswer
	}
	return r.Language.Label() + " explanation unavailable. " + support
}

// ContentFallbackNotice returns the disclosure line for borrowed
// content, or "" when the requested language's content was used.
func (r Resolved) ContentFallbackNotice() string {
	if !r.ContentFallback {
		return ""
	}
	return r.Language.Label() + " content unavailable - showing " + r.Language.other().Label() + " version."
}

// OptionsFallbackNotice is the analogous disclosure for answer choices.
func (r Resolved) OptionsFallbackNotice() string {
	if !r.OptionsFallback || len(r.Options) == 0 {
		return ""
	}
	return r.Language.Label() + " options unavailable - showing " + r.Language.other().Label() + " choices."
}
