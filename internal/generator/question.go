// Package generator turns free-form model output into validated exam
// question records. Questions are ephemeral: they live only for the span
// of one generation request and are never persisted.
package generator

// Question kinds.
const (
	KindMCQ   = "mcq"
	KindShort = "short"
	KindLong  = "long"
)

// OptionCount is the number of options an MCQ must carry to be valid.
const OptionCount = 4

// MCQ is a parsed multiple-choice question: the question text, exactly
// four labeled options, and the correct option label.
type MCQ struct {
	Question string
	Options  []string
	Answer   string
}
