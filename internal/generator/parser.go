package generator

import (
	"strings"
)

// Line markers of the expected output grammar.
const (
	questionMarker = "Q)"
	answerMarker   = "Answer:"
)

var optionMarkers = []string{"A)", "B)", "C)", "D)"}

// mcqAccumulator collects one MCQ block as lines stream past. A block is
// only emitted when it is complete; anything else is dropped, which is the
// defense against truncated or malformed model output.
type mcqAccumulator struct {
	question string
	options  []string
	answer   string
	started  bool
}

func (a *mcqAccumulator) reset(question string) {
	a.question = question
	a.options = nil
	a.answer = ""
	a.started = true
}

func (a *mcqAccumulator) complete() bool {
	return a.started && a.question != "" && len(a.options) == OptionCount && a.answer != ""
}

func (a *mcqAccumulator) flush(out []MCQ) []MCQ {
	if !a.complete() {
		return out
	}
	return append(out, MCQ{
		Question: a.question,
		Options:  a.options,
		Answer:   a.answer,
	})
}

// ParseMCQs extracts up to count complete multiple-choice questions from
// raw model output. Malformed or incomplete blocks are silently dropped;
// an empty or unusable response yields an empty slice, never an error.
func ParseMCQs(raw string, count int) []MCQ {
	if count <= 0 {
		return nil
	}

	var (
		questions []MCQ
		acc       mcqAccumulator
	)

	for _, line := range splitResponseLines(raw) {
		switch {
		case strings.HasPrefix(line, questionMarker):
			questions = acc.flush(questions)
			acc.reset(strings.TrimSpace(line[len(questionMarker):]))
		case isOptionLine(line):
			if acc.started {
				acc.options = append(acc.options, line)
			}
		case strings.HasPrefix(line, answerMarker):
			if acc.started {
				acc.answer = strings.TrimSpace(line[len(answerMarker):])
			}
		}
	}
	questions = acc.flush(questions)

	if len(questions) > count {
		questions = questions[:count]
	}
	return questions
}

// ParseOpenEnded extracts up to count short/long question texts from raw
// model output. Only question-marker lines carry content; everything else
// is ignored.
func ParseOpenEnded(raw string, count int) []string {
	if count <= 0 {
		return nil
	}

	var questions []string
	for _, line := range splitResponseLines(raw) {
		if !strings.HasPrefix(line, questionMarker) {
			continue
		}
		question := strings.TrimSpace(line[len(questionMarker):])
		if question == "" {
			continue
		}
		questions = append(questions, question)
	}

	if len(questions) > count {
		questions = questions[:count]
	}
	return questions
}

// splitResponseLines trims the response, discards preamble before the
// first question marker, and returns non-blank trimmed lines.
func splitResponseLines(raw string) []string {
	response := strings.TrimSpace(raw)
	if idx := strings.Index(response, questionMarker); idx > 0 {
		response = response[idx:]
	}

	var lines []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isOptionLine(line string) bool {
	for _, marker := range optionMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
