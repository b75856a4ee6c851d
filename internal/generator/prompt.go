package generator

import (
	"fmt"
)

// BuildPrompt composes the model instruction for one question kind. The
// format rules must stay in lockstep with what the parser accepts.
func BuildPrompt(kind, inputText string, count int, difficulty string) string {
	switch kind {
	case KindMCQ:
		return buildMCQPrompt(inputText, count, difficulty)
	case KindShort:
		return buildShortPrompt(inputText, count, difficulty)
	case KindLong:
		return buildLongPrompt(inputText, count, difficulty)
	default:
		return ""
	}
}

func buildMCQPrompt(inputText string, count int, difficulty string) string {
	return fmt.Sprintf(`Generate %d multiple-choice questions based on this text:

%s

Rules:
1. Format each question exactly like this:
Q) [question]
    A) [option A]
    B) [option B]
    C) [option C]
    D) [option D]
    Answer: [correct option letter]

2. Difficulty level: %s
3. Make sure each question has exactly 4 options.
4. Questions should be clear and concise.
5. Options should be distinct and relevant to the question.
6. Always include the correct answer after the options.
7. Do not include any explanations or additional text.`, count, inputText, difficulty)
}

func buildShortPrompt(inputText string, count int, difficulty string) string {
	return fmt.Sprintf(`Generate %d short-answer questions based on this text:

%s

Rules:
1. Format each question exactly like this:
Q) [question]

2. Difficulty level: %s
3. Questions should be answerable in 1-2 sentences.
4. Questions should be clear and specific.
5. Do not include any explanations or additional text.`, count, inputText, difficulty)
}

func buildLongPrompt(inputText string, count int, difficulty string) string {
	return fmt.Sprintf(`Generate %d detailed questions based on this text:

%s

Rules:
1. Format each question exactly like this:
Q) [question]

2. Difficulty level: %s
3. Questions should require detailed answers.
4. Questions should be thought-provoking and comprehensive.
5. Do not include any explanations or additional text.`, count, inputText, difficulty)
}
