package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedMCQs = `Q) What is the capital of France?
    A) London
    B) Paris
    C) Berlin
    D) Madrid
    Answer: B

Q) Which planet is closest to the sun?
    A) Venus
    B) Earth
    C) Mercury
    D) Mars
    Answer: C

Q) What is 2 + 2?
    A) 3
    B) 4
    C) 5
    D) 6
    Answer: B
`

func TestParseMCQs(t *testing.T) {
	t.Run("well-formed response", func(t *testing.T) {
		questions := ParseMCQs(wellFormedMCQs, 3)

		require.Len(t, questions, 3)
		assert.Equal(t, "What is the capital of France?", questions[0].Question)
		assert.Len(t, questions[0].Options, 4)
		assert.Equal(t, "A) London", questions[0].Options[0])
		assert.Equal(t, "B", questions[0].Answer)
		assert.Equal(t, "C", questions[1].Answer)
	})

	t.Run("truncated to requested count in document order", func(t *testing.T) {
		questions := ParseMCQs(wellFormedMCQs, 2)

		require.Len(t, questions, 2)
		assert.Equal(t, "What is the capital of France?", questions[0].Question)
		assert.Equal(t, "Which planet is closest to the sun?", questions[1].Question)
	})

	t.Run("fewer recovered than requested is not padded", func(t *testing.T) {
		questions := ParseMCQs(wellFormedMCQs, 10)
		assert.Len(t, questions, 3)
	})

	t.Run("preamble before first question is skipped", func(t *testing.T) {
		raw := "Sure! Here are your questions:\n\n" + wellFormedMCQs
		questions := ParseMCQs(raw, 3)

		require.Len(t, questions, 3)
		assert.Equal(t, "What is the capital of France?", questions[0].Question)
	})

	t.Run("dangling incomplete final block is dropped", func(t *testing.T) {
		raw := wellFormedMCQs + `
Q) An interrupted question?
    A) First
    B) Second
`
		questions := ParseMCQs(raw, 10)
		assert.Len(t, questions, 3)
	})

	t.Run("block without answer is dropped", func(t *testing.T) {
		raw := `Q) No answer here?
    A) One
    B) Two
    C) Three
    D) Four

Q) Complete one?
    A) One
    B) Two
    C) Three
    D) Four
    Answer: A
`
		questions := ParseMCQs(raw, 10)

		require.Len(t, questions, 1)
		assert.Equal(t, "Complete one?", questions[0].Question)
	})

	t.Run("block with too many options is dropped", func(t *testing.T) {
		raw := `Q) Five options?
    A) One
    B) Two
    C) Three
    D) Four
    A) Five again
    Answer: A
`
		questions := ParseMCQs(raw, 10)
		assert.Empty(t, questions)
	})

	t.Run("empty response yields empty result", func(t *testing.T) {
		assert.Empty(t, ParseMCQs("", 5))
		assert.Empty(t, ParseMCQs("   \n\n  ", 5))
	})

	t.Run("no well-formed blocks yields empty result", func(t *testing.T) {
		raw := "I cannot generate questions from this text. Please provide more context."
		assert.Empty(t, ParseMCQs(raw, 5))
	})

	t.Run("zero or negative count yields empty result", func(t *testing.T) {
		assert.Empty(t, ParseMCQs(wellFormedMCQs, 0))
		assert.Empty(t, ParseMCQs(wellFormedMCQs, -1))
	})

	t.Run("blank lines inside a block are tolerated", func(t *testing.T) {
		raw := `Q) Spaced out?

    A) One

    B) Two
    C) Three

    D) Four

    Answer: D
`
		questions := ParseMCQs(raw, 1)

		require.Len(t, questions, 1)
		assert.Equal(t, "D", questions[0].Answer)
	})
}

func TestParseMCQs_Idempotent(t *testing.T) {
	// Re-rendering parsed records into the grammar and parsing again must
	// reproduce the same records.
	first := ParseMCQs(wellFormedMCQs, 3)
	require.Len(t, first, 3)

	var sb strings.Builder
	for _, q := range first {
		fmt.Fprintf(&sb, "Q) %s\n", q.Question)
		for _, opt := range q.Options {
			fmt.Fprintf(&sb, "    %s\n", opt)
		}
		fmt.Fprintf(&sb, "    Answer: %s\n\n", q.Answer)
	}

	second := ParseMCQs(sb.String(), 3)
	assert.Equal(t, first, second)
}

func TestParseOpenEnded(t *testing.T) {
	t.Run("well-formed response", func(t *testing.T) {
		raw := `Q) Explain photosynthesis.
Q) Describe the water cycle.
Q) What causes seasons?
`
		questions := ParseOpenEnded(raw, 3)

		require.Len(t, questions, 3)
		assert.Equal(t, "Explain photosynthesis.", questions[0])
		assert.Equal(t, "What causes seasons?", questions[2])
	})

	t.Run("truncated to requested count", func(t *testing.T) {
		raw := "Q) One?\nQ) Two?\nQ) Three?\n"
		questions := ParseOpenEnded(raw, 2)

		require.Len(t, questions, 2)
		assert.Equal(t, "One?", questions[0])
	})

	t.Run("non-question lines are ignored", func(t *testing.T) {
		raw := `Here are the questions:
Q) Only this counts?
Some trailing commentary.
`
		questions := ParseOpenEnded(raw, 5)

		require.Len(t, questions, 1)
		assert.Equal(t, "Only this counts?", questions[0])
	})

	t.Run("empty question text is dropped", func(t *testing.T) {
		raw := "Q)\nQ) A real question?\n"
		questions := ParseOpenEnded(raw, 5)

		require.Len(t, questions, 1)
		assert.Equal(t, "A real question?", questions[0])
	})

	t.Run("empty response yields empty result", func(t *testing.T) {
		assert.Empty(t, ParseOpenEnded("", 3))
	})

	t.Run("idempotent over its own rendering", func(t *testing.T) {
		raw := "Q) One?\nQ) Two?\n"
		first := ParseOpenEnded(raw, 2)

		var sb strings.Builder
		for _, q := range first {
			fmt.Fprintf(&sb, "Q) %s\n", q)
		}
		second := ParseOpenEnded(sb.String(), 2)
		assert.Equal(t, first, second)
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Run("mcq prompt carries count, text and difficulty", func(t *testing.T) {
		prompt := BuildPrompt(KindMCQ, "The mitochondria is the powerhouse of the cell.", 5, "hard")

		assert.Contains(t, prompt, "Generate 5 multiple-choice questions")
		assert.Contains(t, prompt, "mitochondria")
		assert.Contains(t, prompt, "Difficulty level: hard")
		assert.Contains(t, prompt, "exactly 4 options")
	})

	t.Run("short prompt asks for short answers", func(t *testing.T) {
		prompt := BuildPrompt(KindShort, "text", 3, "easy")

		assert.Contains(t, prompt, "Generate 3 short-answer questions")
		assert.Contains(t, prompt, "1-2 sentences")
	})

	t.Run("long prompt asks for detailed answers", func(t *testing.T) {
		prompt := BuildPrompt(KindLong, "text", 2, "medium")

		assert.Contains(t, prompt, "Generate 2 detailed questions")
		assert.Contains(t, prompt, "detailed answers")
	})

	t.Run("unknown kind yields empty prompt", func(t *testing.T) {
		assert.Empty(t, BuildPrompt("essay", "text", 1, "easy"))
	})
}
