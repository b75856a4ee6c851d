package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/examgen/examgen_go_server/internal/generator"
	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/pkg/llm"
)

var (
	ErrEmptyInput       = errors.New("input text is empty")
	ErrNothingToDo      = errors.New("no questions requested")
	ErrNegativeCount    = errors.New("question counts must be non-negative")
	ErrGenerationFailed = errors.New("no questions could be generated from the input")
)

const (
	defaultDifficulty = "medium"

	defaultMCQMarks   = 1
	defaultShortMarks = 2
	defaultLongMarks  = 5
)

// GenerationService turns source text into a question paper: one model
// call per requested kind, each response run through the line parser.
// The parser is best effort, so a group may come back smaller than
// requested. A kind whose model call fails yields zero questions for
// that kind only; the remaining kinds still go out.
type GenerationService struct {
	client   llm.Client
	quotaSvc *QuotaService
}

func NewGenerationService(client llm.Client, quotaSvc *QuotaService) *GenerationService {
	return &GenerationService{
		client:   client,
		quotaSvc: quotaSvc,
	}
}

// Generate produces the requested question groups. A nil userID means an
// anonymous request, held to the built-in free ceiling.
func (s *GenerationService) Generate(ctx context.Context, userID *int64, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if req.NumMCQs < 0 || req.NumShort < 0 || req.NumLong < 0 {
		return nil, ErrNegativeCount
	}
	if req.NumMCQs == 0 && req.NumShort == 0 && req.NumLong == 0 {
		return nil, ErrNothingToDo
	}
	if strings.TrimSpace(req.InputText) == "" {
		return nil, ErrEmptyInput
	}

	if userID != nil {
		if err := s.quotaSvc.Evaluate(*userID, req.NumMCQs, req.NumShort, req.NumLong); err != nil {
			return nil, err
		}
	} else {
		if err := s.quotaSvc.EvaluateAnonymous(req.NumMCQs, req.NumShort, req.NumLong); err != nil {
			return nil, err
		}
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = defaultDifficulty
	}

	resp := &dto.GenerateResponse{}

	if req.NumMCQs > 0 {
		mcqs, err := s.generateMCQs(ctx, req.InputText, req.NumMCQs, difficulty)
		if err != nil {
			log.Printf("Generation: %v", err)
		}
		if len(mcqs) > 0 {
			resp.Groups = append(resp.Groups, dto.QuestionGroup{
				Type:  generator.KindMCQ,
				MCQs:  mcqs,
				Marks: marksOrDefault(req.MarksPerMCQ, defaultMCQMarks),
			})
		}
	}

	if req.NumShort > 0 {
		questions, err := s.generateOpen(ctx, generator.KindShort, req.InputText, req.NumShort, difficulty)
		if err != nil {
			log.Printf("Generation: %v", err)
		}
		if len(questions) > 0 {
			resp.Groups = append(resp.Groups, dto.QuestionGroup{
				Type:      generator.KindShort,
				Questions: questions,
				Marks:     marksOrDefault(req.MarksPerShort, defaultShortMarks),
			})
		}
	}

	if req.NumLong > 0 {
		questions, err := s.generateOpen(ctx, generator.KindLong, req.InputText, req.NumLong, difficulty)
		if err != nil {
			log.Printf("Generation: %v", err)
		}
		if len(questions) > 0 {
			resp.Groups = append(resp.Groups, dto.QuestionGroup{
				Type:      generator.KindLong,
				Questions: questions,
				Marks:     marksOrDefault(req.MarksPerLong, defaultLongMarks),
			})
		}
	}

	// Every requested kind failed or parsed to nothing
	if len(resp.Groups) == 0 {
		return nil, ErrGenerationFailed
	}

	if userID != nil {
		canExport, err := s.quotaSvc.CanExport(*userID)
		if err != nil {
			return nil, err
		}
		resp.CanExport = canExport
	}

	return resp, nil
}

func (s *GenerationService) generateMCQs(ctx context.Context, inputText string, count int, difficulty string) ([]dto.MCQItem, error) {
	raw, err := s.complete(ctx, generator.KindMCQ, inputText, count, difficulty)
	if err != nil {
		return nil, err
	}

	parsed := generator.ParseMCQs(raw, count)
	items := make([]dto.MCQItem, 0, len(parsed))
	for _, mcq := range parsed {
		items = append(items, dto.MCQItem{
			Question: mcq.Question,
			Options:  mcq.Options,
			Answer:   mcq.Answer,
		})
	}
	return items, nil
}

func (s *GenerationService) generateOpen(ctx context.Context, kind, inputText string, count int, difficulty string) ([]dto.OpenItem, error) {
	raw, err := s.complete(ctx, kind, inputText, count, difficulty)
	if err != nil {
		return nil, err
	}

	parsed := generator.ParseOpenEnded(raw, count)
	items := make([]dto.OpenItem, 0, len(parsed))
	for _, q := range parsed {
		items = append(items, dto.OpenItem{Question: q})
	}
	return items, nil
}

func (s *GenerationService) complete(ctx context.Context, kind, inputText string, count int, difficulty string) (string, error) {
	prompt := generator.BuildPrompt(kind, inputText, count, difficulty)

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		// An empty model response is not a failure, just zero questions
		if errors.Is(err, llm.ErrNoContent) {
			return "", nil
		}
		return "", fmt.Errorf("failed to generate %s questions: %w", kind, err)
	}
	return raw, nil
}

func marksOrDefault(marks, fallback int) int {
	if marks <= 0 {
		return fallback
	}
	return marks
}
