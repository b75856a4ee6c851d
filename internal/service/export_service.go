package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/examgen/examgen_go_server/internal/generator"
	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/pkg/oss"
)

var (
	ErrExportNotAllowed  = errors.New("export requires an active paid subscription")
	ErrExportUnavailable = errors.New("export storage is not configured")
	ErrNothingToExport   = errors.New("no questions to export")
)

// ExportService renders a question paper to plain text and stores it in
// object storage.
type ExportService struct {
	ossClient *oss.Client
	quotaSvc  *QuotaService
}

func NewExportService(ossClient *oss.Client, quotaSvc *QuotaService) *ExportService {
	return &ExportService{
		ossClient: ossClient,
		quotaSvc:  quotaSvc,
	}
}

// Export uploads the rendered paper and returns its URL.
func (s *ExportService) Export(userID int64, req *dto.ExportRequest) (*dto.ExportResponse, error) {
	canExport, err := s.quotaSvc.CanExport(userID)
	if err != nil {
		return nil, err
	}
	if !canExport {
		return nil, ErrExportNotAllowed
	}

	if len(req.Groups) == 0 {
		return nil, ErrNothingToExport
	}

	if s.ossClient == nil {
		return nil, ErrExportUnavailable
	}

	paper := RenderPaper(req.Title, req.Groups)
	_, url, err := s.ossClient.UploadExport(userID, []byte(paper))
	if err != nil {
		return nil, err
	}

	return &dto.ExportResponse{URL: url}, nil
}

// RenderPaper lays the question groups out as a plain-text paper.
func RenderPaper(title string, groups []dto.QuestionGroup) string {
	var sb strings.Builder

	if title == "" {
		title = "Question Paper"
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	for _, group := range groups {
		switch group.Type {
		case generator.KindMCQ:
			if len(group.MCQs) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("Multiple Choice Questions (%d marks each)\n\n", group.Marks))
			for i, mcq := range group.MCQs {
				sb.WriteString(fmt.Sprintf("Q%d. %s\n", i+1, mcq.Question))
				for _, opt := range mcq.Options {
					sb.WriteString("    " + opt + "\n")
				}
				sb.WriteString("    Answer: " + mcq.Answer + "\n\n")
			}
		case generator.KindShort:
			writeOpenSection(&sb, "Short Questions", group)
		case generator.KindLong:
			writeOpenSection(&sb, "Long Questions", group)
		}
	}

	return sb.String()
}

func writeOpenSection(sb *strings.Builder, heading string, group dto.QuestionGroup) {
	if len(group.Questions) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d marks each)\n\n", heading, group.Marks))
	for i, q := range group.Questions {
		sb.WriteString(fmt.Sprintf("Q%d. %s\n\n", i+1, q.Question))
	}
}
