package dto

// GenerateRequest is bound from the multipart generate form. The source
// document, if any, is handled separately by the handler.
type GenerateRequest struct {
	InputText     string `form:"input_text"`
	NumMCQs       int    `form:"num_mcqs"`
	NumShort      int    `form:"num_short"`
	NumLong       int    `form:"num_long"`
	Difficulty    string `form:"difficulty_level"`
	MarksPerMCQ   int    `form:"marks_per_mcq"`
	MarksPerShort int    `form:"marks_per_short"`
	MarksPerLong  int    `form:"marks_per_long"`
}

type MCQItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type OpenItem struct {
	Question string `json:"question"`
}

// QuestionGroup holds all generated questions of one kind. Exactly one of
// MCQs / Questions is populated depending on Type.
type QuestionGroup struct {
	Type      string     `json:"type"` // mcq, short, long
	MCQs      []MCQItem  `json:"mcqs,omitempty"`
	Questions []OpenItem `json:"questions,omitempty"`
	Marks     int        `json:"marks_per_question"`
}

type GenerateResponse struct {
	Groups    []QuestionGroup `json:"groups"`
	CanExport bool            `json:"can_export"`
}

type ExportRequest struct {
	Title  string          `json:"title"`
	Groups []QuestionGroup `json:"groups" binding:"required"`
}

type ExportResponse struct {
	URL string `json:"url"`
}
