package dto

type PlanRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	PricePKR     int    `json:"price_pkr" binding:"min=0"`
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
	MCQLimit     int    `json:"mcq_limit" binding:"min=-1"`
	ShortLimit   int    `json:"short_limit" binding:"min=-1"`
	LongLimit    int    `json:"long_limit" binding:"min=-1"`
	IsActive     bool   `json:"is_active"`
}
