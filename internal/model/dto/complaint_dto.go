package dto

type SubmitComplaintRequest struct {
	Content string `json:"content" binding:"required"`
}

type RespondComplaintRequest struct {
	AdminResponse string `json:"admin_response" binding:"required"`
}
