package dto

type CreateUpdateInput struct {
	ProgressScore   int    `json:"progressScore" binding:"required,min=1,max=10"`
	Accomplishments string `json:"accomplishments" binding:"required,max=5000"`
	Blockers        string `json:"blockers" binding:"max=5000"`
	Plans           string `json:"plans" binding:"max=5000"`
}
