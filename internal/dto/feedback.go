package dto

// FeedbackInput - request body for POST /api/feedback and PUT /api/feedback/:id
type FeedbackInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
