package models

type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

type FeedbackRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type GenerationListResponse struct {
	Generations []GenerationRecord `json:"generations"`
	Count       int                `json:"count"`
}
