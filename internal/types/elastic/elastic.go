package elastic

// FeedbackDoc - структура документа фидбека для хранения в ES
type FeedbackDoc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	VillageID string `json:"village_id,omitempty"`
	State     string `json:"state"`
}
