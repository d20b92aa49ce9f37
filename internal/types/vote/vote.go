package vote

// VoteStats агрегированная статистика голосов по одному фидбеку
// TotalDecayedWeight считается на момент запроса, не из кеша
type VoteStats struct {
	FeedbackID         string  `json:"feedback_id"`
	Count              int     `json:"count"`
	TotalWeight        float64 `json:"total_weight"`
	TotalDecayedWeight float64 `json:"total_decayed_weight"`
}
