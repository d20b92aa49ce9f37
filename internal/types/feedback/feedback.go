package feedback

// CreateFeedback структура для создания нового фидбека
type CreateFeedback struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body"`
	AuthorID  string `json:"author_id"`
	VillageID string `json:"village_id,omitempty"`
	FeatureID string `json:"feature_id,omitempty"`
}

// TrendingParams параметры выборки трендовых фидбеков
// Нулевые значения заменяются дефолтами ранкера
type TrendingParams struct {
	MaxAgeDays int    `json:"max_age_days"`
	Limit      int    `json:"limit"`
	MinVotes   int    `json:"min_votes"`
	FeatureID  string `json:"feature_id,omitempty"`
}
