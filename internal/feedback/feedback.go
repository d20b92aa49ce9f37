package feedback

import (
	"context"
	"time"

	types "villagepulse-main/internal/types/feedback"
)

// Состояния жизненного цикла фидбека
const (
	StateNew       = "new"
	StateTriaged   = "triaged"
	StateInRoadmap = "in_roadmap"
	StateMerged    = "merged"
	StateClosed    = "closed"
)

// Статусы модерации
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

// Feedback структура фидбека
type Feedback struct {
	ID               string    `json:"id"` // uuid
	Title            string    `json:"title"`
	Body             string    `json:"body"`
	AuthorID         string    `json:"author_id"`
	VillageID        string    `json:"village_id,omitempty"`
	FeatureID        string    `json:"feature_id,omitempty"`
	State            string    `json:"state"`
	ModerationStatus string    `json:"moderation_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// TitleEntry пара (id, заголовок) для поиска дубликатов
type TitleEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FeedbackRepo интерфейс репозитория фидбеков
//
//go:generate mockgen -source=feedback.go -destination=../mocks/mock_feedback_repo.go -package=mocks
type FeedbackRepo interface {
	// Create создает новый фидбек в состоянии new со статусом модерации pending
	Create(ctx context.Context, cf types.CreateFeedback) (*Feedback, error)

	// GetByID возвращает фидбек по ID
	GetByID(ctx context.Context, id string) (*Feedback, error)

	// ListRecent возвращает одобренные фидбеки в активных состояниях,
	// созданные не раньше since, опционально отфильтрованные по продуктовой области
	ListRecent(ctx context.Context, since time.Time, featureID string) ([]Feedback, error)

	// ListTitles возвращает заголовки всех фидбеков кроме слитых (merged)
	// и кроме фидбека с excludeID, если он задан
	ListTitles(ctx context.Context, excludeID string) ([]TitleEntry, error)

	// ListByVillage возвращает фидбеки конкретной деревни
	ListByVillage(ctx context.Context, villageID string) ([]Feedback, error)
}
