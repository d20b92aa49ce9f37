package vote

import (
	"context"
	"time"
)

// Vote структура голоса за фидбек
// Вес фиксируется в момент голосования и дальше не меняется,
// затухание считается на чтении; decayed_weight - опциональный кеш для витрин
type Vote struct {
	ID            string    `json:"id"` // uuid
	FeedbackID    string    `json:"feedback_id"`
	UserID        string    `json:"user_id"`
	Weight        float64   `json:"weight"`
	DecayedWeight float64   `json:"decayed_weight"`
	CreatedAt     time.Time `json:"created_at"`
}

// VoteRepo интерфейс репозитория голосов
// Уникальность пары (feedback_id, user_id) обеспечивается базой
//
//go:generate mockgen -source=vote.go -destination=../mocks/mock_vote_repo.go -package=mocks
type VoteRepo interface {
	// Create создает голос с зафиксированным весом
	// Возвращает ErrAlreadyVoted, если пользователь уже голосовал за этот фидбек
	Create(ctx context.Context, v *Vote) (*Vote, error)

	// Delete удаляет голос пользователя за фидбек
	// Возвращает ErrVoteNotFound, если голоса не было
	Delete(ctx context.Context, feedbackID, userID string) error

	// ListByFeedback возвращает все голоса за фидбек
	ListByFeedback(ctx context.Context, feedbackID string) ([]Vote, error)

	// HasVoted проверяет существование голоса пары (feedbackID, userID)
	HasVoted(ctx context.Context, feedbackID, userID string) (bool, error)

	// UpdateDecayedWeight обновляет кешированный затухший вес одного голоса
	UpdateDecayedWeight(ctx context.Context, voteID string, decayed float64) error

	// ListVotedFeedbackIDs возвращает ID фидбеков, за которые голосовали начиная с since
	ListVotedFeedbackIDs(ctx context.Context, since time.Time) ([]string, error)
}
