package vote

import (
	"context"
	"time"

	types "villagepulse-main/internal/types/vote"

	"go.uber.org/zap"
)

// Decayer считает затухший вес голоса на момент now
// Реализуется калькулятором весов
type Decayer interface {
	Decay(base float64, votedAt, now time.Time) float64
}

// Aggregator суммирует голоса по фидбеку
// Чистое чтение, безопасно для конкурентных вызовов
type Aggregator struct {
	Votes  VoteRepo
	Calc   Decayer
	Logger *zap.SugaredLogger
}

func NewAggregator(votes VoteRepo, calc Decayer, logger *zap.SugaredLogger) *Aggregator {
	return &Aggregator{
		Votes:  votes,
		Calc:   calc,
		Logger: logger,
	}
}

// Stats возвращает количество голосов, сумму базовых весов
// и сумму затухших весов, посчитанную на момент вызова
func (a *Aggregator) Stats(ctx context.Context, feedbackID string) (*types.VoteStats, error) {
	votes, err := a.Votes.ListByFeedback(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &types.VoteStats{FeedbackID: feedbackID}

	for _, v := range votes {
		stats.Count++
		stats.TotalWeight += v.Weight
		stats.TotalDecayedWeight += a.Calc.Decay(v.Weight, v.CreatedAt, now)
	}

	return stats, nil
}

// HasVoted проверяет, голосовал ли пользователь за фидбек
func (a *Aggregator) HasVoted(ctx context.Context, userID, feedbackID string) (bool, error) {
	return a.Votes.HasVoted(ctx, feedbackID, userID)
}
