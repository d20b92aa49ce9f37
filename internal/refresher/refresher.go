package refresher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"villagepulse-main/internal/kafka"
	"villagepulse-main/internal/vote"
)

// Service пересчитывает затухшие веса голосов в фоне,
// чтобы рейтинги не зависели от того, как давно по фидбеку голосовали.
type Service struct {
	votes  vote.VoteRepo
	calc   vote.Decayer
	logger *zap.SugaredLogger
}

func NewService(votes vote.VoteRepo, calc vote.Decayer, logger *zap.SugaredLogger) *Service {
	return &Service{
		votes:  votes,
		calc:   calc,
		logger: logger,
	}
}

// RefreshFeedback - пересчитывает decayed_weight всех голосов одного фидбека
// Ошибка по одному голосу не прерывает пересчет остальных
func (s *Service) RefreshFeedback(ctx context.Context, feedbackID string) error {
	votes, err := s.votes.ListByFeedback(ctx, feedbackID)
	if err != nil {
		s.logger.Errorf("Failed to list votes for feedback %s: %v", feedbackID, err)
		return err
	}

	now := time.Now()
	for _, v := range votes {
		decayed := s.calc.Decay(v.Weight, v.CreatedAt, now)
		if err := s.votes.UpdateDecayedWeight(ctx, v.ID, decayed); err != nil {
			s.logger.Errorf("Failed to update decayed weight for vote %s: %v", v.ID, err)
			continue
		}
	}

	return nil
}

// ProcessEvent - обрабатывает событие голосования из Kafka
func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.FeedbackID == "" {
		return nil // Игнорируем события без фидбека
	}

	switch event.Type {
	case kafka.VoteCast, kafka.VoteRetracted:
		return s.RefreshFeedback(ctx, event.FeedbackID)
	}

	return nil
}

// RefreshRecent - пересчитывает веса по всем фидбекам, по которым голосовали с момента since
// Ошибка по одному фидбеку не прерывает пересчет остальных
func (s *Service) RefreshRecent(ctx context.Context, since time.Time) error {
	ids, err := s.votes.ListVotedFeedbackIDs(ctx, since)
	if err != nil {
		s.logger.Errorf("Failed to list voted feedback ids: %v", err)
		return err
	}

	for _, id := range ids {
		if err := s.RefreshFeedback(ctx, id); err != nil {
			s.logger.Errorf("Failed to refresh feedback %s: %v", id, err)
			continue
		}
	}

	return nil
}
