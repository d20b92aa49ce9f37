package trending

import (
	"context"
	"testing"
	"time"

	"villagepulse-main/internal/feedback"
	typesFb "villagepulse-main/internal/types/feedback"
	typesVote "villagepulse-main/internal/types/vote"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubFeedback struct {
	items []feedback.Feedback
}

func (s *stubFeedback) ListRecent(_ context.Context, since time.Time, featureID string) ([]feedback.Feedback, error) {
	var out []feedback.Feedback
	for _, f := range s.items {
		if f.CreatedAt.Before(since) {
			continue
		}
		if featureID != "" && f.FeatureID != featureID {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

type stubStats map[string]*typesVote.VoteStats

func (s stubStats) Stats(_ context.Context, feedbackID string) (*typesVote.VoteStats, error) {
	if st, ok := s[feedbackID]; ok {
		return st, nil
	}
	return &typesVote.VoteStats{FeedbackID: feedbackID}, nil
}

func newTestRanker(t *testing.T, fb *stubFeedback, stats stubStats) *Ranker {
	cfg := DefaultConfig()
	cfg.CacheTTL = 0 // без кеша, если тест не просит обратного

	return NewRanker(cfg, fb, stats, nil, zaptest.NewLogger(t).Sugar())
}

func TestRanker_Trending_Ordering(t *testing.T) {
	now := time.Now()
	fb := &stubFeedback{items: []feedback.Feedback{
		{ID: "fb-low", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "fb-high", CreatedAt: now.Add(-48 * time.Hour)},
	}}
	stats := stubStats{
		"fb-low":  {FeedbackID: "fb-low", Count: 3, TotalDecayedWeight: 6.0},
		"fb-high": {FeedbackID: "fb-high", Count: 5, TotalDecayedWeight: 10.0},
	}

	ranker := newTestRanker(t, fb, stats)
	ranked, err := ranker.Trending(context.Background(), typesFb.TrendingParams{})

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "fb-high", ranked[0].Feedback.ID)
	assert.Equal(t, "fb-low", ranked[1].Feedback.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRanker_Trending_MinVotesExclusion(t *testing.T) {
	now := time.Now()
	fb := &stubFeedback{items: []feedback.Feedback{
		{ID: "fb-heavy", CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "fb-popular", CreatedAt: now.Add(-24 * time.Hour)},
	}}
	// Один голос с огромным весом не спасает от порога minVotes
	stats := stubStats{
		"fb-heavy":   {FeedbackID: "fb-heavy", Count: 1, TotalDecayedWeight: 100.0},
		"fb-popular": {FeedbackID: "fb-popular", Count: 2, TotalDecayedWeight: 2.0},
	}

	ranker := newTestRanker(t, fb, stats)
	ranked, err := ranker.Trending(context.Background(), typesFb.TrendingParams{MinVotes: 2})

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "fb-popular", ranked[0].Feedback.ID)
}

func TestRanker_Trending_TieBreakNewerFirst(t *testing.T) {
	now := time.Now()
	older := now.Add(-96 * time.Hour)
	newer := now.Add(-48 * time.Hour)

	fb := &stubFeedback{items: []feedback.Feedback{
		{ID: "fb-older", CreatedAt: older},
		{ID: "fb-newer", CreatedAt: newer},
	}}
	// Вес подобран так, чтобы score совпал: 8/4 == 4/2
	stats := stubStats{
		"fb-older": {FeedbackID: "fb-older", Count: 2, TotalDecayedWeight: 8.0},
		"fb-newer": {FeedbackID: "fb-newer", Count: 2, TotalDecayedWeight: 4.0},
	}

	ranker := newTestRanker(t, fb, stats)
	ranker.Now = func() time.Time { return now }
	ranked, err := ranker.Trending(context.Background(), typesFb.TrendingParams{})

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.InDelta(t, ranked[0].Score, ranked[1].Score, 1e-6)
	assert.Equal(t, "fb-newer", ranked[0].Feedback.ID)
}

func TestRanker_Trending_LimitAndAge(t *testing.T) {
	now := time.Now()
	fb := &stubFeedback{items: []feedback.Feedback{
		{ID: "fb-1", CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "fb-2", CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "fb-3", CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "fb-stale", CreatedAt: now.Add(-30 * 24 * time.Hour)},
	}}
	stats := stubStats{
		"fb-1":     {FeedbackID: "fb-1", Count: 1, TotalDecayedWeight: 3.0},
		"fb-2":     {FeedbackID: "fb-2", Count: 1, TotalDecayedWeight: 2.0},
		"fb-3":     {FeedbackID: "fb-3", Count: 1, TotalDecayedWeight: 1.0},
		"fb-stale": {FeedbackID: "fb-stale", Count: 10, TotalDecayedWeight: 50.0},
	}

	ranker := newTestRanker(t, fb, stats)
	ranked, err := ranker.Trending(context.Background(), typesFb.TrendingParams{Limit: 2})

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "fb-1", ranked[0].Feedback.ID)
	assert.Equal(t, "fb-2", ranked[1].Feedback.ID)
}

func TestRanker_Trending_EmptyResult(t *testing.T) {
	ranker := newTestRanker(t, &stubFeedback{}, stubStats{})

	ranked, err := ranker.Trending(context.Background(), typesFb.TrendingParams{})

	require.NoError(t, err)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRanker_Trending_Cache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	now := time.Now()
	fb := &stubFeedback{items: []feedback.Feedback{
		{ID: "fb-1", CreatedAt: now.Add(-24 * time.Hour)},
	}}
	stats := stubStats{
		"fb-1": {FeedbackID: "fb-1", Count: 1, TotalDecayedWeight: 2.0},
	}

	cfg := DefaultConfig()
	ranker := NewRanker(cfg, fb, stats, rdb, zaptest.NewLogger(t).Sugar())

	first, err := ranker.Trending(context.Background(), typesFb.TrendingParams{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Новые голоса не видны, пока жив кеш
	stats["fb-1"].Count = 5
	stats["fb-1"].TotalDecayedWeight = 10.0

	second, err := ranker.Trending(context.Background(), typesFb.TrendingParams{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].VoteCount, second[0].VoteCount)

	// После истечения TTL результат пересчитывается
	mr.FastForward(cfg.CacheTTL + time.Second)

	third, err := ranker.Trending(context.Background(), typesFb.TrendingParams{})
	require.NoError(t, err)
	assert.Equal(t, 5, third[0].VoteCount)
}
