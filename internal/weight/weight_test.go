package weight

import (
	"context"
	"math"
	"testing"
	"time"

	"villagepulse-main/internal/feedback"
	myErr "villagepulse-main/internal/types/errors"
	"villagepulse-main/internal/user"
	"villagepulse-main/internal/village"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type stubUsers map[string]*user.User

func (s stubUsers) Info(userID string) (*user.User, error) {
	if u, ok := s[userID]; ok {
		return u, nil
	}
	return nil, myErr.ErrNotFound
}

type stubFeedback map[string]*feedback.Feedback

func (s stubFeedback) GetByID(_ context.Context, id string) (*feedback.Feedback, error) {
	if f, ok := s[id]; ok {
		return f, nil
	}
	return nil, myErr.ErrNotFound
}

type stubVillages map[string]*village.Village

func (s stubVillages) GetByID(id string) (*village.Village, error) {
	if v, ok := s[id]; ok {
		return v, nil
	}
	return nil, myErr.ErrNotFound
}

type stubPanels map[string]bool

func (s stubPanels) HasActiveMembership(_ context.Context, userID string) (bool, error) {
	return s[userID], nil
}

func newTestCalculator(t *testing.T, users stubUsers, fbs stubFeedback, villages stubVillages, panels stubPanels) *Calculator {
	return NewCalculator(
		DefaultConfig(),
		users,
		fbs,
		villages,
		panels,
		zaptest.NewLogger(t).Sugar(),
	)
}

func TestDefaultConfig_RoleOrdering(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3.0, cfg.RoleMultipliers[user.RolePO])
	assert.Equal(t, 2.0, cfg.RoleMultipliers[user.RolePM])
	assert.Equal(t, 1.5, cfg.RoleMultipliers[user.RoleResearcher])
	assert.Equal(t, 1.0, cfg.RoleMultipliers[user.RoleUser])
	assert.Equal(t, 1.0, cfg.RoleMultipliers[user.RoleModerator])
	assert.Equal(t, 1.0, cfg.RoleMultipliers[user.RoleAdmin])

	assert.Greater(t, cfg.RoleMultipliers[user.RolePO], cfg.RoleMultipliers[user.RolePM])
	assert.Greater(t, cfg.RoleMultipliers[user.RolePM], cfg.RoleMultipliers[user.RoleResearcher])
	assert.Greater(t, cfg.RoleMultipliers[user.RoleResearcher], cfg.RoleMultipliers[user.RoleUser])
}

func TestCalculator_BaseWeight(t *testing.T) {
	users := stubUsers{
		"plain":      {ID: "plain", Role: user.RoleUser},
		"pm":         {ID: "pm", Role: user.RolePM},
		"po":         {ID: "po", Role: user.RolePO},
		"researcher": {ID: "researcher", Role: user.RoleResearcher},
	}
	fbs := stubFeedback{
		"fb-plain": {ID: "fb-plain"},
		"fb-high":  {ID: "fb-high", VillageID: "v-high"},
		"fb-low":   {ID: "fb-low", VillageID: "v-low"},
		"fb-gone":  {ID: "fb-gone", VillageID: "v-missing"},
	}
	villages := stubVillages{
		"v-high": {ID: "v-high", Priority: village.PriorityHigh},
		"v-low":  {ID: "v-low", Priority: village.PriorityLow},
	}
	panels := stubPanels{"pm": true}

	calc := newTestCalculator(t, users, fbs, villages, panels)

	tests := []struct {
		name       string
		userID     string
		feedbackID string
		want       float64
		wantErr    error
	}{
		{
			name:       "plain user, no village",
			userID:     "plain",
			feedbackID: "fb-plain",
			want:       1.0,
		},
		{
			name:       "po on high priority village",
			userID:     "po",
			feedbackID: "fb-high",
			want:       4.5,
		},
		{
			name:       "researcher on low priority village",
			userID:     "researcher",
			feedbackID: "fb-low",
			want:       0.75,
		},
		{
			name:       "pm with panel membership boost",
			userID:     "pm",
			feedbackID: "fb-plain",
			want:       2.3,
		},
		{
			name:       "missing village falls back to default multiplier",
			userID:     "plain",
			feedbackID: "fb-gone",
			want:       1.0,
		},
		{
			name:       "unknown user",
			userID:     "ghost",
			feedbackID: "fb-plain",
			wantErr:    myErr.ErrNotFound,
		},
		{
			name:       "unknown feedback",
			userID:     "plain",
			feedbackID: "fb-ghost",
			wantErr:    myErr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.BaseWeight(context.Background(), tt.userID, tt.feedbackID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculator_Decay(t *testing.T) {
	calc := newTestCalculator(t, nil, nil, nil, nil)
	now := time.Now()

	t.Run("no decay at cast time", func(t *testing.T) {
		assert.Equal(t, 2.0, calc.Decay(2.0, now, now))
	})

	t.Run("half weight after one half-life", func(t *testing.T) {
		votedAt := now.Add(-180 * 24 * time.Hour)
		assert.InDelta(t, 1.0, calc.Decay(2.0, votedAt, now), 1e-6)
	})

	t.Run("quarter weight after two half-lives", func(t *testing.T) {
		votedAt := now.Add(-360 * 24 * time.Hour)
		assert.InDelta(t, 0.5, calc.Decay(2.0, votedAt, now), 1e-6)
	})

	t.Run("monotonically non-increasing", func(t *testing.T) {
		prev := math.Inf(1)
		for days := 0; days <= 720; days += 30 {
			votedAt := now.Add(-time.Duration(days) * 24 * time.Hour)
			cur := calc.Decay(1.0, votedAt, now)
			assert.LessOrEqual(t, cur, prev, "decay must not increase with age (day %d)", days)
			prev = cur
		}
	})

	t.Run("fractional days", func(t *testing.T) {
		votedAt := now.Add(-12 * time.Hour)
		want := 1.0 * math.Exp2(-0.5/180)
		assert.InDelta(t, want, calc.Decay(1.0, votedAt, now), 1e-9)
	})
}
