package trending

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"villagepulse-main/internal/feedback"
	typesFb "villagepulse-main/internal/types/feedback"
	typesVote "villagepulse-main/internal/types/vote"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Защита от деления на почти нулевой возраст только что созданных фидбеков
const minAgeDaysFloor = 0.1

// Config дефолты выборки и TTL кеша результата
// Нулевой CacheTTL отключает кеширование
type Config struct {
	DefaultMaxAgeDays int
	DefaultLimit      int
	DefaultMinVotes   int
	CacheTTL          time.Duration
}

func DefaultConfig() Config {
	return Config{
		DefaultMaxAgeDays: 14,
		DefaultLimit:      10,
		DefaultMinVotes:   1,
		CacheTTL:          time.Minute,
	}
}

// FeedbackLister выдает фидбеки-кандидаты для ранжирования
type FeedbackLister interface {
	ListRecent(ctx context.Context, since time.Time, featureID string) ([]feedback.Feedback, error)
}

// StatsProvider выдает агрегированную статистику голосов по фидбеку
type StatsProvider interface {
	Stats(ctx context.Context, feedbackID string) (*typesVote.VoteStats, error)
}

// RankedFeedback фидбек с его трендовой оценкой
type RankedFeedback struct {
	Feedback           feedback.Feedback `json:"feedback"`
	Score              float64           `json:"score"`
	VoteCount          int               `json:"vote_count"`
	TotalDecayedWeight float64           `json:"total_decayed_weight"`
}

// Ranker строит список трендовых фидбеков
// Чистое чтение: конкурентный запрос может увидеть другие голоса, это допустимо
type Ranker struct {
	Cfg         Config
	Feedback    FeedbackLister
	Votes       StatsProvider
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
	// Подменяется в тестах для детерминированного возраста
	Now func() time.Time
}

func NewRanker(
	cfg Config,
	fb FeedbackLister,
	votes StatsProvider,
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
) *Ranker {
	return &Ranker{
		Cfg:         cfg,
		Feedback:    fb,
		Votes:       votes,
		RedisClient: redisClient,
		Logger:      logger,
		Now:         time.Now,
	}
}

// Trending возвращает не больше limit фидбеков, отсортированных по убыванию
// score = totalDecayedWeight / max(0.1, возраст в днях)
// Фидбеки с числом голосов меньше minVotes исключаются целиком
// При равных score выше оказывается более свежий фидбек
func (r *Ranker) Trending(ctx context.Context, params typesFb.TrendingParams) ([]RankedFeedback, error) {
	if params.MaxAgeDays <= 0 {
		params.MaxAgeDays = r.Cfg.DefaultMaxAgeDays
	}
	if params.Limit <= 0 {
		params.Limit = r.Cfg.DefaultLimit
	}
	if params.MinVotes <= 0 {
		params.MinVotes = r.Cfg.DefaultMinVotes
	}

	cacheKey := fmt.Sprintf(
		"trending:%d:%d:%d:%s",
		params.MaxAgeDays, params.Limit, params.MinVotes, params.FeatureID,
	)
	if cached, ok := r.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	now := r.Now()
	since := now.Add(-time.Duration(params.MaxAgeDays) * 24 * time.Hour)

	candidates, err := r.Feedback.ListRecent(ctx, since, params.FeatureID)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedFeedback, 0, len(candidates))
	for _, f := range candidates {
		stats, err := r.Votes.Stats(ctx, f.ID)
		if err != nil {
			return nil, err
		}

		if stats.Count < params.MinVotes {
			continue
		}

		ageDays := now.Sub(f.CreatedAt).Hours() / 24
		if ageDays < minAgeDaysFloor {
			ageDays = minAgeDaysFloor
		}

		ranked = append(ranked, RankedFeedback{
			Feedback:           f,
			Score:              stats.TotalDecayedWeight / ageDays,
			VoteCount:          stats.Count,
			TotalDecayedWeight: stats.TotalDecayedWeight,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		// Тай-брейк: более свежий фидбек выше
		return ranked[i].Feedback.CreatedAt.After(ranked[j].Feedback.CreatedAt)
	})

	if len(ranked) > params.Limit {
		ranked = ranked[:params.Limit]
	}

	r.toCache(ctx, cacheKey, ranked)

	return ranked, nil
}

func (r *Ranker) fromCache(ctx context.Context, key string) ([]RankedFeedback, bool) {
	if r.RedisClient == nil || r.Cfg.CacheTTL <= 0 {
		return nil, false
	}

	data, err := r.RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var ranked []RankedFeedback
	if err := json.Unmarshal(data, &ranked); err != nil {
		r.Logger.Warnf("Не удалось декодировать кеш трендов: %v", err)
		return nil, false
	}

	return ranked, true
}

func (r *Ranker) toCache(ctx context.Context, key string, ranked []RankedFeedback) {
	if r.RedisClient == nil || r.Cfg.CacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(ranked)
	if err != nil {
		r.Logger.Warnf("Не удалось закодировать кеш трендов: %v", err)
		return
	}

	// Устаревший кеш допустим, ошибка записи не роняет запрос
	if err := r.RedisClient.Set(ctx, key, data, r.Cfg.CacheTTL).Err(); err != nil {
		r.Logger.Warnf("Не удалось сохранить кеш трендов: %v", err)
	}
}
