package similarity

import (
	"context"
	"sort"
	"strings"

	"villagepulse-main/internal/feedback"

	"go.uber.org/zap"
)

// DefaultThreshold порог схожести заголовков для поиска дубликатов
const DefaultThreshold = 0.86

// Config настройки матчера
// Порог передается явно, чтобы тесты могли его подменять
type Config struct {
	Threshold float64
}

func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold}
}

// TitleSource выдает заголовки-кандидаты для сравнения
type TitleSource interface {
	ListTitles(ctx context.Context, excludeID string) ([]feedback.TitleEntry, error)
}

// Match найденный дубликат с его оценкой схожести
type Match struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Matcher ищет дубликаты фидбеков по схожести заголовков
type Matcher struct {
	Cfg    Config
	Titles TitleSource
	Logger *zap.SugaredLogger
}

func NewMatcher(cfg Config, titles TitleSource, logger *zap.SugaredLogger) *Matcher {
	return &Matcher{
		Cfg:    cfg,
		Titles: titles,
		Logger: logger,
	}
}

// Dice считает коэффициент Серенсена-Дайса по множествам биграмм
// Обе строки приводятся к нижнему регистру, результат в [0, 1]
func Dice(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if a == b {
		return 1
	}

	bigramsA := bigrams(a)
	bigramsB := bigrams(b)
	if len(bigramsA) == 0 || len(bigramsB) == 0 {
		// Одна из строк короче двух символов и строки не равны
		return 0
	}

	intersection := 0
	for bg := range bigramsA {
		if _, ok := bigramsB[bg]; ok {
			intersection++
		}
	}

	return 2 * float64(intersection) / float64(len(bigramsA)+len(bigramsB))
}

func bigrams(s string) map[string]struct{} {
	runes := []rune(s)
	set := make(map[string]struct{}, len(runes))
	for i := 0; i+1 < len(runes); i++ {
		set[string(runes[i:i+2])] = struct{}{}
	}

	return set
}

// FindDuplicates сравнивает заголовок со всеми неслитыми фидбеками
// и возвращает совпадения с оценкой не ниже порога, по убыванию оценки
func (m *Matcher) FindDuplicates(ctx context.Context, title, excludeID string) ([]Match, error) {
	titles, err := m.Titles.ListTitles(ctx, excludeID)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0)
	for _, te := range titles {
		score := Dice(title, te.Title)
		if score >= m.Cfg.Threshold {
			matches = append(matches, Match{
				ID:    te.ID,
				Title: te.Title,
				Score: score,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches, nil
}
