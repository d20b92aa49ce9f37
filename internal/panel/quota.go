package panel

import (
	"math"

	"go.uber.org/zap"
)

// Статусы здоровья квоты
const (
	StatusOnTrack  = "on_track"
	StatusWarning  = "warning"
	StatusCritical = "critical"
)

// TrackerConfig пороги отклонения для классификации квот
// Передаются явно, чтобы тесты могли их подменять
type TrackerConfig struct {
	OnTrackMargin float64
	WarningMargin float64
}

func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		OnTrackMargin: 5,
		WarningMargin: 15,
	}
}

// QuotaProgress фактическое состояние одной квоты
type QuotaProgress struct {
	QuotaID           string  `json:"quota_id"`
	Key               string  `json:"key"`
	ExpectedValue     string  `json:"expected_value"`
	TargetPercentage  float64 `json:"target_percentage"`
	CurrentCount      int     `json:"current_count"`
	CurrentPercentage float64 `json:"current_percentage"`
	Deviation         float64 `json:"deviation"`
	Status            string  `json:"status"`
}

// HealthSummary сводка здоровья панели по всем ее квотам
// AvgDeviation усредняет отклонения со знаком, не по модулю
type HealthSummary struct {
	Total        int     `json:"total"`
	OnTrack      int     `json:"on_track"`
	Warning      int     `json:"warning"`
	Critical     int     `json:"critical"`
	AvgDeviation float64 `json:"avg_deviation"`
	HealthScore  float64 `json:"health_score"`
}

// Tracker сравнивает фактический состав панели с целевыми долями
type Tracker struct {
	Cfg    TrackerConfig
	Logger *zap.SugaredLogger
}

func NewTracker(cfg TrackerConfig, logger *zap.SugaredLogger) *Tracker {
	return &Tracker{
		Cfg:    cfg,
		Logger: logger,
	}
}

// QuotaProgress считает состояние каждой квоты панели по списку участников
// Пустой список участников или квот дает пустой результат, не ошибку
func (t *Tracker) QuotaProgress(p *Panel, members []Membership) []QuotaProgress {
	if p == nil || len(p.Quotas) == 0 || len(members) == 0 {
		return []QuotaProgress{}
	}

	total := len(members)
	progress := make([]QuotaProgress, 0, len(p.Quotas))

	for _, q := range p.Quotas {
		count := 0
		for _, m := range members {
			if memberAttribute(m, q.Key) == q.ExpectedValue {
				count++
			}
		}

		pct := round2(float64(count) / float64(total) * 100)
		dev := round2(pct - q.TargetPercentage)

		progress = append(progress, QuotaProgress{
			QuotaID:           q.ID,
			Key:               q.Key,
			ExpectedValue:     q.ExpectedValue,
			TargetPercentage:  q.TargetPercentage,
			CurrentCount:      count,
			CurrentPercentage: pct,
			Deviation:         dev,
			Status:            t.classify(dev),
		})
	}

	return progress
}

// HealthSummary сводит список квот в единую оценку здоровья панели
// При нуле квот панель считается здоровой (HealthScore == 100)
func (t *Tracker) HealthSummary(progress []QuotaProgress) HealthSummary {
	summary := HealthSummary{
		Total:       len(progress),
		HealthScore: 100,
	}

	if len(progress) == 0 {
		return summary
	}

	sumDeviation := 0.0
	for _, p := range progress {
		sumDeviation += p.Deviation

		switch p.Status {
		case StatusOnTrack:
			summary.OnTrack++
		case StatusWarning:
			summary.Warning++
		case StatusCritical:
			summary.Critical++
		}
	}

	summary.AvgDeviation = round2(sumDeviation / float64(len(progress)))
	summary.HealthScore = round2(float64(summary.OnTrack) / float64(len(progress)) * 100)

	return summary
}

func (t *Tracker) classify(deviation float64) string {
	abs := math.Abs(deviation)
	switch {
	case abs <= t.Cfg.OnTrackMargin:
		return StatusOnTrack
	case abs <= t.Cfg.WarningMargin:
		return StatusWarning
	default:
		return StatusCritical
	}
}

func memberAttribute(m Membership, key string) string {
	switch key {
	case QuotaKeyRole:
		return m.Role
	case QuotaKeyVillageID:
		return m.VillageID
	case QuotaKeyEmployeeID:
		return m.EmployeeID
	case QuotaKeyDepartment:
		return m.Department
	default:
		return ""
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
