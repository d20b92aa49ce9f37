package weight

import (
	"context"
	"errors"
	"math"
	"time"

	"villagepulse-main/internal/feedback"
	myErr "villagepulse-main/internal/types/errors"
	"villagepulse-main/internal/user"
	"villagepulse-main/internal/village"

	"go.uber.org/zap"
)

// Config таблицы коэффициентов расчета веса голоса
// Передается в конструктор явно, чтобы тесты могли подменять значения
type Config struct {
	RoleMultipliers       map[string]float64
	VillageMultipliers    map[string]float64
	DefaultRoleMultiplier float64
	// Множитель для фидбека без деревни и для неизвестного приоритета
	DefaultVillageMultiplier float64
	PanelBoost               float64
	HalfLifeDays             float64
}

func DefaultConfig() Config {
	return Config{
		RoleMultipliers: map[string]float64{
			user.RoleUser:       1.0,
			user.RolePM:         2.0,
			user.RolePO:         3.0,
			user.RoleResearcher: 1.5,
			user.RoleModerator:  1.0,
			user.RoleAdmin:      1.0,
		},
		VillageMultipliers: map[string]float64{
			village.PriorityHigh:   1.5,
			village.PriorityMedium: 1.0,
			village.PriorityLow:    0.5,
		},
		DefaultRoleMultiplier:    1.0,
		DefaultVillageMultiplier: 1.0,
		PanelBoost:               0.3,
		HalfLifeDays:             180,
	}
}

// UserInfoRepo выдает пользователя для расчета ролевого множителя
type UserInfoRepo interface {
	Info(userID string) (*user.User, error)
}

// FeedbackGetter выдает фидбек для определения приоритета деревни
type FeedbackGetter interface {
	GetByID(ctx context.Context, id string) (*feedback.Feedback, error)
}

// VillageGetter выдает деревню с ее приоритетом
type VillageGetter interface {
	GetByID(id string) (*village.Village, error)
}

// MembershipChecker проверяет активное членство пользователя в панелях
type MembershipChecker interface {
	HasActiveMembership(ctx context.Context, userID string) (bool, error)
}

// Calculator считает базовый и затухший вес голоса
type Calculator struct {
	Cfg      Config
	Users    UserInfoRepo
	Feedback FeedbackGetter
	Villages VillageGetter
	Panels   MembershipChecker
	Logger   *zap.SugaredLogger
}

func NewCalculator(
	cfg Config,
	users UserInfoRepo,
	fb FeedbackGetter,
	villages VillageGetter,
	panels MembershipChecker,
	logger *zap.SugaredLogger,
) *Calculator {
	return &Calculator{
		Cfg:      cfg,
		Users:    users,
		Feedback: fb,
		Villages: villages,
		Panels:   panels,
		Logger:   logger,
	}
}

// BaseWeight считает вес голоса в момент голосования:
// ролевой множитель * множитель приоритета деревни фидбека
// плюс бонус за членство хотя бы в одной активной панели
// Неизвестный userID или feedbackID - это ошибка, а не нулевой вес
func (c *Calculator) BaseWeight(ctx context.Context, userID, feedbackID string) (float64, error) {
	u, err := c.Users.Info(userID)
	if err != nil {
		return 0, err
	}

	f, err := c.Feedback.GetByID(ctx, feedbackID)
	if err != nil {
		return 0, err
	}

	roleMult, ok := c.Cfg.RoleMultipliers[u.Role]
	if !ok {
		c.Logger.Warnf("Неизвестная роль %q у пользователя %v, используется дефолтный множитель", u.Role, userID)
		roleMult = c.Cfg.DefaultRoleMultiplier
	}

	villageMult := c.Cfg.DefaultVillageMultiplier
	if f.VillageID != "" {
		v, err := c.Villages.GetByID(f.VillageID)
		switch {
		case err == nil:
			if m, ok := c.Cfg.VillageMultipliers[v.Priority]; ok {
				villageMult = m
			}
		case errors.Is(err, myErr.ErrNotFound):
			c.Logger.Warnf("Деревня %v фидбека %v не найдена, используется дефолтный множитель", f.VillageID, feedbackID)
		default:
			return 0, err
		}
	}

	base := roleMult * villageMult

	hasMembership, err := c.Panels.HasActiveMembership(ctx, userID)
	if err != nil {
		return 0, err
	}
	if hasMembership {
		base += c.Cfg.PanelBoost
	}

	return base, nil
}

// Decay применяет экспоненциальное затухание с периодом полураспада HalfLifeDays
// Дни считаются дробными, не округляются
func (c *Calculator) Decay(base float64, votedAt, now time.Time) float64 {
	days := now.Sub(votedAt).Hours() / 24
	if days <= 0 {
		return base
	}

	return base * math.Exp2(-days/c.Cfg.HalfLifeDays)
}
