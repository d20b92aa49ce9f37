package village

// Приоритеты деревень, участвуют в расчете веса голоса
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Village структура деревни (организационной единицы)
type Village struct {
	ID       string `json:"id"` // uuid
	Name     string `json:"name"`
	Priority string `json:"priority"`
}

// VillageRepo интерфейс репозитория деревень
//
//go:generate mockgen -source=village.go -destination=../mocks/mock_village_repo.go -package=mocks
type VillageRepo interface {
	// GetByID возвращает деревню по ID
	GetByID(id string) (*Village, error)
}
