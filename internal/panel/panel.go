package panel

import "context"

// Ключи категориальных измерений квот
const (
	QuotaKeyRole       = "role"
	QuotaKeyVillageID  = "village_id"
	QuotaKeyEmployeeID = "employee_id"
	QuotaKeyDepartment = "department"
)

// Panel структура исследовательской панели
type Panel struct {
	ID         string  `json:"id"` // uuid
	Name       string  `json:"name"`
	SizeTarget int     `json:"size_target"`
	Quotas     []Quota `json:"quotas"`
}

// Quota целевая доля участников панели по одному категориальному значению
type Quota struct {
	ID               string  `json:"id"`
	PanelID          string  `json:"panel_id"`
	Key              string  `json:"key"`
	ExpectedValue    string  `json:"expected_value"`
	TargetPercentage float64 `json:"target_percentage"`
}

// Membership участник панели со снимком его атрибутов
type Membership struct {
	UserID     string `json:"user_id"`
	PanelID    string `json:"panel_id"`
	Role       string `json:"role"`
	VillageID  string `json:"village_id,omitempty"`
	EmployeeID string `json:"employee_id"`
	Department string `json:"department,omitempty"`
	Active     bool   `json:"active"`
}

// PanelRepo интерфейс репозитория панелей
//
//go:generate mockgen -source=panel.go -destination=../mocks/mock_panel_repo.go -package=mocks
type PanelRepo interface {
	// GetByID возвращает панель вместе с ее квотами
	GetByID(ctx context.Context, id string) (*Panel, error)

	// ListMembers возвращает активных участников панели
	ListMembers(ctx context.Context, panelID string) ([]Membership, error)

	// HasActiveMembership проверяет, состоит ли пользователь хотя бы в одной активной панели
	HasActiveMembership(ctx context.Context, userID string) (bool, error)
}
