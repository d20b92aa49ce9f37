package panel

import (
	"context"
	"database/sql"
	"errors"

	myErr "villagepulse-main/internal/types/errors"

	"go.uber.org/zap"
)

type PanelDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPanelDBRepository(db *sql.DB, l *zap.SugaredLogger) *PanelDBRepository {
	return &PanelDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (pr *PanelDBRepository) GetByID(ctx context.Context, id string) (*Panel, error) {
	query := `
	SELECT id, name, size_target
	FROM panel
	WHERE id = $1
	`

	p := &Panel{}
	err := pr.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.SizeTarget)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}

		pr.Logger.Errorf("Ошибка при получении панели по ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	quotasQuery := `
	SELECT id, panel_id, key, expected_value, target_percentage
	FROM panel_quota
	WHERE panel_id = $1
	ORDER BY id
	`

	rows, err := pr.DB.QueryContext(ctx, quotasQuery, id)
	if err != nil {
		pr.Logger.Errorf("Ошибка при выборке квот панели %v: %v", id, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	for rows.Next() {
		var q Quota
		err := rows.Scan(&q.ID, &q.PanelID, &q.Key, &q.ExpectedValue, &q.TargetPercentage)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		p.Quotas = append(p.Quotas, q)
	}

	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return p, nil
}

func (pr *PanelDBRepository) ListMembers(ctx context.Context, panelID string) ([]Membership, error) {
	query := `
	SELECT user_id, panel_id, role, COALESCE(village_id, ''), employee_id, COALESCE(department, ''), active
	FROM panel_membership
	WHERE panel_id = $1 AND active = TRUE
	`

	rows, err := pr.DB.QueryContext(ctx, query, panelID)
	if err != nil {
		pr.Logger.Errorf("Ошибка при выборке участников панели %v: %v", panelID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var members []Membership
	for rows.Next() {
		var m Membership
		err := rows.Scan(&m.UserID, &m.PanelID, &m.Role, &m.VillageID, &m.EmployeeID, &m.Department, &m.Active)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return members, nil
}

func (pr *PanelDBRepository) HasActiveMembership(ctx context.Context, userID string) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM panel_membership WHERE user_id = $1 AND active = TRUE
	)
	`

	var exists bool
	err := pr.DB.QueryRowContext(ctx, query, userID).Scan(&exists)
	if err != nil {
		pr.Logger.Errorf("Ошибка при проверке членства пользователя %v: %v", userID, err)
		return false, myErr.ErrDBInternal
	}

	return exists, nil
}
