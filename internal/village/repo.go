package village

import (
	"database/sql"
	"errors"

	myErr "villagepulse-main/internal/types/errors"

	"go.uber.org/zap"
)

type VillageDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewVillageDBRepository(db *sql.DB, l *zap.SugaredLogger) *VillageDBRepository {
	return &VillageDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (vr *VillageDBRepository) GetByID(id string) (*Village, error) {
	query := `
	SELECT id, name, priority
	FROM village
	WHERE id = $1
	`

	v := &Village{}
	err := vr.DB.QueryRow(query, id).Scan(&v.ID, &v.Name, &v.Priority)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}

		vr.Logger.Errorf("Ошибка при получении деревни: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return v, nil
}
