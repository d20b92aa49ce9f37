package etl

import (
	"database/sql"

	"go.uber.org/zap"
	"golang.org/x/net/context"

	"villagepulse-main/internal/feedback"
)

type PostgresExtractor struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPostgresExtractor(db *sql.DB, logger *zap.SugaredLogger) *PostgresExtractor {
	return &PostgresExtractor{
		DB:     db,
		Logger: logger,
	}
}

// ExtractNew - достает новые фидбеки из поиска
// Возвращает массив одобренных фидбеков, которые еще не добавлены в полнотекстовый поиск, и error
func (e *PostgresExtractor) ExtractNew(ctx context.Context) ([]feedback.Feedback, error) {
	query :=
		`
		SELECT id, title, body, village_id, state, created_at
		FROM feedback
		WHERE indexed = FALSE AND moderation_status = 'approved'
		`

	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		e.Logger.Error("Failed to executing query", zap.Error(err))

		return nil, err
	}
	defer rows.Close()

	var result []feedback.Feedback

	for rows.Next() {
		var f feedback.Feedback
		err := rows.Scan(&f.ID, &f.Title, &f.Body, &f.VillageID, &f.State, &f.CreatedAt)
		if err != nil {
			e.Logger.Error("Failed to scan rows", zap.Error(err))

			return nil, err
		}
		result = append(result, f)
	}

	if err := rows.Err(); err != nil {
		e.Logger.Error("Error during rows iteration", zap.Error(err))
		return nil, err
	}

	return result, nil
}
