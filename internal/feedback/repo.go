package feedback

import (
	"context"
	"database/sql"
	"errors"
	"time"

	types "villagepulse-main/internal/types/feedback"
	myErr "villagepulse-main/internal/types/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const feedbackColumns = `id, title, body, author_id, COALESCE(village_id, ''), COALESCE(feature_id, ''), state, moderation_status, created_at`

type FeedbackDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewFeedbackDBRepository(db *sql.DB, l *zap.SugaredLogger) *FeedbackDBRepository {
	return &FeedbackDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (fr *FeedbackDBRepository) Create(ctx context.Context, cf types.CreateFeedback) (*Feedback, error) {
	query := `
	INSERT INTO feedback (id, title, body, author_id, village_id, feature_id, state, moderation_status)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)
	RETURNING ` + feedbackColumns

	f := &Feedback{}
	err := fr.DB.QueryRowContext(
		ctx,
		query,
		uuid.New().String(),
		cf.Title,
		cf.Body,
		cf.AuthorID,
		cf.VillageID,
		cf.FeatureID,
		StateNew,
		ModerationPending,
	).Scan(
		&f.ID, &f.Title, &f.Body, &f.AuthorID,
		&f.VillageID, &f.FeatureID, &f.State, &f.ModerationStatus, &f.CreatedAt,
	)
	if err != nil {
		fr.Logger.Errorf("Ошибка при создании фидбека: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return f, nil
}

func (fr *FeedbackDBRepository) GetByID(ctx context.Context, id string) (*Feedback, error) {
	query := `
	SELECT ` + feedbackColumns + `
	FROM feedback
	WHERE id = $1
	`

	f := &Feedback{}
	err := fr.DB.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.Title, &f.Body, &f.AuthorID,
		&f.VillageID, &f.FeatureID, &f.State, &f.ModerationStatus, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}

		fr.Logger.Errorf("Ошибка при получении фидбека по ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return f, nil
}

func (fr *FeedbackDBRepository) ListRecent(ctx context.Context, since time.Time, featureID string) ([]Feedback, error) {
	query := `
	SELECT ` + feedbackColumns + `
	FROM feedback
	WHERE moderation_status = 'approved'
	  AND state IN ('new', 'triaged', 'in_roadmap')
	  AND created_at >= $1
	  AND ($2 = '' OR feature_id = $2)
	ORDER BY created_at
	`

	rows, err := fr.DB.QueryContext(ctx, query, since, featureID)
	if err != nil {
		fr.Logger.Errorf("Ошибка при выборке свежих фидбеков: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	return fr.scanFeedbacks(rows)
}

func (fr *FeedbackDBRepository) ListTitles(ctx context.Context, excludeID string) ([]TitleEntry, error) {
	query := `
	SELECT id, title
	FROM feedback
	WHERE state != 'merged'
	  AND ($1 = '' OR id != $1)
	`

	rows, err := fr.DB.QueryContext(ctx, query, excludeID)
	if err != nil {
		fr.Logger.Errorf("Ошибка при выборке заголовков фидбеков: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var titles []TitleEntry
	for rows.Next() {
		var te TitleEntry
		if err := rows.Scan(&te.ID, &te.Title); err != nil {
			return nil, myErr.ErrDBInternal
		}
		titles = append(titles, te)
	}

	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return titles, nil
}

func (fr *FeedbackDBRepository) ListByVillage(ctx context.Context, villageID string) ([]Feedback, error) {
	query := `
	SELECT ` + feedbackColumns + `
	FROM feedback
	WHERE village_id = $1
	ORDER BY created_at DESC
	`

	rows, err := fr.DB.QueryContext(ctx, query, villageID)
	if err != nil {
		fr.Logger.Errorf("Ошибка при выборке фидбеков деревни %v: %v", villageID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	return fr.scanFeedbacks(rows)
}

func (fr *FeedbackDBRepository) scanFeedbacks(rows *sql.Rows) ([]Feedback, error) {
	var feedbacks []Feedback
	for rows.Next() {
		var f Feedback
		err := rows.Scan(
			&f.ID, &f.Title, &f.Body, &f.AuthorID,
			&f.VillageID, &f.FeatureID, &f.State, &f.ModerationStatus, &f.CreatedAt,
		)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		feedbacks = append(feedbacks, f)
	}

	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return feedbacks, nil
}
