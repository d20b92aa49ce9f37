package vote

import (
	"context"
	"database/sql"
	"errors"
	"time"

	myErr "villagepulse-main/internal/types/errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const uniqueViolationCode = "23505"

type VoteDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewVoteDBRepository(db *sql.DB, l *zap.SugaredLogger) *VoteDBRepository {
	return &VoteDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (vr *VoteDBRepository) Create(ctx context.Context, v *Vote) (*Vote, error) {
	query := `
	INSERT INTO vote (id, feedback_id, user_id, weight, decayed_weight)
	VALUES ($1, $2, $3, $4, $4)
	RETURNING id, feedback_id, user_id, weight, decayed_weight, created_at
	`

	created := &Vote{}
	err := vr.DB.QueryRowContext(ctx, query, v.ID, v.FeedbackID, v.UserID, v.Weight).Scan(
		&created.ID, &created.FeedbackID, &created.UserID,
		&created.Weight, &created.DecayedWeight, &created.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, myErr.ErrAlreadyVoted
		}

		vr.Logger.Errorf("Ошибка при создании голоса: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return created, nil
}

func (vr *VoteDBRepository) Delete(ctx context.Context, feedbackID, userID string) error {
	query := `
	DELETE FROM vote
	WHERE feedback_id = $1 AND user_id = $2
	`

	res, err := vr.DB.ExecContext(ctx, query, feedbackID, userID)
	if err != nil {
		vr.Logger.Errorf("Ошибка при удалении голоса: %v", err)
		return myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return myErr.ErrDBInternal
	}

	if rowsAffected == 0 {
		return myErr.ErrVoteNotFound
	}

	return nil
}

func (vr *VoteDBRepository) ListByFeedback(ctx context.Context, feedbackID string) ([]Vote, error) {
	query := `
	SELECT id, feedback_id, user_id, weight, decayed_weight, created_at
	FROM vote
	WHERE feedback_id = $1
	ORDER BY created_at
	`

	rows, err := vr.DB.QueryContext(ctx, query, feedbackID)
	if err != nil {
		vr.Logger.Errorf("Ошибка при выборке голосов за фидбек %v: %v", feedbackID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var votes []Vote
	for rows.Next() {
		var v Vote
		err := rows.Scan(&v.ID, &v.FeedbackID, &v.UserID, &v.Weight, &v.DecayedWeight, &v.CreatedAt)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		votes = append(votes, v)
	}

	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return votes, nil
}

func (vr *VoteDBRepository) HasVoted(ctx context.Context, feedbackID, userID string) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM vote WHERE feedback_id = $1 AND user_id = $2
	)
	`

	var exists bool
	err := vr.DB.QueryRowContext(ctx, query, feedbackID, userID).Scan(&exists)
	if err != nil {
		vr.Logger.Errorf("Ошибка при проверке голоса: %v", err)
		return false, myErr.ErrDBInternal
	}

	return exists, nil
}

func (vr *VoteDBRepository) UpdateDecayedWeight(ctx context.Context, voteID string, decayed float64) error {
	query := `
	UPDATE vote
	SET decayed_weight = $1
	WHERE id = $2
	`

	res, err := vr.DB.ExecContext(ctx, query, decayed, voteID)
	if err != nil {
		vr.Logger.Errorf("Ошибка при обновлении затухшего веса голоса %v: %v", voteID, err)
		return myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return myErr.ErrDBInternal
	}

	if rowsAffected == 0 {
		return myErr.ErrVoteNotFound
	}

	return nil
}

func (vr *VoteDBRepository) ListVotedFeedbackIDs(ctx context.Context, since time.Time) ([]string, error) {
	query := `
	SELECT DISTINCT feedback_id
	FROM vote
	WHERE created_at >= $1
	`

	rows, err := vr.DB.QueryContext(ctx, query, since)
	if err != nil {
		vr.Logger.Errorf("Ошибка при выборке фидбеков с голосами: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, myErr.ErrDBInternal
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return ids, nil
}
