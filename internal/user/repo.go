package user

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	myErr "villagepulse-main/internal/types/errors"
	types "villagepulse-main/internal/types/user"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolationCode = "23505"

type UserDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewUserDBRepository(db *sql.DB, l *zap.SugaredLogger) *UserDBRepository {
	return &UserDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (ur *UserDBRepository) CreateUser(cu types.CreateUser) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cu.Password), bcrypt.DefaultCost)
	if err != nil {
		ur.Logger.Errorf("Ошибка при хешировании пароля: %v", err)
		return nil, myErr.ErrDBInternal
	}

	query := `
	INSERT INTO users (user_id, name, email, password_hash, role, current_village_id)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	RETURNING user_id, name, email, role, COALESCE(current_village_id, ''), registration_date
	`

	u := &User{}
	err = ur.DB.QueryRow(query, uuid.New().String(), cu.Name, cu.Email, string(hash), RoleUser, cu.CurrentVillageID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CurrentVillageID, &u.RegistrationDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, myErr.ErrAlreadyExists
		}

		ur.Logger.Errorf("Ошибка при создании пользователя: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) CheckUser(email, password string) (*User, error) {
	query := `
	SELECT user_id, name, email, password_hash, role, COALESCE(current_village_id, ''), registration_date
	FROM users
	WHERE email = $1
	`

	u := &User{}
	err := ur.DB.QueryRow(query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CurrentVillageID, &u.RegistrationDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}

		ur.Logger.Errorf("Ошибка при поиске пользователя по почте: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, myErr.ErrBadPassword
	}

	return u, nil
}

func (ur *UserDBRepository) Info(userID string) (*User, error) {
	query := `
	SELECT user_id, name, email, role, COALESCE(current_village_id, ''), registration_date
	FROM users
	WHERE user_id = $1
	`

	u := &User{}
	err := ur.DB.QueryRow(query, userID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CurrentVillageID, &u.RegistrationDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}

		ur.Logger.Warnf("Ошибка при получении информации о пользователе: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) ChangeProfile(userID string, updateUser types.ChangeUser) (*User, error) {
	fields := []string{}
	args := []interface{}{}
	argID := 1

	// Динамически добавляем поля в обновление
	if updateUser.Name != "" {
		fields = append(fields, "name = $"+strconv.Itoa(argID))
		args = append(args, updateUser.Name)
		argID++
	}
	if updateUser.Email != "" {
		fields = append(fields, "email = $"+strconv.Itoa(argID))
		args = append(args, updateUser.Email)
		argID++
	}
	if updateUser.CurrentVillageID != "" {
		fields = append(fields, "current_village_id = $"+strconv.Itoa(argID))
		args = append(args, updateUser.CurrentVillageID)
		argID++
	}

	if len(fields) == 0 {
		return ur.Info(userID) // Если ничего не обновляется, просто вернуть текущие данные
	}

	query := "UPDATE users SET " + strings.Join(fields, ", ") + " WHERE user_id = $" + strconv.Itoa(argID) // nolint:gosec
	args = append(args, userID)

	res, err := ur.DB.Exec(query, args...)
	if err != nil {
		ur.Logger.Warnf("Ошибка при обновлении профиля: %v", err)
		return nil, myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		ur.Logger.Warnf("Не удалось получить количество обновлённых строк: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if rowsAffected == 0 {
		return nil, myErr.ErrNotFound
	}

	return ur.Info(userID)
}
