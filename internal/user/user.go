package user

import (
	"time"

	types "villagepulse-main/internal/types/user"
)

// Роли пользователей, участвуют в расчете веса голоса
const (
	RoleUser       = "USER"
	RolePM         = "PM"
	RolePO         = "PO"
	RoleResearcher = "RESEARCHER"
	RoleModerator  = "MODERATOR"
	RoleAdmin      = "ADMIN"
)

// User структура пользователя
type User struct {
	ID               string    `json:"user_id"` // uuid
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	CurrentVillageID string    `json:"current_village_id,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
}

// UserRepo интерфейс удовлетворяющий методам сущности пользователя
//
//go:generate mockgen -source=internal/user/user.go -destination=internal/mocks/mock_user_repo.go -package=mocks
type UserRepo interface {
	// CheckUser - проверяет пользователя по почте и паролю
	CheckUser(email, password string) (*User, error)
	// CreateUser создает пользователя с ролью USER
	CreateUser(u types.CreateUser) (*User, error)
	// Info возвращает информацию о пользователе
	Info(userID string) (*User, error)
	// ChangeProfile меняет поля пользователя с userID по updateUser
	ChangeProfile(userID string, updateUser types.ChangeUser) (*User, error)
}
