package user

// CreateUser структура для регистрации нового пользователя
type CreateUser struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	CurrentVillageID string `json:"current_village_id,omitempty"`
}

// ChangeUser структура пользователя с полями для изменения
type ChangeUser struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	CurrentVillageID string `json:"current_village_id"`
}
