package entity

import "time"

// User создаётся при первом обращении и никогда не удаляется.
// Из изменяемого — только язык интерфейса.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	LanguageRU = "ru"
	LanguageEN = "en"
)

// Handle возвращает отображаемое имя пользователя для уведомлений.
func (u *User) Handle() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.FirstName
}
