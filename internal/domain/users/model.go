package users

import "time"

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Telegram — профиль из апдейта.
type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// DisplayName как в приветствии: username, иначе имя.
func (t Telegram) DisplayName() string {
	if t.Username != "" {
		return t.Username
	}
	return t.FirstName
}
