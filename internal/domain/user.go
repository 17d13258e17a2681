package domain

import "strings"

// User пользователь, на которого оформляется резервирование
type User struct {
	ID        string
	FirstName string
	Name      string
}

// FullName собирает отображаемое имя пользователя
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.Name)
}

// Tag бейдж (RFID и т.п.), принадлежащий ровно одному пользователю
type Tag struct {
	ID       string
	VisualID string
	UserID   string
	Active   bool
}
