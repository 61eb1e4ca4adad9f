// FILE: internal/entity/user_entity.go
package entity

import (
	"strings"
	"time"
)

type User struct {
	CWID         string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
