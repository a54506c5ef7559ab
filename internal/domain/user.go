package domain

import "time"

// User: учётная запись. Email уникален.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
}
