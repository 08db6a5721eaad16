package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	Request struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	}
	User struct {
		UUID        uuid.UUID `json:"uuid"`
		Email       string    `json:"email"`
		DisplayName string    `json:"display_name"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
