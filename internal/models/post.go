package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Owner     uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
