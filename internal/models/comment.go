package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID
	Comment   string
	PostID    uuid.UUID
	Owner     uuid.UUID
	CreatedAt time.Time
}
