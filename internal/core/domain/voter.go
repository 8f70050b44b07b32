package domain

import (
	"time"

	"github.com/google/uuid"
)

type Voter struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	State      string    `json:"state"`
	LGA        string    `json:"lga"`
	Accredited bool      `json:"accredited"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoleOfficial is the access token role of election officials.
const RoleOfficial = "admin"
