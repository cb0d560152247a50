package models

import (
	"time"

	"github.com/google/uuid"
)

// Referral is one row of a referral program: who to notify and the bonus
// amounts owed to referrer and referee. Rows are append-only.
type Referral struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ReferenceBonus float64   `json:"referenceBonus"`
	RefereeBonus   float64   `json:"refereeBonus"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
}
