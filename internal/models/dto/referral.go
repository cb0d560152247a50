package dto

import "github.com/referly/referral-be/internal/models"

type CreateReferralRequest struct {
	Name           string  `json:"name" validate:"required"`
	ReferenceBonus float64 `json:"referenceBonus" validate:"required"`
	RefereeBonus   float64 `json:"refereeBonus" validate:"required"`
	Email          string  `json:"email" validate:"required"`
}

type CreateReferralResponse struct {
	Referral models.Referral `json:"referral"`
}

type ListReferralsRequest struct {
	Filter string `json:"filter"`
}

// ReferralSummary is the projection returned for filtered listings: the
// program name and bonus amounts, without id or recipient email.
type ReferralSummary struct {
	Name           string  `json:"name"`
	ReferenceBonus float64 `json:"referenceBonus"`
	RefereeBonus   float64 `json:"refereeBonus"`
}
