package storage

import (
	"context"
	"errors"

	"github.com/referly/referral-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateName indicates a user with that name already exists.
var ErrDuplicateName = errors.New("user name already exists")

// ErrDuplicateEmail indicates a user with that email already exists.
var ErrDuplicateEmail = errors.New("user email already exists")

// UserStore captures persistence operations needed by the auth handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// ReferralStore captures persistence operations needed by the referral handlers.
type ReferralStore interface {
	CreateReferral(ctx context.Context, referral models.Referral) (models.Referral, error)
	ListReferrals(ctx context.Context) ([]models.Referral, error)
	ListReferralsByProgram(ctx context.Context, name string) ([]models.Referral, error)
}
