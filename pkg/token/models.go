package token

import (
	"time"

	"github.com/google/uuid"
)

const (
	AccessTokenExpirationTime  = time.Minute * 15
	RefreshTokenExpirationTime = time.Hour * 24 * 7

	RefreshTokenName = "refresh_token"
	AccessTokenName  = "access_token"

	RoleAdmin = "admin"
)

type CreateTokenParams struct {
	ID       uuid.UUID
	Email    string
	Roles    []string
	Duration time.Duration
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type TokenPairParams struct {
	ID    uuid.UUID
	Email string
	Roles []string
}
