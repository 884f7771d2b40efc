package users

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/asbbic/membership/internal/config"
	"github.com/asbbic/membership/internal/dto"
	"github.com/asbbic/membership/internal/repository"
	svc "github.com/asbbic/membership/internal/services"
	"github.com/asbbic/membership/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	_ UserRepository = (*repository.UserRepository)(nil)
	_ TokenService   = (*token.Jwt)(nil)
)

type UserRepository interface {
	Get(ctx context.Context, filter repository.UserRepositoryFilter) (*repository.User, error)
}

type TokenService interface {
	GenerateTokenPair(params *token.TokenPairParams) (*token.TokenPair, error)
}

type User struct {
	Config       *config.Config
	TokenService TokenService
	UserRepo     UserRepository
}

func New(cfg *config.Config, tokenService TokenService, userRepo UserRepository) *User {
	return &User{
		Config:       cfg,
		TokenService: tokenService,
		UserRepo:     userRepo,
	}
}

// Login authenticates a reviewer and sets the token pair as cookies on w.
func (u *User) Login(ctx context.Context, w http.ResponseWriter, input *dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := u.UserRepo.Get(ctx, repository.UserRepositoryFilter{
		Email: &input.Email,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svc.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, svc.Unauthorized("Invalid email or password")
	}

	pair, err := u.TokenService.GenerateTokenPair(&token.TokenPairParams{
		ID:    user.ID,
		Email: user.Email,
		Roles: []string{user.Role},
	})
	if err != nil {
		return nil, err
	}

	if err := u.SetJWTCookie(w, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: &dto.AuthUser{
			ID:    user.ID,
			Email: user.Email,
			Roles: []string{user.Role},
		},
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(token.AccessTokenExpirationTime.Seconds()),
	}, nil
}
