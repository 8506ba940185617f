package ports

import (
	"context"

	"github.com/cargotrack/tracking-api/internal/core/domain"
)

// AuthRepository defines persistence operations for users.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login returns a signed bearer token on success.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
