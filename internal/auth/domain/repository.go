package domain

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
}
