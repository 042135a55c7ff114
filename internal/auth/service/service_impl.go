package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/saletrack/internal/auth/domain"
	"github.com/smallbiznis/saletrack/internal/auth/password"
	"github.com/smallbiznis/saletrack/internal/clock"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	clock clock.Clock
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, clk clock.Clock, genID *snowflake.Node) domain.Service {
	return &Service{
		log:   log.Named("auth.service"),
		repo:  repo,
		clock: clk,
		genID: genID,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	username := normalizeUsername(req.Username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}
	if len(req.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           s.genID.Generate(),
		Username:     username,
		PasswordHash: hashed,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("username", username))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, username, plain string) (*domain.User, error) {
	username = normalizeUsername(username)
	if username == "" || plain == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(plain, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func normalizeUsername(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
