package auth

import (
	"github.com/smallbiznis/saletrack/internal/auth/repository"
	"github.com/smallbiznis/saletrack/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
