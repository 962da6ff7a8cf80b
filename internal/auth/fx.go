package auth

import (
	"github.com/utilitech/utilicore/internal/auth/repository"
	"github.com/utilitech/utilicore/internal/auth/service"
	"github.com/utilitech/utilicore/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(token.NewIssuer),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
