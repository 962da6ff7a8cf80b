package profile

import (
	"github.com/utilitech/utilicore/internal/profile/repository"
	"github.com/utilitech/utilicore/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
