package account

import (
	"github.com/utilitech/utilicore/internal/account/repository"
	"github.com/utilitech/utilicore/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
