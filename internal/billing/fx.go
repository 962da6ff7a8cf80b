package billing

import (
	"github.com/utilitech/utilicore/internal/billing/repository"
	"github.com/utilitech/utilicore/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
