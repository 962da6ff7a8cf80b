package invoice

import (
	"github.com/utilitech/utilicore/internal/invoice/repository"
	"github.com/utilitech/utilicore/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
