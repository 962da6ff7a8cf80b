package payment

import (
	"github.com/utilitech/utilicore/internal/payment/repository"
	"github.com/utilitech/utilicore/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
