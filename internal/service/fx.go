package service

import (
	"github.com/utilitech/utilicore/internal/service/repository"
	"github.com/utilitech/utilicore/internal/service/service"
	"go.uber.org/fx"
)

var Module = fx.Module("service.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
