package sysconfig

import (
	"github.com/utilitech/utilicore/internal/sysconfig/repository"
	"github.com/utilitech/utilicore/internal/sysconfig/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sysconfig.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
