package plan

import (
	"github.com/utilitech/utilicore/internal/plan/repository"
	"github.com/utilitech/utilicore/internal/plan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("plan.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
