package main

import (
	"github.com/utilitech/utilicore/internal/config"
	"github.com/utilitech/utilicore/internal/migration"
	"github.com/utilitech/utilicore/internal/observability"
	"github.com/utilitech/utilicore/internal/seed"
	"github.com/utilitech/utilicore/internal/server"
	"github.com/utilitech/utilicore/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
		seed.Module,
		server.Module,
	)
	app.Run()
}
