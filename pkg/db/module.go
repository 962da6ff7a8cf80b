package db

import (
	"github.com/bwmarrin/snowflake"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"github.com/utilitech/utilicore/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Provide(NewSnowflakeNode),
)

// Open connects to the configured database. The default is an in-memory
// sqlite store, so all state is lost on restart and reseeded at startup.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.Use(otelgorm.NewPlugin()); err != nil {
		return nil, err
	}

	if cfg.DBType == "sqlite" {
		// Shared-cache in-memory sqlite loses its schema once the last
		// connection closes; pin a single connection.
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("database connected", zap.String("type", cfg.DBType))
	return gdb, nil
}

func NewSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
