package migration

import (
	clientdomain "github.com/smallbiznis/facturio/internal/client/domain"
	"github.com/smallbiznis/facturio/internal/config"
	invoicedomain "github.com/smallbiznis/facturio/internal/invoice/domain"
	numberingdomain "github.com/smallbiznis/facturio/internal/numbering/domain"
	"github.com/smallbiznis/facturio/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned migrations are postgres-only; mysql and sqlite fall
		// back to schema sync from the models.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&clientdomain.Client{},
				&numberingdomain.Rule{},
				&invoicedomain.Invoice{},
				&invoicedomain.LineItem{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
