// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/ticketry/ticketry/internal/app/system/authutil"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	authutil.SetCost(appCfg.BcryptCost)
	logger.Info("password hashing configured", zap.Int("bcrypt_cost", appCfg.BcryptCost))
	return nil
}
