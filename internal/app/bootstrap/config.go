// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/ticketry/ticketry/internal/app/system/auth"
	"go.uber.org/zap"
)

// devJWTSecret is the out-of-the-box signing key. ValidateConfig
// refuses to start a production deployment with it.
const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for Ticketry.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: TICKETRY_MONGO_URI, TICKETRY_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "ticketry", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Token configuration
	{Name: "jwt_secret", Default: devJWTSecret, Desc: "HMAC signing key for session tokens (must be strong in production)"},
	{Name: "jwt_lifetime", Default: "10h", Desc: "Session token lifetime (e.g., 10h, 30m)"},

	// Password hashing
	{Name: "bcrypt_cost", Default: 12, Desc: "bcrypt work factor for password hashes (4-31)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TICKETRY", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:   appValues.String("jwt_secret"),
		JWTLifetime: appValues.Duration("jwt_lifetime", auth.DefaultLifetime),

		BcryptCost: appValues.Int("bcrypt_cost"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Ticketry validates the MongoDB URI format to catch configuration
// errors early, and refuses production deployments running on the
// development signing key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.JWTSecret == devJWTSecret {
		return fmt.Errorf("jwt_secret must be set in production")
	}

	if appCfg.BcryptCost < 4 || appCfg.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 31, got %d", appCfg.BcryptCost)
	}

	if appCfg.JWTLifetime <= 0 {
		return fmt.Errorf("jwt_lifetime must be positive")
	}

	return nil
}
