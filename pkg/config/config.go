package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Catalog      CatalogConfig
	Pricing      PricingConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SLICEHAUS_APP_ENV" required:"true"`
	Port         string `envconfig:"SLICEHAUS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SLICEHAUS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SLICEHAUS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SLICEHAUS_DB_DSN"`
	Driver string `envconfig:"SLICEHAUS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SLICEHAUS_DB_HOST"`
	LegacyPort     int    `envconfig:"SLICEHAUS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SLICEHAUS_DB_USER"`
	LegacyPassword string `envconfig:"SLICEHAUS_DB_PASSWORD"`
	LegacyName     string `envconfig:"SLICEHAUS_DB_NAME"`
	LegacySSLMode  string `envconfig:"SLICEHAUS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SLICEHAUS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SLICEHAUS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SLICEHAUS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SLICEHAUS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SLICEHAUS_REDIS_URL" required:"true"`
	Password     string        `envconfig:"SLICEHAUS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SLICEHAUS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SLICEHAUS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SLICEHAUS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SLICEHAUS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SLICEHAUS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SLICEHAUS_REDIS_WRITE_TIMEOUT" default:"5s"`
	CartTTL      time.Duration `envconfig:"SLICEHAUS_REDIS_CART_TTL" default:"168h"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SLICEHAUS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SLICEHAUS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SLICEHAUS_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SLICEHAUS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SLICEHAUS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SLICEHAUS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SLICEHAUS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SLICEHAUS_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	// MenuPath points at the menu JSON document. Empty means the
	// compiled-in default menu.
	MenuPath string `envconfig:"SLICEHAUS_CATALOG_MENU_PATH"`
}

type PricingConfig struct {
	TaxRate     float64 `envconfig:"SLICEHAUS_PRICING_TAX_RATE" default:"0.08"`
	DeliveryFee float64 `envconfig:"SLICEHAUS_PRICING_DELIVERY_FEE" default:"4.99"`
}

type CheckoutConfig struct {
	MaxItems        int `envconfig:"SLICEHAUS_CHECKOUT_MAX_ITEMS" default:"50"`
	MaxQuantity     int `envconfig:"SLICEHAUS_CHECKOUT_MAX_QUANTITY" default:"20"`
	MaxStringLength int `envconfig:"SLICEHAUS_CHECKOUT_MAX_STRING_LENGTH" default:"500"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SLICEHAUS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SLICEHAUS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
