package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "SLICEHAUS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "SLICEHAUS_APP_ENV"
	EnvPort      = "SLICEHAUS_APP_PORT"
	EnvRedisURL  = "SLICEHAUS_REDIS_URL"
	EnvJWTSecret = "SLICEHAUS_JWT_SECRET"
	EnvJWTIssuer = "SLICEHAUS_JWT_ISSUER"
)

const (
	EnvDBDSN  = "SLICEHAUS_DB_DSN"
	EnvDBHost = "SLICEHAUS_DB_HOST"
	EnvDBUser = "SLICEHAUS_DB_USER"
	EnvDBName = "SLICEHAUS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
