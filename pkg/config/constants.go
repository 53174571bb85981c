package config

const (
	EnvPrefix = "minicrm"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "MINICRM_APP_ENV"
	EnvPort   = "MINICRM_APP_PORT"

	EnvDBDSN  = "MINICRM_DB_DSN"
	EnvDBHost = "MINICRM_DB_HOST"
	EnvDBUser = "MINICRM_DB_USER"
	EnvDBName = "MINICRM_DB_NAME"

	EnvRedisURL = "MINICRM_REDIS_URL"

	EnvLoyaltyPointsPerReal = "MINICRM_LOYALTY_POINTS_PER_REAL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
