package app

import (
	"time"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	IntakeBucket   string
	RedisAddr      string
	RedisPassword  string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	intakeBucket := utils.GetEnv("INTAKE_BUCKET_NAME", "intake", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
	redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		IntakeBucket:   intakeBucket,
		RedisAddr:      redisAddr,
		RedisPassword:  redisPassword,
	}
}
