package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type holdemEnvironment struct {
	RedisHost   string
	RedisPort   string
	RedisPW     string
	RedisDB     string
	PersistMode string
}

// Environment is a helper object for accessing environment variables.
var Environment = &holdemEnvironment{
	RedisHost:   "REDIS_HOST",
	RedisPort:   "REDIS_PORT",
	RedisPW:     "REDIS_PW",
	RedisDB:     "REDIS_DB",
	PersistMode: "PERSIST_METHOD",
}

func (h *holdemEnvironment) GetRedisHost() string {
	host := os.Getenv(h.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", h.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (h *holdemEnvironment) GetRedisPort() int {
	portStr := os.Getenv(h.RedisPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", h.RedisPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (h *holdemEnvironment) GetRedisPW() string {
	return os.Getenv(h.RedisPW)
}

func (h *holdemEnvironment) GetRedisDB() int {
	dbStr := os.Getenv(h.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

// GetPersistMode returns "redis" or "memory", defaulting to memory.
func (h *holdemEnvironment) GetPersistMode() string {
	mode := os.Getenv(h.PersistMode)
	if mode == "" {
		return "memory"
	}
	return mode
}
