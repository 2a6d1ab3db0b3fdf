package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/wayplan/wayplan/pkg/util"
)

var Client *redis.Client

const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect sets up the shared redis client used for quote caching. Redis is
// optional: with no address configured the quote cache is simply disabled.
func Connect() error {
	env := util.GetEnvironmentVariables()

	if env["WAYPLAN_REDIS_ADDRESS"] == "" {
		log.Info().Msg("Skipping Redis setup")
		return nil
	}

	address := env["WAYPLAN_REDIS_ADDRESS"]
	password := defaultConnectionPassword
	database := defaultDatabase

	if env["WAYPLAN_REDIS_PASSWORD"] != "" {
		password = env["WAYPLAN_REDIS_PASSWORD"]
	}

	if env["WAYPLAN_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["WAYPLAN_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	statusCmd := Client.Ping(context.Background())
	if err := statusCmd.Err(); err != nil {
		return err
	}

	log.Info().Str("address", address).Msg("Redis client setup")

	return nil
}
