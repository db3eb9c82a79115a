package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

func SetConfigDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("CITIES_FILE", "./data/cities.txt")
	viper.SetDefault("LINKS_FILE", "./data/links.txt")
	viper.SetDefault("METRICS_FILE", "./data/query_metrics.txt")

	viper.SetDefault("ROUTING_SEARCH_STRATEGY", "linear")
	viper.SetDefault("ROUTING_CACHE_SIZE", 1024)
	viper.SetDefault("ROUTING_CANDIDATE_FILTER", "none")
	viper.SetDefault("CORRIDOR_MARGIN_KM", 50.0)
	viper.SetDefault("CORRIDOR_WIDTH_KM", 200.0)

	viper.SetDefault("BATCH_WORKERS", 4)
	viper.SetDefault("BATCH_MAX_QUERIES", 256)
}

// ReadConfig loads ./data/config.* on top of the defaults. A missing config file is not an error.
func ReadConfig() error {
	SetConfigDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
