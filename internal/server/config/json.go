package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkowalski/quoteshelf/internal/flagx"
	"github.com/dkowalski/quoteshelf/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "1h" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr   string         `json:"endpoint_addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	RedisAddr      string         `json:"redis_addr"`
	RedisPassword  string         `json:"redis_password"`
	RedisDB        int            `json:"redis_db"`
	SecretKey      string         `json:"secret_key"`
	TokenLifetime  timex.Duration `json:"token_lifetime"`
	RegisterLimit  int64          `json:"register_limit"`
	RegisterWindow timex.Duration `json:"register_window"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config command-line flags;
// if neither is set, no JSON file is loaded. An unreadable or invalid file
// panics, because the caller explicitly asked for it.
//
// The file must set every field: all fields are copied over, so a key
// omitted from the file resets that field to its zero value.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.RedisAddr = c.RedisAddr
	config.RedisPassword = c.RedisPassword
	config.RedisDB = c.RedisDB
	config.SecretKey = c.SecretKey
	config.TokenLifetime = time.Duration(c.TokenLifetime.Duration)
	config.RegisterLimit = c.RegisterLimit
	config.RegisterWindow = time.Duration(c.RegisterWindow.Duration)
}
