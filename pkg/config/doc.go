// Package config loads typed configuration from environment variables.
//
// Every component that needs settings declares an env-tagged struct next to
// its code (kvstore.Config, redis.Config, formhttp.Config, ...) and calls Load:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// The first Load reads a `.env` file from the working directory when one
// exists (github.com/joho/godotenv); parsing is delegated to
// github.com/caarlos0/env/v11. Each configuration type is parsed once and
// cached for the lifetime of the process. Use LoadEnv to read explicit files
// and ResetCache in tests.
package config
