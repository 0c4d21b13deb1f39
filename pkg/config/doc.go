// Package config loads typed configuration from environment variables and
// optional .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct annotated with `env` tags
//     and caches the result per type, so repeated calls are cheap.
//   - MustLoad and MustLoadEnv panic instead of returning errors, for
//     configuration the process cannot start without.
//   - ResetCache and ForceReload help tests that change the environment.
//
// # Usage
//
//	var cfg emitter.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Errors
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrNilPointer: nil pointer passed to Load or ForceReload.
package config
