// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	purgeExpired = pflag.Bool("purge-expired", false, "Purges expired sessions once and exits")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"postgres", "sqlite"}
)

// PurgeExpiredOnly reports whether the process was started just to run
// one purge pass instead of serving.
func PurgeExpiredOnly() bool {
	return *purgeExpired
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("session.ttl", "session_ttl")
	v.BindEnv("session.reap_every", "session_reap_every")

	v.BindEnv("resume.max_chars", "resume_max_chars")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "resumes.db")

	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.reap_every", "5m")

	v.SetDefault("resume.max_chars", 100000)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional, envs and defaults cover everything
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid db driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db dsn can't be empty")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetDuration("session.ttl") <= 0 {
		return errors.New("session.ttl must be bigger than 0")
	}

	if v.GetDuration("session.reap_every") <= 0 {
		return errors.New("session.reap_every must be bigger than 0")
	}

	if v.GetInt("resume.max_chars") <= 0 {
		return errors.New("resume.max_chars must be bigger than 0")
	}

	return nil
}
