package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	Env      string
	AppName  string
	Build    string

	API struct {
		BaseURL string
		Timeout time.Duration
	}

	Console struct {
		HydrationWait time.Duration // how long `list` waits for detail backfill before rendering
	}

	Stub struct {
		Addr       string
		SecretKey  string
		AdminEmail string
		AdminPwd   string
	}

	RollbarToken string
}

// NewConfig loads configuration from the environment (prefixed by ENV)
// and an optional config/.env.<env> file.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Kondoo Console")
	conf.SetDefault("apiBaseUrl", "http://localhost:8000/v1")
	conf.SetDefault("apiTimeout", 30*time.Second)
	conf.SetDefault("hydrationWait", 5*time.Second)
	conf.SetDefault("stubAddr", ":8000")
	conf.SetDefault("stubSecretKey", "n0t-4-r3al-s3cr3t.local-stub-only")
	conf.SetDefault("stubAdminEmail", "admin@localhost")
	conf.SetDefault("stubAdminPwd", "LocalPass123!")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	cfg := &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Env:          env,
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
	cfg.API.BaseURL = conf.GetString("apiBaseUrl")
	cfg.API.Timeout = conf.GetDuration("apiTimeout")
	cfg.Console.HydrationWait = conf.GetDuration("hydrationWait")
	cfg.Stub.Addr = conf.GetString("stubAddr")
	cfg.Stub.SecretKey = conf.GetString("stubSecretKey")
	cfg.Stub.AdminEmail = conf.GetString("stubAdminEmail")
	cfg.Stub.AdminPwd = conf.GetString("stubAdminPwd")
	return cfg
}
