package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/fittracker/internal"
	"github.com/2beens/fittracker/internal/config"
	"github.com/2beens/fittracker/internal/logging"
	"github.com/2beens/fittracker/pkg"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	host := flag.String("host", "", "overrides the host from the config file")
	port := flag.Int("port", 0, "overrides the port from the config file")
	flag.Parse()

	// secrets may come from a local .env file during development
	if err := godotenv.Load(); err != nil {
		log.Tracef("no .env file loaded: %s", err)
	}

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "fittracker",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using storage backend: [%s]", cfg.StorageBackend)
	if cfg.StorageBackend == config.StorageBackendSQLite {
		exists, err := pkg.PathExists(cfg.SQLitePath, false)
		if err != nil {
			log.Fatalf("check sqlite db file: %s", err)
		}
		if !exists {
			log.Warnf("sqlite db file not found, a new one will be created: %s", cfg.SQLitePath)
		}
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
		versionInfo = "dev"
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	apiToken := os.Getenv("FITTRACKER_API_TOKEN")
	if apiToken == "" {
		log.Errorf("api token not set, all routes are open. use FITTRACKER_API_TOKEN to set it")
	}

	redisPassword := os.Getenv("FITTRACKER_REDIS_PASS")
	if cfg.RedisEnabled && redisPassword == "" {
		log.Warnln("redis password not set. use FITTRACKER_REDIS_PASS")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	server, err := internal.NewServer(
		context.Background(),
		internal.NewServerParams{
			Config:                  cfg,
			APIToken:                apiToken,
			VersionInfo:             versionInfo,
			DBUser:                  os.Getenv("FITTRACKER_DB_USER"),
			DBPassword:              os.Getenv("FITTRACKER_DB_PASS"),
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "--short", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
