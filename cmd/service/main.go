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

	"github.com/2beens/fitcompare/internal"
	"github.com/2beens/fitcompare/internal/config"
	"github.com/2beens/fitcompare/internal/logging"
	"github.com/2beens/fitcompare/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogFileMaxSizeMB: cfg.LogFileMaxSizeMB,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "fitcompare-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	identitySecret := os.Getenv("FITCOMPARE_IDENTITY_SECRET")
	identityPublicKey := os.Getenv("FITCOMPARE_IDENTITY_PUBLIC_KEY")
	if identitySecret == "" && identityPublicKey == "" {
		log.Fatalln("identity token key not set. use FITCOMPARE_IDENTITY_PUBLIC_KEY (RS256) or FITCOMPARE_IDENTITY_SECRET (HS256)")
	}

	redisPassword := os.Getenv("FITCOMPARE_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use FITCOMPARE_REDIS_PASS")
	}

	postgresPassword := os.Getenv("FITCOMPARE_POSTGRES_PASS")
	if postgresPassword == "" {
		log.Debugln("postgres password not set (FITCOMPARE_POSTGRES_PASS), connecting without one")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
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

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			IdentitySecret:          identitySecret,
			IdentityPublicKeyPEM:    identityPublicKey,
			RedisPassword:           redisPassword,
			PostgresPassword:        postgresPassword,
			GCSCredentialsFile:      os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
