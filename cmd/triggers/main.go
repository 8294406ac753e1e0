package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/go-class-triggers/internal/application/dispatch"
	"github.com/go-class-triggers/internal/application/reaper"
	"github.com/go-class-triggers/internal/config"
	"github.com/go-class-triggers/internal/domain"
	"github.com/go-class-triggers/internal/infrastructure/awsclient"
	"github.com/go-class-triggers/internal/infrastructure/cognito"
	"github.com/go-class-triggers/internal/infrastructure/firebase"
	"github.com/go-class-triggers/internal/infrastructure/sns"
	"github.com/go-class-triggers/internal/pkg/logger"
	"github.com/go-class-triggers/internal/pkg/metrics"
	transporthttp "github.com/go-class-triggers/internal/transport/http"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	if envErr != nil {
		log.Debug("no .env file found, reading from environment")
	}
	if err := cfg.Validate(); err != nil {
		log.Error("config", slog.Any("error", err))
		os.Exit(1)
	}

	schema, err := domain.SchemaFor(cfg.SchemaLocale)
	if err != nil {
		log.Error("config", slog.Any("error", err))
		os.Exit(1)
	}
	schema = schema.WithTopicPrefix(cfg.TopicPrefix)

	messenger, accounts, err := providers(context.Background(), cfg)
	if err != nil {
		log.Error("providers", slog.Any("error", err))
		os.Exit(1)
	}

	deps := &transporthttp.Deps{
		Dispatcher: dispatch.NewService(messenger, schema, cfg.ClickAction),
		Reaper:     reaper.NewService(accounts),
		Schema:     schema,
		Logger:     log,
		Metrics:    metrics.New(),
		Started:    time.Now(),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			slog.String("port", cfg.AppPort),
			slog.String("env", cfg.AppEnv),
			slog.String("push_provider", cfg.PushProvider),
			slog.String("identity_provider", cfg.IdentityProvider),
			slog.String("schema", schema.Locale),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

// providers wires the push and identity collaborators selected by cfg. The
// Firebase app is shared by both and only initializes on first use.
func providers(ctx context.Context, cfg *config.Config) (dispatch.Messenger, reaper.AccountDeleter, error) {
	var app *firebase.App
	if cfg.UsesFirebase() {
		app = firebase.NewApp(firebase.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialFile,
		})
	}

	var messenger dispatch.Messenger
	var accounts reaper.AccountDeleter
	if cfg.UsesAWS() {
		awsCfg, err := awsclient.Load(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		endpoint := awsclient.BaseEndpoint(cfg)
		if cfg.PushProvider == config.PushProviderSNS {
			messenger = sns.NewTopicSender(awsCfg, endpoint, cfg.SNSTopicARNPrefix)
		}
		if cfg.IdentityProvider == config.IdentityProviderCognito {
			accounts = cognito.NewAccountDeleter(awsCfg, endpoint, cfg.CognitoUserPoolID)
		}
	}
	if messenger == nil {
		messenger = firebase.NewMessenger(app)
	}
	if accounts == nil {
		accounts = firebase.NewAccounts(app)
	}
	return messenger, accounts, nil
}
