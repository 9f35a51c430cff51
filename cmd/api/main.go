package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quickcashhomes/offer-platform/internal/api/router"
	appconfig "github.com/quickcashhomes/offer-platform/internal/config"
	"github.com/quickcashhomes/offer-platform/internal/notify"
	"github.com/quickcashhomes/offer-platform/internal/observability/metrics"
	"github.com/quickcashhomes/offer-platform/internal/offer"
	"github.com/quickcashhomes/offer-platform/internal/submit"
	"github.com/quickcashhomes/offer-platform/pkg/logging"
)

func main() {
	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting offer-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"lead_backend", cfg.LeadBackend,
	)

	ctx := context.Background()

	backend, cleanup, err := buildBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build submission backend", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	submissionMetrics := metrics.NewSubmissionMetrics(nil)
	service := submit.NewService(backend, cfg.BackendTimeout, submissionMetrics, logger)
	submitHandler := submit.NewHandler(service, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		SubmitHandler:      submitHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildBackend composes the single submission backend selected by
// LEAD_BACKEND. The returned cleanup releases any client resources.
func buildBackend(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (submit.Backend, func(), error) {
	noop := func() {}

	if cfg.LeadBackend == appconfig.BackendOffer {
		gemini, err := offer.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			return nil, noop, err
		}
		generator := offer.NewGenerator(gemini, logger)
		return submit.NewGeneratorBackend(generator), func() { _ = gemini.Close() }, nil
	}

	sender, err := buildEmailSender(ctx, cfg, logger)
	if err != nil {
		return nil, noop, err
	}
	mailer := notify.NewLeadMailer(sender, cfg.NotificationEmail, logger)
	return submit.NewNotifierBackend(mailer), noop, nil
}

func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	switch cfg.EmailProvider {
	case appconfig.EmailProviderSendGrid:
		sender := newSendGridSender(cfg, logger)
		if sender == nil {
			logger.Warn("sendgrid selected but no API key configured, falling back to stub sender")
			return notify.NewStubEmailSender(logger), nil
		}
		return sender, nil
	case appconfig.EmailProviderSES:
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger), nil
	default:
		return notify.NewStubEmailSender(logger), nil
	}
}

func newSendGridSender(cfg *appconfig.Config, logger *logging.Logger) *notify.SendGridSender {
	return notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
}

// loadAWSConfig centralizes AWS SDK initialization for the SES sender.
func loadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, err
	}

	if endpoint := cfg.AWSEndpointOverride; endpoint != "" {
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
			func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
				if service == sesv2.ServiceID {
					return aws.Endpoint{
						URL:           endpoint,
						PartitionID:   "aws",
						SigningRegion: cfg.AWSRegion,
					}, nil
				}
				return aws.Endpoint{}, &aws.EndpointNotFoundError{}
			},
		)
	}

	return awsCfg, nil
}
