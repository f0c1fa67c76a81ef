package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/HackingCorp/ltcgroup-sub001/internal/adapters"
	"github.com/HackingCorp/ltcgroup-sub001/internal/config"
	"github.com/HackingCorp/ltcgroup-sub001/internal/controller"
	"github.com/HackingCorp/ltcgroup-sub001/internal/core"
	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/ports"
	"github.com/HackingCorp/ltcgroup-sub001/internal/repository"
	"github.com/HackingCorp/ltcgroup-sub001/internal/service"
	"github.com/HackingCorp/ltcgroup-sub001/pkg/httpclient"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "api",
		Short:   "LTC Group payment API",
		Version: Version,
		RunE:    runServe,
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the orders and transactions tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			pool, err := config.InitPostgresPool(cmd.Context(), cfg.DatabaseURL())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := repository.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			slog.Info("Migrations applied")
			return nil
		},
	}
}

func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat))
	return cfg, nil
}

func newEventPublisher(cfg *config.Config) (ports.IEventPublisher, error) {
	switch cfg.EventBus {
	case "nats":
		return adapters.NewNATSPublisher(cfg.NATSURL, adapters.DefaultEventSubject)
	case "amqp":
		return adapters.NewAMQPPublisher(cfg.AMQPURL, adapters.DefaultEventSubject)
	default:
		return adapters.NoopPublisher{}, nil
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := config.InitPostgresPool(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	events, err := newEventPublisher(cfg)
	if err != nil {
		return err
	}
	defer events.Close()

	// Providers
	client := httpclient.NewClient(30 * time.Second)
	s3p := adapters.NewS3PAdapter(adapters.S3PConfig{
		BaseURL:         cfg.S3PBaseURL,
		APIKey:          cfg.S3PAPIKey,
		APISecret:       cfg.S3PAPISecret,
		MTNPayItemID:    cfg.S3PMTNPayItemID,
		OrangePayItemID: cfg.S3POrangePayItemID,
	}, client)
	enkap := adapters.NewEnkapAdapter(adapters.EnkapConfig{
		BaseURL:         cfg.EnkapBaseURL,
		ConsumerKey:     cfg.EnkapConsumerKey,
		ConsumerSecret:  cfg.EnkapConsumerSecret,
		ReturnURL:       cfg.EnkapReturnURL,
		NotificationURL: cfg.EnkapNotificationURL,
	}, client, adapters.NewTokenCache(adapters.DefaultTokenMargin, time.Now))

	providerRegistry := core.NewProviderRegistry()
	providerRegistry.Register(model.MethodMobileMoney, s3p)
	providerRegistry.Register(model.MethodEnkap, enkap)

	// Notifications
	whatsapp := adapters.NewWhatsAppAdapter(adapters.WhatsAppConfig{
		APIURL:        cfg.WhatsAppAPIURL,
		PhoneNumberID: cfg.WhatsAppPhoneNumberID,
		AccessToken:   cfg.WhatsAppAccessToken,
	}, httpclient.NewClient(10*time.Second))
	mailer := adapters.NewSMTPMailer(adapters.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})

	// Repositories
	orders := repository.NewOrderRepository(pool)
	transactions := repository.NewTransactionRepository(pool)

	// Services
	paymentService := service.NewPaymentService(providerRegistry, orders, transactions)
	webhookService := service.NewWebhookService(service.WebhookConfig{
		TeamPhone:            cfg.WhatsAppTeamNumber,
		TeamEmail:            cfg.MailTeamAddress,
		VerifyEnkapSignature: cfg.EnkapVerifySignature,
	}, orders, transactions, whatsapp, mailer, events, enkap)
	orderService := service.NewOrderService(orders)
	contactService := service.NewContactService(mailer, cfg.MailTeamAddress)

	limiter := controller.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Close()

	router := controller.NewRouter(controller.Handlers{
		Payments: controller.NewPaymentController(paymentService),
		Webhooks: controller.NewWebhookController(webhookService),
		Orders:   controller.NewOrderController(orderService),
		Contact:  controller.NewContactController(contactService),
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "port", cfg.Port, "event_bus", cfg.EventBus)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
