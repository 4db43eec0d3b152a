package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsite/clients"
	"eventsite/config"
	"eventsite/db"
	"eventsite/http"
	"eventsite/message"
	"eventsite/pricing"
	"eventsite/registration"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	msgRouter  *message.Router
	forwarder  *message.Forwarder
	httpRouter *echo.Echo
	port       string
}

func New(
	cfg config.Config,
	logger watermill.LoggerAdapter,
	redisClient *redis.Client,
	dbConn *sqlx.DB,
	emailClient clients.EmailClient,
) (*Service, error) {
	msgRouter, err := message.NewRouter(message.RouterDeps{
		Logger:             logger,
		RedisClient:        redisClient,
		EmailSender:        emailClient,
		PaymentAckTemplate: cfg.Email.TemplateID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating message router: %w", err)
	}

	fwd, err := message.NewForwarder(dbConn, redisClient, logger)
	if err != nil {
		return nil, fmt.Errorf("creating forwarder: %w", err)
	}

	apiClient := clients.New(cfg.APIBaseURL)

	httpRouter := http.NewRouter(http.RouterDeps{
		Registry:         pricing.NewRegistry(),
		PaymentRecorder:  db.NewPaymentRepo(dbConn, logger),
		RegistrationFlow: registration.NewFlow(db.NewRegistrationRepo(dbConn, logger)),
		Payments:         clients.NewPaymentsClient(apiClient),
		Tickets:          clients.NewTicketsClient(apiClient),
		PollInterval:     cfg.PollInterval,
		PollMaxAttempts:  cfg.PollMaxAttempts,
	})

	return &Service{
		msgRouter:  msgRouter,
		forwarder:  fwd,
		httpRouter: httpRouter,
		port:       cfg.Port,
	}, nil
}

func (s Service) Run(ctx context.Context) error {
	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.msgRouter.Run(runCtx); err != nil {
			return fmt.Errorf("running messaging router: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		if err := s.forwarder.Run(runCtx); err != nil {
			return fmt.Errorf("running forwarder: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		// Wait for message router
		<-s.msgRouter.Running()

		logrus.Info("Starting HTTP server...")
		err := s.httpRouter.Start(":" + s.port)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logrus.Info("Shutting down HTTP server...")
		if err := s.httpRouter.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("waiting for shutdown: %w", err)
	}
	logrus.Info("Shutdown complete.")

	return nil
}
