package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lunchbot/internal/command"
	"lunchbot/internal/configuration"
	"lunchbot/internal/configuration/properties"
	"lunchbot/internal/metrics"
	"lunchbot/internal/registry"
	"lunchbot/internal/selector"
	"lunchbot/internal/storage"
	"lunchbot/internal/transport"
)

// Services is everything a transport needs once the registry is loaded.
type Services struct {
	Config    *properties.AppConfigProvider
	Storage   *storage.Service
	Registry  *registry.Registry
	Processor *command.Processor
	Metrics   *metrics.Server
	Health    *transport.HealthService
}

func NewServices(cfg *properties.Config) (*Services, error) {
	provider := properties.NewProvider(cfg)

	storageSvc, err := storage.Open(provider.GetStorage())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	reg, err := registry.Open(storageSvc)
	if err != nil {
		_ = storageSvc.Close()
		if errors.Is(err, storage.ErrSnapshotMissing) {
			return nil, fmt.Errorf("%w (run `lunchbot init` or `lunchbot import <file.json>` first)", err)
		}
		return nil, err
	}
	router := command.NewDefaultRouter(reg, selector.NewSource(), provider.GetCommand())

	return &Services{
		Config:    provider,
		Storage:   storageSvc,
		Registry:  reg,
		Processor: command.NewProcessor(router),
	}, nil
}

// StartProbes brings up the optional metrics and gRPC health endpoints and
// marks both ready.
func (s *Services) StartProbes() error {
	if m := s.Config.GetMetrics(); m.Enabled {
		s.Metrics = metrics.NewServer(m.Address)
		if err := s.Metrics.Start(); err != nil {
			return err
		}
		s.Metrics.SetReady(true)
	}

	if h := s.Config.GetHealth(); h.Enabled {
		s.Health = transport.NewHealthService(h)
		if _, err := s.Health.StartServer(); err != nil {
			return fmt.Errorf("start health service: %w", err)
		}
		s.Health.SetServing(true)
	}
	return nil
}

func (s *Services) Close() {
	if s.Health != nil {
		s.Health.SetServing(false)
		s.Health.Stop()
	}
	if s.Metrics != nil {
		s.Metrics.SetReady(false)
		s.Metrics.Stop()
	}
	if err := s.Storage.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

func runSlack(ctx context.Context, cfg *properties.Config) error {
	if err := configuration.ValidateSlack(&cfg.Slack); err != nil {
		return err
	}

	svc, err := NewServices(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.StartProbes(); err != nil {
		return err
	}

	slackSvc := transport.NewSlackService(svc.Config.GetSlack(), svc.Processor)
	slog.Info("lunchbot ready", "transport", "slack")

	err = slackSvc.Run(ctx)
	slog.Info("shutting down lunchbot...")
	return err
}

func runConsole(ctx context.Context, cfg *properties.Config, historyFile string) error {
	svc, err := NewServices(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.StartProbes(); err != nil {
		return err
	}

	var opts []transport.ConsoleOption
	if historyFile != "" {
		opts = append(opts, transport.WithHistoryFile(historyFile))
	}
	return transport.NewConsoleService(svc.Processor, opts...).Run(ctx)
}
