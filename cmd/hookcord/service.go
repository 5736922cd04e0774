package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kardianos/service"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hookcord/pkg/auth"
	"hookcord/pkg/bus"
	"hookcord/pkg/config"
	"hookcord/pkg/gateway"
	"hookcord/pkg/handlers"
	"hookcord/pkg/logger"
	"hookcord/pkg/state"
)

// GatewayService implements the service.Interface for the gateway.
type GatewayService struct {
	app    *fx.App
	logger service.Logger
}

// NewGatewayService creates a new gateway service.
func NewGatewayService() *GatewayService {
	return &GatewayService{}
}

// Start implements service.Interface.Start
func (s *GatewayService) Start(svc service.Service) error {
	if s.logger != nil {
		s.logger.Info("Starting hookcord gateway service")
	}

	// Start in a goroutine to not block
	go s.run()

	return nil
}

// Stop implements service.Interface.Stop
func (s *GatewayService) Stop(svc service.Service) error {
	if s.logger != nil {
		s.logger.Info("Stopping hookcord gateway service")
	}

	if s.app != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.app.Stop(ctx); err != nil {
			if s.logger != nil {
				s.logger.Errorf("Error stopping service: %v", err)
			}
			return err
		}
	}

	return nil
}

// run starts the gateway application.
func (s *GatewayService) run() {
	s.app = fx.New(
		appModules(),

		fx.NopLogger, // Suppress fx logs when running as service
	)

	s.app.Run()
}

// appModules assembles the full gateway dependency graph.
func appModules() fx.Option {
	return fx.Options(
		config.Module,
		logger.Module,
		state.Module,
		bus.Module,
		auth.Module,
		handlers.Module,
		gateway.Module,
	)
}

// ServiceConfig returns the service configuration.
func ServiceConfig() *service.Config {
	return &service.Config{
		Name:        "hookcord-gateway",
		DisplayName: "Hookcord Gateway",
		Description: "Hookcord interaction webhook gateway",
		Arguments:   []string{"serve", "run"}, // Will call "hookcord serve run" when service starts
	}
}

// InstallService installs the gateway as a system service.
func InstallService() error {
	svcConfig := ServiceConfig()
	prg := NewGatewayService()

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	logger, err := s.Logger(nil)
	if err != nil {
		return fmt.Errorf("creating service logger: %w", err)
	}
	prg.logger = logger

	if err := s.Install(); err != nil {
		return fmt.Errorf("installing service: %w", err)
	}

	fmt.Println("Service installed successfully!")
	fmt.Println("Use 'hookcord serve start' to start the service")
	return nil
}

// UninstallService uninstalls the gateway service.
func UninstallService() error {
	svcConfig := ServiceConfig()
	prg := NewGatewayService()

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	if err := s.Uninstall(); err != nil {
		return fmt.Errorf("uninstalling service: %w", err)
	}

	fmt.Println("Service uninstalled successfully!")
	return nil
}

// StartService starts the gateway service.
func StartService() error {
	svcConfig := ServiceConfig()
	prg := NewGatewayService()

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	if err := s.Start(); err != nil {
		return fmt.Errorf("starting service: %w", err)
	}

	fmt.Println("Service started successfully!")
	return nil
}

// StopService stops the gateway service.
func StopService() error {
	svcConfig := ServiceConfig()
	prg := NewGatewayService()

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	if err := s.Stop(); err != nil {
		return fmt.Errorf("stopping service: %w", err)
	}

	fmt.Println("Service stopped successfully!")
	return nil
}

// RestartService restarts the gateway service.
func RestartService() error {
	svcConfig := ServiceConfig()
	prg := NewGatewayService()

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	if err := s.Restart(); err != nil {
		return fmt.Errorf("restarting service: %w", err)
	}

	fmt.Println("Service restarted successfully!")
	return nil
}

// StatusService checks the status of the gateway service.
func StatusService() error {
	svcConfig := ServiceConfig()
	prg := NewGatewayService()

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	status, err := s.Status()
	if err != nil {
		return fmt.Errorf("getting service status: %w", err)
	}

	statusStr := "Unknown"
	switch status {
	case service.StatusRunning:
		statusStr = "Running"
	case service.StatusStopped:
		statusStr = "Stopped"
	case service.StatusUnknown:
		statusStr = "Unknown"
	}

	fmt.Printf("Service Status: %s\n", statusStr)
	return nil
}

// RunService runs the gateway service (called by service manager).
func RunService() error {
	svcConfig := ServiceConfig()
	prg := NewGatewayService()

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	logger, err := s.Logger(nil)
	if err != nil {
		return fmt.Errorf("creating service logger: %w", err)
	}
	prg.logger = logger

	if err := s.Run(); err != nil {
		logger.Error(err)
		return err
	}

	return nil
}

// runServeForeground runs the gateway in foreground mode (not as a service).
func runServeForeground() {
	app := fx.New(
		appModules(),

		fx.Invoke(func(lc fx.Lifecycle, log *logger.Logger, b bus.Bus, cfg *config.Config) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Info("Gateway started",
						zap.String("mode", "foreground"),
						zap.String("host", cfg.Gateway.Host),
						zap.Int("port", cfg.Gateway.Port))
					log.Info("Press Ctrl+C to stop")
					return nil
				},
			})
		}),
	)

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down gateway...")
		cancel()
	}()

	app.Run()

	<-ctx.Done()
}
