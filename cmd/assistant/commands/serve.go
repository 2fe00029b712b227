package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"craft-assistant/internal/common/camunda"
	"craft-assistant/internal/common/config"
	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/common/observability"
	"craft-assistant/internal/pipeline"
	"craft-assistant/internal/transport/chat"
	rcq "craft-assistant/internal/workers/assistant/resolve-customer-query"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat HTTP API and, when enabled, the Zeebe worker",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	zapLog := logger.NewWithOutput(level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("starting craft assistant", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"backend":     cfg.ContentStore.Backend,
	})

	obs, err := observability.New(cfg.Observability)
	if err != nil {
		return err
	}
	defer obs.Shutdown(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := buildDependencies(ctx, cfg, log, 5)
	if err != nil {
		return err
	}
	defer deps.Close()

	opts := append(deps.pipelineOptions(),
		pipeline.WithTracer(obs.Tracer()),
		pipeline.WithResolutionRecorder(obs),
	)
	orchestrator := pipeline.New(deps.chain, log, opts...)

	stopWorker, err := startWorker(cfg, orchestrator, log)
	if err != nil {
		return err
	}
	defer stopWorker()

	routerCfg := chat.LoadRouterConfig(cfg.Server)
	routerCfg.Checks = deps.checks
	routerCfg.Stats = deps.statsReader()

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      chat.NewRouter(orchestrator, routerCfg, log),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"addr": srv.Addr})
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]interface{}{"error": err.Error()})
			return err
		}
	case <-ctx.Done():
		log.Info("shutdown signal received", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]interface{}{"error": err.Error()})
		return srv.Close()
	}

	log.Info("server stopped", nil)
	return nil
}

// startWorker opens the resolve-customer-query job worker when Camunda is
// enabled. The returned func stops it.
func startWorker(cfg *config.Config, resolver rcq.Resolver, log logger.Logger) (func(), error) {
	workerCfg := rcq.LoadConfig(cfg)
	if !cfg.Camunda.Enabled || !workerCfg.Enabled {
		return func() {}, nil
	}

	var client *camunda.Client
	err := retryWithBackoff(func() error {
		var err error
		client, err = camunda.NewClientWithConfig(camunda.LoadClientConfig(cfg.Camunda))
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		return nil, err
	}

	handler := rcq.NewHandler(workerCfg, resolver, client, log)
	w := camunda.NewWorker(client.GetClient(), rcq.TaskType, workerCfg.MaxJobsActive, handler, log)
	w.Start()

	return func() {
		w.Stop(context.Background())
		_ = client.Close()
	}, nil
}
