package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/blockworld/internal/api"
	"github.com/annel0/blockworld/internal/config"
	"github.com/annel0/blockworld/internal/eventbus"
	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/metrics"
	"github.com/annel0/blockworld/internal/observability"
	"github.com/annel0/blockworld/internal/world"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $BLOCKWORLD_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if err := logging.InitDefaultLogger("server", cfg.Logging.Directory); err != nil {
		log.Fatalf("Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	logging.GetLoggerManager().SetDirectory(cfg.Logging.Directory)
	defer logging.GetLoggerManager().CloseAll()

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logging.Warn("%v, используется INFO", err)
	}
	logging.SetDefaultLevel(level)

	if err := run(cfg); err != nil {
		logging.Error("Сервер завершился с ошибкой: %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
	logging.Info("Сервер успешно остановлен")
}

func run(cfg *config.Config) error {
	logging.Info("Запуск blockworld: extent=%d amplitude=%d scale=%.3f noise=%s",
		cfg.World.Extent, cfg.World.Amplitude, cfg.World.Scale, cfg.World.Noise.Kind)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === ТЕЛЕМЕТРИЯ ===
	shutdownTelemetry, err := observability.Init(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("Ошибка остановки телеметрии: %v", err)
		}
	}()

	// === МЕТРИКИ ===
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	worldMetrics, err := metrics.NewWorldCollector(reg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	sinks := []world.OutcomeSink{worldMetrics}

	// === ШИНА СОБЫТИЙ ===
	bus, err := eventbus.NewFromConfig(cfg.EventBus)
	if err != nil {
		return fmt.Errorf("eventbus: %w", err)
	}
	if bus != nil {
		defer bus.Close()

		publisher, err := eventbus.PublisherFromConfig(bus, cfg.EventBus, cfg.Telemetry.ServiceName)
		if err != nil {
			return fmt.Errorf("eventbus: %w", err)
		}
		sinks = append(sinks, publisher)

		if _, err := eventbus.StartLoggingListener(bus, logging.GetEventBusLogger()); err != nil {
			logging.Warn("LoggingListener не запущен: %v", err)
		}

		exporter, err := eventbus.NewMetricsExporter(bus, reg)
		if err != nil {
			return fmt.Errorf("eventbus metrics: %w", err)
		}
		exporter.Start()
		defer exporter.Stop()

		logging.Info("Шина событий: %s", cfg.EventBus.Kind)
	}

	// === МИР ===
	start := time.Now()
	engine, err := world.NewFromConfig(cfg.World, block.DefaultCatalog(), nil, sinks...)
	if err != nil {
		return err
	}
	worldMetrics.ObserveGeneration(time.Since(start))
	worldMetrics.SetBlocks(engine.BlockCount())

	// === REST API ===
	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	server, err := api.NewRestServer(api.Config{
		Port:     restPort,
		Engine:   engine,
		Registry: reg,
		Logger:   logging.GetAPILogger(),
	})
	if err != nil {
		return fmt.Errorf("rest api: %w", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	logging.Info("Все сервисы запущены")
	logging.Info("   REST API: http://localhost%s/api/catalog", restPort)
	logging.Info("   Health check: http://localhost%s/health", restPort)
	logging.Info("   Метрики: http://localhost%s/metrics", restPort)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logging.Info("Получен сигнал завершения, останавливаемся...")
	}

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки REST API: %v", err)
	}
	return nil
}
