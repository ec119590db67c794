package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelOrderHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/cancel_order"
	checkConflictsHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/check_conflicts"
	createOrderHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/create_order"
	createRateHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/create_rate"
	getAgendaHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/get_agenda"
	getOrderHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/get_order"
	getSettingsHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/get_settings"
	listRatesHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/list_rates"
	listVehiclesHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/list_vehicles"
	quotePriceHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/quote_price"
	setRateActiveHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/set_rate_active"
	updateOrderStatusHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/update_order_status"
	updateSettingsHandler "github.com/m04kA/SMC-TransferService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-TransferService/internal/api/middleware"
	"github.com/m04kA/SMC-TransferService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/appointment"
	orderRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/order"
	rateRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/rate"
	settingsRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/settings"
	vehicleRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
	ordersService "github.com/m04kA/SMC-TransferService/internal/service/orders"
	ratetableService "github.com/m04kA/SMC-TransferService/internal/service/ratetable"
	settingsService "github.com/m04kA/SMC-TransferService/internal/service/settings"
	cancelOrderUC "github.com/m04kA/SMC-TransferService/internal/usecase/cancel_order"
	checkConflictsUC "github.com/m04kA/SMC-TransferService/internal/usecase/check_conflicts"
	getAgendaUC "github.com/m04kA/SMC-TransferService/internal/usecase/get_agenda"
	quotePriceUC "github.com/m04kA/SMC-TransferService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-TransferService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TransferService/pkg/kvstore"
	"github.com/m04kA/SMC-TransferService/pkg/logger"
	"github.com/m04kA/SMC-TransferService/pkg/metrics"
	"github.com/m04kA/SMC-TransferService/pkg/txmanager"
)

// Наборы методов, которые нужны сразу нескольким потребителям.
// Реализуются как Postgres, так и Pebble репозиториями
type (
	rateStore interface {
		quotePriceUC.RateRepository
		ratetableService.RateRepository
	}
	orderStore interface {
		cancelOrderUC.OrderRepository
		ordersService.OrderRepository
	}
	appointmentStore interface {
		cancelOrderUC.AppointmentRepository
		checkConflictsUC.AppointmentRepository
		getAgendaUC.AppointmentRepository
		ordersService.AppointmentRepository
	}
	settingsStore interface {
		quotePriceUC.SettingsRepository
		settingsService.SettingsRepository
	}
	vehicleStore interface {
		quotePriceUC.VehicleRepository
		settingsService.VehicleRepository
	}
	txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
)

type storage struct {
	rates        rateStore
	orders       orderStore
	appointments appointmentStore
	settings     settingsStore
	vehicles     vehicleStore
	tx           txManager
	close        func() error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TransferService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики собираются всегда, наружу отдаются только если включены
	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	metricsCollector := metrics.New(cfg.Metrics.ServiceName, registry)
	stopMetricsCh := make(chan struct{})

	// Подключаем хранилище
	var store *storage
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		store, err = openPostgres(cfg, metricsCollector, stopMetricsCh)
		if err != nil {
			log.Fatal("Failed to open postgres storage: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	default:
		store, err = openPebble(cfg)
		if err != nil {
			log.Fatal("Failed to open pebble storage: %v", err)
		}
		log.Info("Pebble storage opened at %s", cfg.Storage.Pebble.Dir)
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Error("Failed to close storage: %v", err)
		}
	}()

	// Детектор конфликтов
	var detector conflicts.Detector = conflicts.NewSweep()
	if cfg.Business.ConflictDetector == config.DetectorPairwise {
		detector = conflicts.NewPairwise()
	}
	log.Info("Conflict detector: %s", cfg.Business.ConflictDetector)

	// Инициализируем use cases
	quotePriceUseCase := quotePriceUC.NewUseCase(store.rates, store.settings, store.vehicles, metricsCollector, log)
	cancelOrderUseCase := cancelOrderUC.NewUseCase(
		store.orders,
		store.appointments,
		store.settings,
		store.tx,
		metricsCollector,
		log,
	)
	checkConflictsUseCase := checkConflictsUC.NewUseCase(store.appointments, detector, metricsCollector, log)
	getAgendaUseCase := getAgendaUC.NewUseCase(store.appointments, detector, log)

	// Инициализируем сервисы
	orderSvc := ordersService.NewService(
		store.orders,
		store.appointments,
		quotePriceUseCase,
		checkConflictsUseCase,
		store.tx,
		log,
	)
	settingsSvc := settingsService.NewService(store.settings, store.vehicles, store.tx, log)
	rateSvc := ratetableService.NewService(store.rates, store.vehicles, log)

	// Настройки и каталог по умолчанию при первом запуске
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := settingsSvc.EnsureDefaults(initCtx, cfg.Business.DefaultTax()); err != nil {
		initCancel()
		log.Fatal("Failed to seed default settings: %v", err)
	}
	initCancel()

	// Инициализируем handlers
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	cancelOrder := cancelOrderHandler.NewHandler(cancelOrderUseCase, log)
	checkConflicts := checkConflictsHandler.NewHandler(checkConflictsUseCase, log)
	getAgenda := getAgendaHandler.NewHandler(getAgendaUseCase, cfg.Business.Location(), cfg.Business.AgendaLookaround(), log)
	createOrder := createOrderHandler.NewHandler(orderSvc, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(orderSvc, log)
	listRates := listRatesHandler.NewHandler(rateSvc, log)
	createRate := createRateHandler.NewHandler(rateSvc, log)
	setRateActive := setRateActiveHandler.NewHandler(rateSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	listVehicles := listVehiclesHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Цены ---
	api.HandleFunc("/quotes", quotePrice.Handle).Methods(http.MethodPost)

	// --- Таблица тарифов ---
	api.HandleFunc("/rates", listRates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rates", createRate.Handle).Methods(http.MethodPost)
	api.HandleFunc("/rates/{rateId}/active", setRateActive.Handle).Methods(http.MethodPatch)

	// --- Заказы ---
	api.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)
	api.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/orders/{orderId}/cancel", cancelOrder.Handle).Methods(http.MethodPost)

	// --- Агенда ---
	api.HandleFunc("/appointments/conflicts", checkConflicts.Handle).Methods(http.MethodPost)
	api.HandleFunc("/agenda", getAgenda.Handle).Methods(http.MethodGet)

	// --- Настройки ---
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)
	api.HandleFunc("/vehicles", listVehicles.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// openPostgres подключается к Postgres и собирает репозитории поверх обёртки с метриками
func openPostgres(cfg *config.Config, recorder dbmetrics.Recorder, stopCh <-chan struct{}) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	var wrapped *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrapped = dbmetrics.WrapWithDefault(db, recorder, cfg.Metrics.ServiceName, stopCh)
	} else {
		wrapped = dbmetrics.Wrap(db, nil)
	}

	orders := orderRepo.NewRepository(wrapped)
	return &storage{
		rates:        rateRepo.NewRepository(wrapped),
		orders:       orders,
		appointments: appointmentRepo.NewRepository(wrapped, orders),
		settings:     settingsRepo.NewRepository(wrapped),
		vehicles:     vehicleRepo.NewRepository(wrapped),
		tx:           txmanager.NewTransactionManager(wrapped),
		close:        db.Close,
	}, nil
}

// openPebble открывает локальное хранилище
func openPebble(cfg *config.Config) (*storage, error) {
	kv, err := kvstore.Open(cfg.Storage.Pebble.Dir)
	if err != nil {
		return nil, err
	}

	orders := orderRepo.NewKVRepository(kv)
	return &storage{
		rates:        rateRepo.NewKVRepository(kv),
		orders:       orders,
		appointments: appointmentRepo.NewKVRepository(kv, orders),
		settings:     settingsRepo.NewKVRepository(kv),
		vehicles:     vehicleRepo.NewKVRepository(kv),
		tx:           kvstore.NewTxManager(kv),
		close:        kv.Close,
	}, nil
}
