package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httpapi "github.com/gsanz-sz/Freebets/internal/api/http"
	brepo "github.com/gsanz-sz/Freebets/internal/bets/repo"
	"github.com/gsanz-sz/Freebets/internal/producer"
	scache "github.com/gsanz-sz/Freebets/internal/shared/cache"
	"github.com/gsanz-sz/Freebets/internal/shared/config"
	"github.com/gsanz-sz/Freebets/internal/shared/db"
	skafka "github.com/gsanz-sz/Freebets/internal/shared/kafka"
	"github.com/gsanz-sz/Freebets/internal/shared/logger"
	"github.com/gsanz-sz/Freebets/internal/shared/metrics"
	stcache "github.com/gsanz-sz/Freebets/internal/stats/cache"
	trepo "github.com/gsanz-sz/Freebets/internal/transactions/repo"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("starting service", zap.String("env", cfg.Env))

	// Postgres: o event store de apostas e transações
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()
	if err := db.Migrate(context.Background(), pg); err != nil {
		log.Fatal("postgres migrate", zap.Error(err))
	}

	// Redis: cache das visões agregadas
	rdb, err := scache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka: eventos de ciclo de vida para consumidores externos
	wPlaced := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	wFinished := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetFinished)
	wTx := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTransactionCreated)
	defer wPlaced.Close()
	defer wFinished.Close()
	defer wTx.Close()
	publ := producer.NewKafkaPublisher(wPlaced, wFinished, wTx)

	// Métricas Prometheus das mutações e do cache de estatísticas
	betsCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "freebets_bets_created_total", Help: "apostas criadas"})
	betsFinished := prometheus.NewCounter(prometheus.CounterOpts{Name: "freebets_bets_finished_total", Help: "apostas concluídas"})
	txsCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "freebets_transactions_created_total", Help: "transações criadas"})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{Name: "freebets_stats_cache_hits_total", Help: "hits no cache de stats"})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{Name: "freebets_stats_cache_misses_total", Help: "misses no cache de stats"})
	prometheus.MustRegister(betsCreated, betsFinished, txsCreated, cacheHits, cacheMisses)

	// Repositórios e servidor da API
	bets := brepo.NewPostgres(pg)
	txs := trepo.NewPostgres(pg)
	views := stcache.New(rdb, cfg.StatsCacheTTL)

	api := httpapi.NewServer(log, bets, txs, views, publ)
	api.OnBetCreated = func() { betsCreated.Inc() }
	api.OnBetFinished = func() { betsFinished.Inc() }
	api.OnTransactionCreated = func() { txsCreated.Inc() }
	api.OnCacheHit = func() { cacheHits.Inc() }
	api.OnCacheMiss = func() { cacheMisses.Inc() }

	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	// Servidor de métricas e health check em porta separada
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))

	// Shutdown gracioso em SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = apiSrv.Shutdown(shutdownCtx)
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	log.Info("api listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api srv", zap.Error(err))
	}
	log.Info("freebets-api stopped")
}
