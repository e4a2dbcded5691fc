package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/gsanz-sz/Freebets/internal/ledger"
	"github.com/gsanz-sz/Freebets/internal/stats/cache"
	"github.com/gsanz-sz/Freebets/pkg/contracts/events"
)

// BetsRepo define as operações de persistência de apostas usadas pelos handlers.
type BetsRepo interface {
	Create(ctx context.Context, b *ledger.Bet) (string, error)
	List(ctx context.Context) ([]ledger.Bet, error)
	Get(ctx context.Context, id string) (ledger.Bet, error)
	Delete(ctx context.Context, id string) error
	UpdateEntries(ctx context.Context, id string, entries []ledger.Entry) error
	Finish(ctx context.Context, id, winningPlatform string, profit float64) error
}

// TransactionsRepo define as operações de persistência de transações.
type TransactionsRepo interface {
	Create(ctx context.Context, t *ledger.Transaction) (string, error)
	List(ctx context.Context) ([]ledger.Transaction, error)
}

// Publisher publica eventos de ciclo de vida após mutações bem-sucedidas.
type Publisher interface {
	PublishBetPlaced(context.Context, events.BetPlaced) error
	PublishBetFinished(context.Context, events.BetFinished) error
	PublishTransactionCreated(context.Context, events.TransactionCreated) error
}

// Server expõe a API REST do Freebets: CRUD de apostas e transações mais as
// visões agregadas calculadas pelo motor de replay. Cache e publisher são
// opcionais (nil desliga a funcionalidade).
type Server struct {
	log   *zap.Logger
	bets  BetsRepo
	txs   TransactionsRepo
	cache *cache.Cache
	publ  Publisher

	// Callbacks de métricas (counter++), ligadas no main
	OnBetCreated         func()
	OnBetFinished        func()
	OnTransactionCreated func()
	OnCacheHit           func()
	OnCacheMiss          func()
}

func NewServer(log *zap.Logger, bets BetsRepo, txs TransactionsRepo, c *cache.Cache, p Publisher) *Server {
	return &Server{log: log, bets: bets, txs: txs, cache: c, publ: p}
}

// Router retorna o roteador HTTP com as rotas da API, agrupadas sob /api.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	// O frontend roda em outra origem.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Route("/api", func(r chi.Router) {
		r.Post("/bets", s.createBet)
		r.Get("/bets", s.listBets)
		r.Delete("/bets/{id}", s.deleteBet)
		r.Put("/bets/adjust/{id}", s.adjustBet)
		r.Put("/bets/finish/{id}", s.finishBet)

		r.Post("/transactions", s.createTransaction)
		r.Get("/transactions", s.listTransactions)

		r.Get("/stats", s.getStats)
		r.Get("/stats/history", s.getHistory)
		r.Get("/stats/detailed-bancas", s.getDetailedBalances)
		r.Get("/stats/detailed-bancas-by-person", s.getDetailedBalancesByPerson)
		r.Get("/stats/daily-profit", s.getDailyProfit)
	})
	return r
}

// loadAll lê as duas coleções completas — o insumo de todo fold do motor.
func (s *Server) loadAll(ctx context.Context) ([]ledger.Bet, []ledger.Transaction, error) {
	bets, err := s.bets.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	txs, err := s.txs.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return bets, txs, nil
}

// invalidateViews descarta as visões cacheadas após uma mutação.
func (s *Server) invalidateViews(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("stats cache invalidate failed", zap.Error(err))
	}
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
