package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gsanz-sz/Freebets/internal/api/dto"
	"github.com/gsanz-sz/Freebets/internal/ledger"
	"github.com/gsanz-sz/Freebets/internal/stats/cache"
)

// serveView atende uma visão agregada: tenta o cache, senão refaz o fold
// completo e guarda o resultado. Falha de cache degrada para recomputação,
// nunca para erro.
func (s *Server) serveView(w http.ResponseWriter, r *http.Request, key string, compute func([]ledger.Bet, []ledger.Transaction) any) {
	if s.cache != nil {
		var raw json.RawMessage
		ok, err := s.cache.Get(r.Context(), key, &raw)
		if err != nil {
			s.log.Warn("stats cache get failed", zap.Error(err))
		}
		if ok {
			if s.OnCacheHit != nil {
				s.OnCacheHit()
			}
			writeJSON(w, http.StatusOK, raw)
			return
		}
		if s.OnCacheMiss != nil {
			s.OnCacheMiss()
		}
	}

	bets, txs, err := s.loadAll(r.Context())
	if err != nil {
		s.log.Error("load events", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	view := compute(bets, txs)
	if s.cache != nil {
		if err := s.cache.Set(r.Context(), key, view); err != nil {
			s.log.Warn("stats cache set failed", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, view)
}

// getStats devolve os agregados da banca: total, lucro por conta, lucro por
// responsável e saldo por plataforma.
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	s.serveView(w, r, cache.KeyStats, func(bets []ledger.Bet, txs []ledger.Transaction) any {
		st := ledger.ComputeStats(bets, txs)
		return dto.StatsResponse{
			TotalBankroll:       fmt.Sprintf("%.2f", ledger.Round2(st.TotalBankroll)),
			ProfitByAccount:     st.ProfitByPlatform,
			ProfitByResponsavel: st.ProfitByResponsible,
			BankrollByPlatform:  st.BalanceByPlatform,
		}
	})
}

// getHistory devolve um ponto por dia com evento, com o acumulado da banca e
// do lucro por responsável até aquele dia.
func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	s.serveView(w, r, cache.KeyHistory, func(bets []ledger.Bet, txs []ledger.Transaction) any {
		return ledger.ComputeHistory(bets, txs)
	})
}

// getDetailedBalances devolve, por conta, o saldo disponível e o valor em aposta.
func (s *Server) getDetailedBalances(w http.ResponseWriter, r *http.Request) {
	s.serveView(w, r, cache.KeyBalances, func(bets []ledger.Bet, txs []ledger.Transaction) any {
		return ledger.ComputeDetailedBalances(bets, txs)
	})
}

// getDetailedBalancesByPerson devolve o saldo detalhado por responsável e conta.
func (s *Server) getDetailedBalancesByPerson(w http.ResponseWriter, r *http.Request) {
	s.serveView(w, r, cache.KeyBalancesByPerson, func(bets []ledger.Bet, txs []ledger.Transaction) any {
		return ledger.ComputeDetailedBalancesByPerson(bets, txs)
	})
}

// getDailyProfit soma o lucro das apostas concluídas de um dia (query ?date=YYYY-MM-DD).
func (s *Server) getDailyProfit(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", day); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	bets, err := s.bets.List(r.Context())
	if err != nil {
		s.log.Error("list bets", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load bets")
		return
	}

	writeJSON(w, http.StatusOK, dto.DailyProfitResponse{
		Date:   day,
		Profit: ledger.Round2(ledger.DailyProfit(bets, day)),
	})
}
