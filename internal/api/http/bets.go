package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gsanz-sz/Freebets/internal/api/dto"
	"github.com/gsanz-sz/Freebets/internal/bets/repo"
	"github.com/gsanz-sz/Freebets/internal/ledger"
	"github.com/gsanz-sz/Freebets/pkg/contracts/events"
)

// createBet valida e persiste uma nova aposta pendente.
func (s *Server) createBet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bet := ledger.Bet{
		Name:            req.NomeAposta,
		Date:            time.Now().UTC(),
		PrimaryPlatform: req.PlataformaPrincipal,
	}
	if req.Data != nil {
		bet.Date = *req.Data
	}
	for _, e := range req.Entradas {
		bet.Entries = append(bet.Entries, ledger.Entry{
			Responsible: e.Responsavel,
			Platform:    e.Conta,
			Stake:       e.Valor,
			Odds:        e.Odd,
		})
	}

	id, err := s.bets.Create(r.Context(), &bet)
	if err != nil {
		s.log.Error("create bet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create bet")
		return
	}
	bet.ID = id

	s.invalidateViews(r.Context())
	if s.publ != nil {
		_ = s.publ.PublishBetPlaced(r.Context(), events.BetPlaced{
			BetID:      id,
			Name:       bet.Name,
			TotalStake: bet.TotalStake(),
			EntryCount: len(bet.Entries),
		})
	}
	if s.OnBetCreated != nil {
		s.OnBetCreated()
	}

	writeJSON(w, http.StatusCreated, bet)
}

// listBets devolve a coleção completa de apostas.
func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	bets, err := s.bets.List(r.Context())
	if err != nil {
		s.log.Error("list bets", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list bets")
		return
	}
	if bets == nil {
		bets = []ledger.Bet{}
	}
	writeJSON(w, http.StatusOK, bets)
}

// deleteBet remove uma aposta em qualquer estágio.
func (s *Server) deleteBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.bets.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrBetNotFound) {
			writeError(w, http.StatusNotFound, "bet not found")
			return
		}
		s.log.Error("delete bet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete bet")
		return
	}
	s.invalidateViews(r.Context())
	writeJSON(w, http.StatusOK, dto.DeleteResponse{Message: "bet deleted"})
}

// adjustBet corrige valor e odd de uma entrada enquanto a aposta está
// pendente. A entrada é localizada pelo par (responsavel, conta); quando o
// par se repete, originalOdd desambigua.
func (s *Server) adjustBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AdjustBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bet, err := s.bets.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrBetNotFound) {
			writeError(w, http.StatusNotFound, "bet not found")
			return
		}
		s.log.Error("get bet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load bet")
		return
	}
	if bet.Finished {
		writeError(w, http.StatusConflict, repo.ErrBetFinished.Error())
		return
	}

	idx, err := findEntry(bet.Entries, *req.UpdatedEntry)
	if err != nil {
		writeError(w, http.StatusNotFound, "bet entry not found")
		return
	}
	bet.Entries[idx].Stake = req.UpdatedEntry.Valor
	bet.Entries[idx].Odds = req.UpdatedEntry.Odd

	if err := s.bets.UpdateEntries(r.Context(), id, bet.Entries); err != nil {
		s.log.Error("update entries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to adjust bet")
		return
	}

	s.invalidateViews(r.Context())
	writeJSON(w, http.StatusOK, bet)
}

// findEntry localiza o índice da entrada alvo de um ajuste.
func findEntry(entries []ledger.Entry, target dto.UpdatedEntry) (int, error) {
	matches := make([]int, 0, 1)
	for i, e := range entries {
		if e.Responsible == target.Responsavel && e.Platform == target.Conta {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return 0, repo.ErrEntryNotFound
	case 1:
		return matches[0], nil
	}
	// Par ambíguo: a odd original decide.
	for _, i := range matches {
		if entries[i].Odds == target.OriginalOdd {
			return i, nil
		}
	}
	return 0, repo.ErrEntryNotFound
}

// finishBet conclui uma aposta, gravando conta vencedora e lucro. A
// transição é definitiva: não há volta para pendente.
func (s *Server) finishBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.FinishBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bet, err := s.bets.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrBetNotFound) {
			writeError(w, http.StatusNotFound, "bet not found")
			return
		}
		s.log.Error("get bet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load bet")
		return
	}
	if bet.Finished {
		writeError(w, http.StatusConflict, repo.ErrBetFinished.Error())
		return
	}

	// A conta vencedora precisa ser a conta de alguma entrada.
	valid := false
	for _, e := range bet.Entries {
		if e.Platform == req.ContaVencedora {
			valid = true
			break
		}
	}
	if !valid {
		writeError(w, http.StatusBadRequest, "contaVencedora must match one of the entries")
		return
	}

	if err := s.bets.Finish(r.Context(), id, req.ContaVencedora, *req.Lucro); err != nil {
		s.log.Error("finish bet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to finish bet")
		return
	}

	bet.Finished = true
	bet.WinningPlatform = req.ContaVencedora
	bet.Profit = *req.Lucro

	s.invalidateViews(r.Context())
	if s.publ != nil {
		_ = s.publ.PublishBetFinished(r.Context(), events.BetFinished{
			BetID:           id,
			WinningPlatform: req.ContaVencedora,
			Profit:          *req.Lucro,
		})
	}
	if s.OnBetFinished != nil {
		s.OnBetFinished()
	}

	writeJSON(w, http.StatusOK, bet)
}
