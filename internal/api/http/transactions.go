package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gsanz-sz/Freebets/internal/api/dto"
	"github.com/gsanz-sz/Freebets/internal/ledger"
	"github.com/gsanz-sz/Freebets/pkg/contracts/events"
)

// createTransaction registra um depósito ou saque. Transações são imutáveis
// depois de criadas.
func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx := ledger.Transaction{
		Responsible: req.Responsavel,
		Platform:    req.Plataforma,
		Amount:      req.Valor,
		Kind:        ledger.TransactionKind(req.Tipo),
		Date:        time.Now().UTC(),
	}
	if req.Data != nil {
		tx.Date = *req.Data
	}

	id, err := s.txs.Create(r.Context(), &tx)
	if err != nil {
		s.log.Error("create transaction", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}
	tx.ID = id

	s.invalidateViews(r.Context())
	if s.publ != nil {
		_ = s.publ.PublishTransactionCreated(r.Context(), events.TransactionCreated{
			TransactionID: id,
			Responsible:   tx.Responsible,
			Platform:      tx.Platform,
			Amount:        tx.Amount,
			Kind:          string(tx.Kind),
		})
	}
	if s.OnTransactionCreated != nil {
		s.OnTransactionCreated()
	}

	writeJSON(w, http.StatusCreated, tx)
}

// listTransactions devolve a coleção completa em ordem cronológica.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.txs.List(r.Context())
	if err != nil {
		s.log.Error("list transactions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}
