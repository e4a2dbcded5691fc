package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gsanz-sz/Freebets/internal/bets/repo"
	"github.com/gsanz-sz/Freebets/internal/ledger"
)

// fakeBets é um BetsRepo em memória para os testes de handler.
type fakeBets struct {
	seq  int
	bets map[string]ledger.Bet
}

func newFakeBets() *fakeBets { return &fakeBets{bets: make(map[string]ledger.Bet)} }

func (f *fakeBets) Create(_ context.Context, b *ledger.Bet) (string, error) {
	f.seq++
	id := fmt.Sprintf("bet-%d", f.seq)
	stored := *b
	stored.ID = id
	f.bets[id] = stored
	return id, nil
}

func (f *fakeBets) List(_ context.Context) ([]ledger.Bet, error) {
	var out []ledger.Bet
	for _, b := range f.bets {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBets) Get(_ context.Context, id string) (ledger.Bet, error) {
	b, ok := f.bets[id]
	if !ok {
		return ledger.Bet{}, repo.ErrBetNotFound
	}
	return b, nil
}

func (f *fakeBets) Delete(_ context.Context, id string) error {
	if _, ok := f.bets[id]; !ok {
		return repo.ErrBetNotFound
	}
	delete(f.bets, id)
	return nil
}

func (f *fakeBets) UpdateEntries(_ context.Context, id string, entries []ledger.Entry) error {
	b, ok := f.bets[id]
	if !ok || b.Finished {
		return repo.ErrBetNotFound
	}
	b.Entries = entries
	f.bets[id] = b
	return nil
}

func (f *fakeBets) Finish(_ context.Context, id, winningPlatform string, profit float64) error {
	b, ok := f.bets[id]
	if !ok || b.Finished {
		return repo.ErrBetNotFound
	}
	b.Finished = true
	b.WinningPlatform = winningPlatform
	b.Profit = profit
	f.bets[id] = b
	return nil
}

type fakeTxs struct {
	seq int
	txs []ledger.Transaction
}

func (f *fakeTxs) Create(_ context.Context, t *ledger.Transaction) (string, error) {
	f.seq++
	id := fmt.Sprintf("tx-%d", f.seq)
	stored := *t
	stored.ID = id
	f.txs = append(f.txs, stored)
	return id, nil
}

func (f *fakeTxs) List(_ context.Context) ([]ledger.Transaction, error) {
	return append([]ledger.Transaction(nil), f.txs...), nil
}

func newTestServer() (*Server, *fakeBets, *fakeTxs) {
	bets := newFakeBets()
	txs := &fakeTxs{}
	s := NewServer(zap.NewNop(), bets, txs, nil, nil)
	return s, bets, txs
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seedBet(t *testing.T, bets *fakeBets, b ledger.Bet) string {
	t.Helper()
	id, err := bets.Create(context.Background(), &b)
	require.NoError(t, err)
	return id
}

func TestCreateBet(t *testing.T) {
	s, _, _ := newTestServer()
	r := s.Router()

	rec := doJSON(t, r, http.MethodPost, "/api/bets", map[string]any{
		"nomeAposta":          "Freebet Bet365",
		"plataformaPrincipal": "bet365",
		"entradas": []map[string]any{
			{"responsavel": "Alice", "conta": "bet365", "valor": 50, "odd": 2.0},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var got ledger.Bet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got.ID)
	require.False(t, got.Finished)
	require.Len(t, got.Entries, 1)
}

func TestCreateBetValidation(t *testing.T) {
	s, _, _ := newTestServer()
	r := s.Router()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"sem entradas", map[string]any{"nomeAposta": "x", "plataformaPrincipal": "p", "entradas": []any{}}},
		{"odd abaixo de 1", map[string]any{"nomeAposta": "x", "plataformaPrincipal": "p",
			"entradas": []map[string]any{{"responsavel": "A", "conta": "p", "valor": 10, "odd": 0.5}}}},
		{"valor nao positivo", map[string]any{"nomeAposta": "x", "plataformaPrincipal": "p",
			"entradas": []map[string]any{{"responsavel": "A", "conta": "p", "valor": 0, "odd": 2}}}},
		{"plataforma principal fora das entradas", map[string]any{"nomeAposta": "x", "plataformaPrincipal": "outra",
			"entradas": []map[string]any{
				{"responsavel": "A", "conta": "p1", "valor": 10, "odd": 2},
				{"responsavel": "B", "conta": "p2", "valor": 10, "odd": 2},
			}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/bets", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAdjustBet(t *testing.T) {
	s, bets, _ := newTestServer()
	r := s.Router()

	id := seedBet(t, bets, ledger.Bet{
		Name: "b", Date: time.Now(), PrimaryPlatform: "X",
		Entries: []ledger.Entry{{Responsible: "Alice", Platform: "X", Stake: 50, Odds: 2.0}},
	})

	rec := doJSON(t, r, http.MethodPut, "/api/bets/adjust/"+id, map[string]any{
		"updatedEntry": map[string]any{
			"responsavel": "Alice", "conta": "X", "originalOdd": 2.0, "valor": 75, "odd": 1.9,
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	got, err := bets.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 75.0, got.Entries[0].Stake)
	require.Equal(t, 1.9, got.Entries[0].Odds)
}

func TestAdjustBetAmbiguousPairUsesOriginalOdd(t *testing.T) {
	s, bets, _ := newTestServer()
	r := s.Router()

	id := seedBet(t, bets, ledger.Bet{
		Name: "b", Date: time.Now(), PrimaryPlatform: "X",
		Entries: []ledger.Entry{
			{Responsible: "Alice", Platform: "X", Stake: 10, Odds: 2.0},
			{Responsible: "Alice", Platform: "X", Stake: 20, Odds: 3.0},
		},
	})

	rec := doJSON(t, r, http.MethodPut, "/api/bets/adjust/"+id, map[string]any{
		"updatedEntry": map[string]any{
			"responsavel": "Alice", "conta": "X", "originalOdd": 3.0, "valor": 25, "odd": 3.1,
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	got, _ := bets.Get(context.Background(), id)
	require.Equal(t, 10.0, got.Entries[0].Stake) // intocada
	require.Equal(t, 25.0, got.Entries[1].Stake)
	require.Equal(t, 3.1, got.Entries[1].Odds)
}

func TestAdjustBetNotFound(t *testing.T) {
	s, bets, _ := newTestServer()
	r := s.Router()

	body := map[string]any{"updatedEntry": map[string]any{
		"responsavel": "Alice", "conta": "X", "originalOdd": 2.0, "valor": 75, "odd": 1.9,
	}}

	rec := doJSON(t, r, http.MethodPut, "/api/bets/adjust/nope", body)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Entrada inexistente em aposta existente.
	id := seedBet(t, bets, ledger.Bet{
		Name: "b", Date: time.Now(), PrimaryPlatform: "Y",
		Entries: []ledger.Entry{{Responsible: "Bob", Platform: "Y", Stake: 10, Odds: 2.0}},
	})
	rec = doJSON(t, r, http.MethodPut, "/api/bets/adjust/"+id, body)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdjustBetRejectedAfterFinish(t *testing.T) {
	s, bets, _ := newTestServer()
	r := s.Router()

	id := seedBet(t, bets, ledger.Bet{
		Name: "b", Date: time.Now(), PrimaryPlatform: "X",
		Entries: []ledger.Entry{{Responsible: "Alice", Platform: "X", Stake: 50, Odds: 2.0}},
	})
	require.NoError(t, bets.Finish(context.Background(), id, "X", 50))

	rec := doJSON(t, r, http.MethodPut, "/api/bets/adjust/"+id, map[string]any{
		"updatedEntry": map[string]any{
			"responsavel": "Alice", "conta": "X", "originalOdd": 2.0, "valor": 75, "odd": 1.9,
		},
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	got, _ := bets.Get(context.Background(), id)
	require.Equal(t, 50.0, got.Entries[0].Stake) // estado inalterado
}

func TestFinishBet(t *testing.T) {
	s, bets, _ := newTestServer()
	r := s.Router()

	id := seedBet(t, bets, ledger.Bet{
		Name: "b", Date: time.Now(), PrimaryPlatform: "X",
		Entries: []ledger.Entry{{Responsible: "Alice", Platform: "X", Stake: 50, Odds: 2.0}},
	})

	rec := doJSON(t, r, http.MethodPut, "/api/bets/finish/"+id, map[string]any{
		"contaVencedora": "X", "lucro": 50,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	got, _ := bets.Get(context.Background(), id)
	require.True(t, got.Finished)
	require.Equal(t, "X", got.WinningPlatform)
	require.Equal(t, 50.0, got.Profit)
}

func TestFinishBetZeroProfit(t *testing.T) {
	s, bets, _ := newTestServer()
	r := s.Router()

	id := seedBet(t, bets, ledger.Bet{
		Name: "b", Date: time.Now(), PrimaryPlatform: "X",
		Entries: []ledger.Entry{{Responsible: "Alice", Platform: "X", Stake: 50, Odds: 2.0}},
	})

	// lucro zero é desfecho válido; só a ausência do campo é rejeitada.
	rec := doJSON(t, r, http.MethodPut, "/api/bets/finish/"+id, map[string]any{
		"contaVencedora": "X", "lucro": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestFinishBetValidation(t *testing.T) {
	s, bets, _ := newTestServer()
	r := s.Router()

	id := seedBet(t, bets, ledger.Bet{
		Name: "b", Date: time.Now(), PrimaryPlatform: "X",
		Entries: []ledger.Entry{{Responsible: "Alice", Platform: "X", Stake: 50, Odds: 2.0}},
	})

	// contaVencedora precisa ser a conta de alguma entrada.
	rec := doJSON(t, r, http.MethodPut, "/api/bets/finish/"+id, map[string]any{
		"contaVencedora": "Z", "lucro": 50,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// lucro ausente.
	rec = doJSON(t, r, http.MethodPut, "/api/bets/finish/"+id, map[string]any{
		"contaVencedora": "X",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// segunda conclusão é rejeitada.
	require.NoError(t, bets.Finish(context.Background(), id, "X", 50))
	rec = doJSON(t, r, http.MethodPut, "/api/bets/finish/"+id, map[string]any{
		"contaVencedora": "X", "lucro": 10,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteBet(t *testing.T) {
	s, bets, _ := newTestServer()
	r := s.Router()

	id := seedBet(t, bets, ledger.Bet{
		Name: "b", Date: time.Now(), PrimaryPlatform: "X",
		Entries: []ledger.Entry{{Responsible: "Alice", Platform: "X", Stake: 50, Odds: 2.0}},
	})

	rec := doJSON(t, r, http.MethodDelete, "/api/bets/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/bets/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTransaction(t *testing.T) {
	s, _, txs := newTestServer()
	r := s.Router()

	rec := doJSON(t, r, http.MethodPost, "/api/transactions", map[string]any{
		"responsavel": "Alice", "plataforma": "X", "valor": 100, "tipo": "deposito",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, txs.txs, 1)
	require.Equal(t, ledger.Deposit, txs.txs[0].Kind)

	rec = doJSON(t, r, http.MethodPost, "/api/transactions", map[string]any{
		"responsavel": "Alice", "plataforma": "X", "valor": 100, "tipo": "transferencia",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStats(t *testing.T) {
	s, _, txs := newTestServer()
	r := s.Router()

	_, err := txs.Create(context.Background(), &ledger.Transaction{
		Responsible: "Alice", Platform: "X", Amount: 100, Kind: ledger.Deposit, Date: time.Now(),
	})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		TotalBankroll      string             `json:"totalBankroll"`
		BankrollByPlatform map[string]float64 `json:"bankrollByPlatform"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "100.00", got.TotalBankroll)
	require.Equal(t, 100.0, got.BankrollByPlatform["X"])
}

func TestGetDailyProfit(t *testing.T) {
	s, bets, _ := newTestServer()
	r := s.Router()

	d, _ := time.Parse("2006-01-02", "2024-03-10")
	seedBet(t, bets, ledger.Bet{
		Name: "a", Date: d, PrimaryPlatform: "X", Finished: true, WinningPlatform: "X", Profit: 12.5,
		Entries: []ledger.Entry{{Responsible: "Alice", Platform: "X", Stake: 10, Odds: 2.25}},
	})

	rec := doJSON(t, r, http.MethodGet, "/api/stats/daily-profit?date=2024-03-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Profit float64 `json:"profit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 12.5, got.Profit)

	rec = doJSON(t, r, http.MethodGet, "/api/stats/daily-profit?date=10-03-2024", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
