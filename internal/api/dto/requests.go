package dto

import (
	"errors"
	"math"
	"time"
)

// EntryPayload é uma entrada de aposta no formato enviado pelo formulário.
type EntryPayload struct {
	Responsavel string  `json:"responsavel"`
	Conta       string  `json:"conta"`
	Valor       float64 `json:"valor"`
	Odd         float64 `json:"odd"`
}

type CreateBetRequest struct {
	NomeAposta          string         `json:"nomeAposta"`
	Entradas            []EntryPayload `json:"entradas"`
	PlataformaPrincipal string         `json:"plataformaPrincipal"`
	Data                *time.Time     `json:"data,omitempty"`
}

// Validate aplica as regras de forma antes da persistência: campos
// obrigatórios, valores positivos, odd >= 1 e ao menos uma entrada. Em
// apostas com mais de uma entrada, a plataforma principal precisa ser a
// conta de alguma delas.
func (r CreateBetRequest) Validate() error {
	if r.NomeAposta == "" {
		return errors.New("nomeAposta is required")
	}
	if len(r.Entradas) == 0 {
		return errors.New("at least one entry is required")
	}
	if r.PlataformaPrincipal == "" {
		return errors.New("plataformaPrincipal is required")
	}
	principalOK := len(r.Entradas) == 1
	for _, e := range r.Entradas {
		if e.Responsavel == "" || e.Conta == "" {
			return errors.New("entry responsavel and conta are required")
		}
		if !isFinite(e.Valor) || e.Valor <= 0 {
			return errors.New("entry valor must be positive")
		}
		if !isFinite(e.Odd) || e.Odd < 1 {
			return errors.New("entry odd must be >= 1")
		}
		if e.Conta == r.PlataformaPrincipal {
			principalOK = true
		}
	}
	if !principalOK {
		return errors.New("plataformaPrincipal must match one of the entries")
	}
	return nil
}

// UpdatedEntry identifica a entrada a ajustar e carrega os novos valores.
// originalOdd desambigua quando o par (responsavel, conta) se repete.
type UpdatedEntry struct {
	Responsavel string  `json:"responsavel"`
	Conta       string  `json:"conta"`
	OriginalOdd float64 `json:"originalOdd"`
	Valor       float64 `json:"valor"`
	Odd         float64 `json:"odd"`
}

type AdjustBetRequest struct {
	UpdatedEntry *UpdatedEntry `json:"updatedEntry"`
}

func (r AdjustBetRequest) Validate() error {
	e := r.UpdatedEntry
	if e == nil {
		return errors.New("updatedEntry is required")
	}
	if e.Responsavel == "" || e.Conta == "" {
		return errors.New("updatedEntry responsavel and conta are required")
	}
	if !isFinite(e.Valor) || e.Valor <= 0 {
		return errors.New("updatedEntry valor must be positive")
	}
	if !isFinite(e.Odd) || e.Odd < 1 {
		return errors.New("updatedEntry odd must be >= 1")
	}
	return nil
}

// FinishBetRequest conclui uma aposta. Lucro é ponteiro para distinguir
// "zero" de "ausente": lucro zero é um desfecho válido.
type FinishBetRequest struct {
	ContaVencedora string   `json:"contaVencedora"`
	Lucro          *float64 `json:"lucro"`
}

func (r FinishBetRequest) Validate() error {
	if r.ContaVencedora == "" {
		return errors.New("contaVencedora is required")
	}
	if r.Lucro == nil || !isFinite(*r.Lucro) {
		return errors.New("lucro is required")
	}
	return nil
}

type CreateTransactionRequest struct {
	Responsavel string     `json:"responsavel"`
	Plataforma  string     `json:"plataforma"`
	Valor       float64    `json:"valor"`
	Tipo        string     `json:"tipo"` // "deposito" | "saque"
	Data        *time.Time `json:"data,omitempty"`
}

func (r CreateTransactionRequest) Validate() error {
	if r.Responsavel == "" || r.Plataforma == "" {
		return errors.New("responsavel and plataforma are required")
	}
	if !isFinite(r.Valor) || r.Valor <= 0 {
		return errors.New("valor must be positive")
	}
	if r.Tipo != "deposito" && r.Tipo != "saque" {
		return errors.New("tipo must be 'deposito' or 'saque'")
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
