package ledger

import "time"

// TransactionKind indica o sentido de uma movimentação de caixa.
type TransactionKind string

const (
	Deposit    TransactionKind = "deposito"
	Withdrawal TransactionKind = "saque"
)

// Entry é uma entrada individual de uma aposta: um valor apostado por um
// responsável em uma conta (casa de aposta), a uma odd.
type Entry struct {
	Responsible string  `json:"responsavel"`
	Platform    string  `json:"conta"`
	Stake       float64 `json:"valor"`
	Odds        float64 `json:"odd"`
}

// Bet é uma aposta composta por uma ou mais entradas em contas distintas.
// Enquanto Finished for false, WinningPlatform e Profit não têm significado.
type Bet struct {
	ID              string    `json:"_id"`
	Name            string    `json:"nomeAposta"`
	Date            time.Time `json:"data"`
	Entries         []Entry   `json:"entradas"`
	PrimaryPlatform string    `json:"plataformaPrincipal"`
	Finished        bool      `json:"finished"`
	WinningPlatform string    `json:"contaVencedora,omitempty"`
	Profit          float64   `json:"lucro"`
}

// Transaction é um depósito ou saque em uma conta, fora do contexto de apostas.
type Transaction struct {
	ID          string          `json:"_id"`
	Responsible string          `json:"responsavel"`
	Platform    string          `json:"plataforma"`
	Amount      float64         `json:"valor"`
	Kind        TransactionKind `json:"tipo"`
	Date        time.Time       `json:"data"`
}

// signedAmount devolve o delta de caixa de uma transação: positivo para
// depósito, negativo para saque.
func (t Transaction) signedAmount() float64 {
	if t.Kind == Withdrawal {
		return -t.Amount
	}
	return t.Amount
}

// TotalStake soma o valor apostado em todas as entradas.
func (b Bet) TotalStake() float64 {
	var total float64
	for _, e := range b.Entries {
		total += e.Stake
	}
	return total
}

// distinctResponsibles devolve, na ordem das entradas, os responsáveis
// distintos de uma aposta.
func (b Bet) distinctResponsibles() []string {
	seen := make(map[string]struct{}, len(b.Entries))
	var out []string
	for _, e := range b.Entries {
		if _, ok := seen[e.Responsible]; ok {
			continue
		}
		seen[e.Responsible] = struct{}{}
		out = append(out, e.Responsible)
	}
	return out
}
