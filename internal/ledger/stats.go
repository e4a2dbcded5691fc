package ledger

import "math"

// Stats é a visão agregada da banca, recalculada por completo a cada consulta.
// Os valores são mantidos sem arredondamento; a formatação com duas casas
// decimais acontece apenas na borda HTTP.
type Stats struct {
	TotalBankroll       float64
	ProfitByPlatform    map[string]float64
	ProfitByResponsible map[string]float64
	BalanceByPlatform   map[string]float64
}

// ComputeStats refaz o fold completo de apostas e transações e devolve os
// agregados da banca. A ordem das coleções não altera o resultado: cada
// operação é uma soma/subtração por chave.
func ComputeStats(bets []Bet, txs []Transaction) Stats {
	s := Stats{
		ProfitByPlatform:    make(map[string]float64),
		ProfitByResponsible: make(map[string]float64),
		BalanceByPlatform:   make(map[string]float64),
	}

	// Transações primeiro: depósitos somam, saques subtraem.
	for _, t := range txs {
		delta := t.signedAmount()
		s.TotalBankroll += delta
		s.BalanceByPlatform[t.Platform] += delta
	}

	for _, b := range bets {
		totalStake := b.TotalStake()

		// O valor apostado sai da banca de cada conta no momento da criação,
		// independentemente do desfecho.
		for _, e := range b.Entries {
			s.BalanceByPlatform[e.Platform] -= e.Stake
		}
		s.TotalBankroll -= totalStake

		if b.Finished {
			payout := b.Profit + totalStake
			s.TotalBankroll += payout
			s.BalanceByPlatform[b.WinningPlatform] += payout
			s.ProfitByPlatform[b.WinningPlatform] += b.Profit
		}

		applyProfitSplit(s.ProfitByResponsible, b)
	}

	return s
}

// applyProfitSplit distribui o lucro de uma aposta concluída em partes iguais
// entre os responsáveis distintos das entradas. A divisão não é ponderada
// pelo valor apostado de cada um.
func applyProfitSplit(byResponsible map[string]float64, b Bet) {
	if !b.Finished {
		return
	}
	resp := b.distinctResponsibles()
	if len(resp) == 0 {
		return
	}
	share := b.Profit / float64(len(resp))
	for _, r := range resp {
		byResponsible[r] += share
	}
}

// DailyProfit soma o lucro das apostas concluídas cuja data cai no dia
// informado. Sem apostas no dia, devolve zero.
func DailyProfit(bets []Bet, day string) float64 {
	var total float64
	for _, b := range bets {
		if b.Finished && b.Date.Format("2006-01-02") == day {
			total += b.Profit
		}
	}
	return total
}

// Round2 arredonda para duas casas decimais. Usado apenas na borda de
// apresentação; o motor mantém os valores crus.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
