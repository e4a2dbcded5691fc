package ledger

// Balance é o saldo detalhado de uma conta: o que está disponível (Settled)
// e o que está comprometido em apostas pendentes (AtStake).
type Balance struct {
	Settled float64 `json:"banca"`
	AtStake float64 `json:"emAposta"`
}

// ComputeDetailedBalances calcula, por conta, o saldo disponível e o valor
// em aposta. Ao concluir uma aposta, o valor de cada entrada sai de "em
// aposta" na conta da própria entrada; o retorno (lucro + total apostado) é
// creditado uma única vez na conta vencedora.
func ComputeDetailedBalances(bets []Bet, txs []Transaction) map[string]Balance {
	out := make(map[string]Balance)

	for _, t := range txs {
		b := out[t.Platform]
		b.Settled += t.signedAmount()
		out[t.Platform] = b
	}

	for _, bet := range bets {
		// Cada entrada move dinheiro da banca para "em aposta".
		for _, e := range bet.Entries {
			b := out[e.Platform]
			b.Settled -= e.Stake
			b.AtStake += e.Stake
			out[e.Platform] = b
		}

		if bet.Finished {
			for _, e := range bet.Entries {
				b := out[e.Platform]
				b.AtStake -= e.Stake
				out[e.Platform] = b
			}
			winner := out[bet.WinningPlatform]
			winner.Settled += bet.Profit + bet.TotalStake()
			out[bet.WinningPlatform] = winner
		}
	}

	return out
}

// ComputeDetailedBalancesByPerson calcula o saldo detalhado por responsável e
// conta. Ao concluir, o valor apostado de cada entrada sai de "em aposta" na
// conta da própria entrada; entradas na conta vencedora recebem o retorno
// recalculado como odd*valor da entrada, e não a fração do lucro registrado
// na aposta. A assimetria com ComputeDetailedBalances é intencional e
// preserva o comportamento observado do sistema.
func ComputeDetailedBalancesByPerson(bets []Bet, txs []Transaction) map[string]map[string]Balance {
	out := make(map[string]map[string]Balance)

	get := func(person, platform string) Balance {
		if out[person] == nil {
			out[person] = make(map[string]Balance)
		}
		return out[person][platform]
	}

	for _, t := range txs {
		b := get(t.Responsible, t.Platform)
		b.Settled += t.signedAmount()
		out[t.Responsible][t.Platform] = b
	}

	for _, bet := range bets {
		for _, e := range bet.Entries {
			b := get(e.Responsible, e.Platform)
			b.Settled -= e.Stake
			b.AtStake += e.Stake
			out[e.Responsible][e.Platform] = b
		}

		if bet.Finished {
			for _, e := range bet.Entries {
				b := get(e.Responsible, e.Platform)
				b.AtStake -= e.Stake
				if e.Platform == bet.WinningPlatform {
					b.Settled += e.Odds * e.Stake
				}
				out[e.Responsible][e.Platform] = b
			}
		}
	}

	return out
}
