package ledger

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// DailyPoint é o estado acumulado da banca ao fim do último evento de um dia.
type DailyPoint struct {
	Date                string
	TotalBankroll       float64
	ProfitByResponsible map[string]float64
}

// MarshalJSON achata o ponto no formato consumido pelo dashboard:
// {"date": ..., "totalBankroll": ..., "<responsavel>": lucro, ...}.
func (p DailyPoint) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.ProfitByResponsible)+2)
	out["date"] = p.Date
	out["totalBankroll"] = strconv.FormatFloat(Round2(p.TotalBankroll), 'f', 2, 64)
	for r, v := range p.ProfitByResponsible {
		out[r] = strconv.FormatFloat(Round2(v), 'f', 2, 64)
	}
	return json.Marshal(out)
}

// event unifica apostas e transações para o replay cronológico.
type event struct {
	date time.Time
	bet  *Bet
	tx   *Transaction
}

// ComputeHistory refaz o replay cronológico de todos os eventos e devolve um
// ponto por dia com pelo menos um evento, em ordem crescente de data. Cada
// ponto carrega o acumulado (não o delta do dia): a banca total e o lucro por
// responsável até o último evento daquele dia.
func ComputeHistory(bets []Bet, txs []Transaction) []DailyPoint {
	events := make([]event, 0, len(bets)+len(txs))
	for i := range bets {
		events = append(events, event{date: bets[i].Date, bet: &bets[i]})
	}
	for i := range txs {
		events = append(events, event{date: txs[i].Date, tx: &txs[i]})
	}
	// Empates de timestamp preservam a ordem relativa original.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].date.Before(events[j].date)
	})

	var cumulative float64
	profitByResponsible := make(map[string]float64)

	byDay := make(map[string]DailyPoint)
	var days []string

	for _, ev := range events {
		switch {
		case ev.tx != nil:
			cumulative += ev.tx.signedAmount()
		case ev.bet != nil:
			b := *ev.bet
			cumulative -= b.TotalStake()
			if b.Finished {
				// Sem timestamp próprio de liquidação, o retorno entra na
				// data de criação da aposta.
				cumulative += b.Profit + b.TotalStake()
			}
			applyProfitSplit(profitByResponsible, b)
		}

		day := ev.date.Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = DailyPoint{
			Date:                day,
			TotalBankroll:       cumulative,
			ProfitByResponsible: copyMap(profitByResponsible),
		}
	}

	sort.Strings(days)
	out := make([]DailyPoint, 0, len(days))
	for _, d := range days {
		out = append(out, byDay[d])
	}
	return out
}

func copyMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
