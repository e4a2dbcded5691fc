package events

// Evento publicado no tópico "bet_placed" após a criação de uma aposta.
type BetPlaced struct {
	BetID      string  `json:"bet_id"`
	Name       string  `json:"name"`
	TotalStake float64 `json:"total_stake"`
	EntryCount int     `json:"entry_count"`
	TsUnixMs   int64   `json:"ts_unix_ms"`
}
