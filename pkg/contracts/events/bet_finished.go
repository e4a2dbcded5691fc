package events

// Evento publicado no tópico "bet_finished" quando uma aposta é concluída.
type BetFinished struct {
	BetID           string  `json:"bet_id"`
	WinningPlatform string  `json:"winning_platform"`
	Profit          float64 `json:"profit"`
	TsUnixMs        int64   `json:"ts_unix_ms"`
}
