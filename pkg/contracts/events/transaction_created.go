package events

// Evento publicado no tópico "transaction_created" para depósitos e saques.
type TransactionCreated struct {
	TransactionID string  `json:"transaction_id"`
	Responsible   string  `json:"responsible"`
	Platform      string  `json:"platform"`
	Amount        float64 `json:"amount"`
	Kind          string  `json:"kind"` // "deposito" | "saque"
	TsUnixMs      int64   `json:"ts_unix_ms"`
}
