package dto

// StatsResponse é a visão agregada consumida pelo dashboard. totalBankroll
// sai formatado com duas casas; os mapas seguem com os valores crus e são
// formatados na apresentação.
type StatsResponse struct {
	TotalBankroll       string             `json:"totalBankroll"`
	ProfitByAccount     map[string]float64 `json:"profitByAccount"`
	ProfitByResponsavel map[string]float64 `json:"profitByResponsavel"`
	BankrollByPlatform  map[string]float64 `json:"bankrollByPlatform"`
}

type DailyProfitResponse struct {
	Date   string  `json:"date"`
	Profit float64 `json:"profit"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
