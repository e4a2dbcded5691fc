package topics

const (
	// Ciclo de vida de apostas
	BetPlaced   = "bet_placed"
	BetFinished = "bet_finished"

	// Movimentações de caixa
	TransactionCreated = "transaction_created"
)
