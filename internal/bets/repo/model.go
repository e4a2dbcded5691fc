package repo

import "errors"

var (
	// ErrBetNotFound indica que o id não corresponde a nenhuma aposta.
	ErrBetNotFound = errors.New("bet not found")
	// ErrEntryNotFound indica que a entrada alvo de um ajuste não existe na aposta.
	ErrEntryNotFound = errors.New("bet entry not found")
	// ErrBetFinished indica tentativa de ajustar ou concluir uma aposta já concluída.
	ErrBetFinished = errors.New("bet already finished")
)
