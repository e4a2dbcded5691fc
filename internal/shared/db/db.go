package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func ConnectPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Migrate garante o esquema mínimo na inicialização. Cada aposta guarda suas
// entradas inline em jsonb; não existe tabela de ledger — os saldos são
// recomputados a partir das duas coleções completas a cada consulta.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bets (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			date             TIMESTAMPTZ NOT NULL,
			entries          JSONB NOT NULL,
			primary_platform TEXT NOT NULL,
			finished         BOOLEAN NOT NULL DEFAULT FALSE,
			winning_platform TEXT,
			profit           DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id          TEXT PRIMARY KEY,
			responsible TEXT NOT NULL,
			platform    TEXT NOT NULL,
			amount      DOUBLE PRECISION NOT NULL,
			kind        TEXT NOT NULL,
			date        TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_date ON bets(date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
