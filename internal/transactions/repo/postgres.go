package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gsanz-sz/Freebets/internal/ledger"
)

// Postgres implementa a persistência de transações (depósitos e saques).
// Transações são imutáveis: só existem criação e listagem.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Create insere uma nova transação e devolve o id gerado.
func (p *Postgres) Create(ctx context.Context, t *ledger.Transaction) (string, error) {
	id := uuid.NewString()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO transactions (id, responsible, platform, amount, kind, date)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		id, t.Responsible, t.Platform, t.Amount, string(t.Kind), t.Date,
	)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

// List devolve a coleção completa de transações em ordem cronológica.
func (p *Postgres) List(ctx context.Context) ([]ledger.Transaction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, responsible, platform, amount, kind, date
		FROM transactions ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction
	for rows.Next() {
		var t ledger.Transaction
		var kind string
		if err := rows.Scan(&t.ID, &t.Responsible, &t.Platform, &t.Amount, &kind, &t.Date); err != nil {
			return nil, err
		}
		t.Kind = ledger.TransactionKind(kind)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
