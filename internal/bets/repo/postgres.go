package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/gsanz-sz/Freebets/internal/ledger"
)

// Postgres implementa a persistência de apostas. Cada aposta guarda sua lista
// de entradas inline (coluna jsonb), sem normalização — o "ledger" é virtual,
// recomputado a partir das coleções completas a cada consulta.
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório de apostas.
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Create insere uma nova aposta pendente e devolve o id gerado.
func (p *Postgres) Create(ctx context.Context, b *ledger.Bet) (string, error) {
	id := uuid.NewString()
	entries, err := json.Marshal(b.Entries)
	if err != nil {
		return "", fmt.Errorf("marshal entries: %w", err)
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO bets (id, name, date, entries, primary_platform, finished)
		VALUES ($1,$2,$3,$4,$5,false)`,
		id, b.Name, b.Date, entries, b.PrimaryPlatform,
	)
	if err != nil {
		return "", fmt.Errorf("insert bet: %w", err)
	}
	return id, nil
}

// List devolve a coleção completa de apostas, sem paginação.
func (p *Postgres) List(ctx context.Context) ([]ledger.Bet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, date, entries, primary_platform, finished,
		       COALESCE(winning_platform,''), COALESCE(profit,0)
		FROM bets ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}
	defer rows.Close()

	var bets []ledger.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

// Get devolve uma aposta pelo id.
func (p *Postgres) Get(ctx context.Context, id string) (ledger.Bet, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, name, date, entries, primary_platform, finished,
		       COALESCE(winning_platform,''), COALESCE(profit,0)
		FROM bets WHERE id=$1`, id)
	b, err := scanBet(row)
	if err == sql.ErrNoRows {
		return ledger.Bet{}, ErrBetNotFound
	}
	return b, err
}

// Delete remove uma aposta em qualquer estágio do ciclo de vida.
func (p *Postgres) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM bets WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete bet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBetNotFound
	}
	return nil
}

// UpdateEntries substitui a lista de entradas de uma aposta ainda pendente.
func (p *Postgres) UpdateEntries(ctx context.Context, id string, entries []ledger.Entry) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	res, err := p.db.ExecContext(ctx,
		`UPDATE bets SET entries=$1 WHERE id=$2 AND finished=false`, b, id)
	if err != nil {
		return fmt.Errorf("update entries: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBetNotFound
	}
	return nil
}

// Finish marca a aposta como concluída, gravando conta vencedora e lucro.
// A transição é única: uma aposta concluída não volta a pendente.
func (p *Postgres) Finish(ctx context.Context, id, winningPlatform string, profit float64) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE bets SET finished=true, winning_platform=$1, profit=$2
		WHERE id=$3 AND finished=false`,
		winningPlatform, profit, id)
	if err != nil {
		return fmt.Errorf("finish bet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBetNotFound
	}
	return nil
}

type scanner interface{ Scan(dest ...any) error }

func scanBet(row scanner) (ledger.Bet, error) {
	var b ledger.Bet
	var entries []byte
	err := row.Scan(&b.ID, &b.Name, &b.Date, &entries, &b.PrimaryPlatform,
		&b.Finished, &b.WinningPlatform, &b.Profit)
	if err != nil {
		return ledger.Bet{}, err
	}
	if err := json.Unmarshal(entries, &b.Entries); err != nil {
		return ledger.Bet{}, fmt.Errorf("unmarshal entries: %w", err)
	}
	return b, nil
}
