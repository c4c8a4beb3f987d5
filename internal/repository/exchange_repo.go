package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mechassist/internal/domain"
)

// ExchangeArchive persiste intercambios completos para el historial durable.
// Solo recibe intercambios que ya tienen pregunta y respuesta.
type ExchangeArchive interface {
	Save(ctx context.Context, ex domain.Exchange) error
	ListRecent(ctx context.Context, limit int) ([]domain.Exchange, error)
}

type PgExchangeArchive struct {
	pool *pgxpool.Pool
}

func NewPgExchangeArchive(pool *pgxpool.Pool) *PgExchangeArchive {
	return &PgExchangeArchive{pool: pool}
}

func (r *PgExchangeArchive) Save(ctx context.Context, ex domain.Exchange) error {
	const query = `
		INSERT INTO exchanges (id, session_id, question, domain, response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var sessionID interface{}
	if ex.SessionID != "" {
		sessionID = ex.SessionID
	}

	_, err := r.pool.Exec(ctx, query,
		ex.ID,
		sessionID,
		ex.Question,
		string(ex.Domain),
		ex.Response,
		ex.Timestamp,
	)
	return err
}

func (r *PgExchangeArchive) ListRecent(ctx context.Context, limit int) ([]domain.Exchange, error) {
	const query = `
		SELECT id, session_id, question, domain, response, created_at
		FROM exchanges
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []domain.Exchange
	for rows.Next() {
		var ex domain.Exchange
		var sessionID *string
		var d string

		err = rows.Scan(
			&ex.ID,
			&sessionID,
			&ex.Question,
			&d,
			&ex.Response,
			&ex.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		if sessionID != nil {
			ex.SessionID = *sessionID
		}
		ex.Domain = domain.Domain(d)
		exchanges = append(exchanges, ex)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return exchanges, nil
}
