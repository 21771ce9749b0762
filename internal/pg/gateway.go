package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// Row: одна строка результата, ключ = алиас колонки.
type Row map[string]any

// QueryError оборачивает ошибку драйвера вместе с SQL, который её вызвал.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string { return e.Err.Error() }

func (e *QueryError) Unwrap() error { return e.Err }

// Code возвращает SQLSTATE, если ошибка пришла от сервера Postgres.
func (e *QueryError) Code() string {
	var pgErr *pgconn.PgError
	if errors.As(e.Err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Gateway выполняет параметризованный SQL поверх пула *sql.DB.
// Пул сам мультиплексирует физические соединения, дополнительных блокировок нет.
type Gateway struct {
	db *sqlx.DB
}

func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{db: sqlx.NewDb(db, "pgx")}
}

func (g *Gateway) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := g.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{SQL: query, Err: err}
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, &QueryError{SQL: query, Err: err}
	}
	return out, nil
}

func (g *Gateway) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, &QueryError{SQL: query, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &QueryError{SQL: query, Err: err}
	}
	return n, nil
}

func scanRows(rows *sqlx.Rows) ([]Row, error) {
	out := make([]Row, 0)
	for rows.Next() {
		row := make(Row)
		// bytea остаётся []byte: encoding/json отдаст его в base64 без потерь
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
