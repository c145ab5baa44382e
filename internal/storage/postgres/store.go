package postgres

// Package postgres provides a pgx-backed storage implementation that
// satisfies the repository and writer interfaces used by the service.
//
// It is intentionally small and explicit. Migrations that create the
// expected schema live under db/migrations. This package focuses on
// mapping between the domain entities and SQL rows. The transaction
// collection is replaced wholesale inside one database transaction,
// mirroring the whole-collection mutation model the undo stack relies on.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyfold/mis/internal/errs"
	"github.com/tallyfold/mis/internal/meta"
	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/rules"
	"github.com/tallyfold/mis/internal/sales"
	"github.com/tallyfold/mis/internal/taxonomy"
)

// Store holds a pgx connection pool and implements the read/write
// interfaces used by the service layer. All methods are safe for
// concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

const txCols = `id, date, voucher_no, account, party, notes, currency,
	debit_minor, credit_minor, status, head, subhead,
	suggested_head, suggested_subhead, auto_ignored, state, metadata`

// Transactions returns the stored collection in position order.
func (s *Store) Transactions(ctx context.Context) ([]mis.Transaction, error) {
	rows, err := s.pool.Query(ctx, `select `+txCols+` from transactions order by position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// TransactionByID returns a single transaction.
func (s *Store) TransactionByID(ctx context.Context, id uuid.UUID) (mis.Transaction, error) {
	rows, err := s.pool.Query(ctx, `select `+txCols+` from transactions where id = $1`, id)
	if err != nil {
		return mis.Transaction{}, err
	}
	defer rows.Close()
	out, err := scanTransactions(rows)
	if err != nil {
		return mis.Transaction{}, err
	}
	if len(out) == 0 {
		return mis.Transaction{}, errs.ErrNotFound
	}
	return out[0], nil
}

// ReplaceTransactions swaps the whole collection atomically.
func (s *Store) ReplaceTransactions(ctx context.Context, txs []mis.Transaction) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if _, err := tx.Exec(ctx, `delete from transactions`); err != nil {
		return err
	}
	for i, t := range txs {
		md, _ := t.Metadata.MarshalStableJSON()
		var date *time.Time
		if !t.Date.IsZero() {
			d := t.Date
			date = &d
		}
		if _, err := tx.Exec(ctx, `
			insert into transactions (position, `+txCols+`)
			values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		`, i, t.ID, date, t.VoucherNo, t.Account, t.Party, t.Notes, t.Currency,
			t.DebitMinor, t.CreditMinor, string(t.Status), string(t.Head), t.Subhead,
			string(t.SuggestedHead), t.SuggestedSubhead, t.AutoIgnored, t.State, md); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// UserRules returns persisted user rules in append order.
func (s *Store) UserRules(ctx context.Context) ([]rules.Rule, error) {
	rows, err := s.pool.Query(ctx, `select pattern, head, subhead from user_rules order by position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]rules.Rule, 0)
	for rows.Next() {
		var r rules.Rule
		var head string
		if err := rows.Scan(&r.Pattern, &head, &r.Subhead); err != nil {
			return nil, err
		}
		r.Head = taxonomy.HeadID(head)
		r.Source = rules.SourceUser
		out = append(out, r)
	}
	return out, rows.Err()
}

// AppendUserRule persists a user rule at the end of the list.
func (s *Store) AppendUserRule(ctx context.Context, r rules.Rule) error {
	_, err := s.pool.Exec(ctx, `
		insert into user_rules (position, pattern, head, subhead)
		values ((select coalesce(max(position)+1, 0) from user_rules), $1, $2, $3)
	`, r.Pattern, string(r.Head), r.Subhead)
	return err
}

// SalesRegisters returns stored classified registers.
func (s *Store) SalesRegisters(ctx context.Context) ([]sales.ClassifiedRegister, error) {
	rows, err := s.pool.Query(ctx, `select payload from sales_registers order by state, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]sales.ClassifiedRegister, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var reg sales.ClassifiedRegister
		if err := json.Unmarshal(payload, &reg); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

// SaveSalesRegister upserts one classified register keyed by state+name.
func (s *Store) SaveSalesRegister(ctx context.Context, reg sales.ClassifiedRegister) error {
	payload, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		insert into sales_registers (state, name, payload)
		values ($1, $2, $3)
		on conflict (state, name) do update set payload = excluded.payload
	`, reg.State, reg.Name, payload)
	return err
}

// PushSnapshot stores a pre-mutation copy of the collection as JSON.
func (s *Store) PushSnapshot(ctx context.Context, txs []mis.Transaction) error {
	payload, err := json.Marshal(txs)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `insert into undo_snapshots (payload) values ($1)`, payload)
	return err
}

// PopSnapshot removes and returns the most recent snapshot.
func (s *Store) PopSnapshot(ctx context.Context) ([]mis.Transaction, bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	var id int64
	var payload []byte
	err = tx.QueryRow(ctx, `
		select id, payload from undo_snapshots order by id desc limit 1 for update
	`).Scan(&id, &payload)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if _, err := tx.Exec(ctx, `delete from undo_snapshots where id = $1`, id); err != nil {
		return nil, false, err
	}
	var out []mis.Transaction
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, false, err
	}
	return out, true, tx.Commit(ctx)
}

func scanTransactions(rows pgx.Rows) ([]mis.Transaction, error) {
	out := make([]mis.Transaction, 0)
	for rows.Next() {
		var t mis.Transaction
		var date *time.Time
		var status, head, sugHead string
		var mdBytes []byte
		if err := rows.Scan(&t.ID, &date, &t.VoucherNo, &t.Account, &t.Party, &t.Notes,
			&t.Currency, &t.DebitMinor, &t.CreditMinor, &status, &head, &t.Subhead,
			&sugHead, &t.SuggestedSubhead, &t.AutoIgnored, &t.State, &mdBytes); err != nil {
			return nil, err
		}
		if date != nil {
			t.Date = *date
		}
		t.Status = mis.Status(status)
		t.Head = taxonomy.HeadID(head)
		t.SuggestedHead = taxonomy.HeadID(sugHead)
		if len(mdBytes) > 0 {
			var m meta.Metadata
			if err := m.UnmarshalJSON(mdBytes); err == nil {
				t.Metadata = m
			}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
