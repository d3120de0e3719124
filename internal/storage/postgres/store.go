package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	interfaces "github.com/sheikh-saqib/spendlog/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/spendlog/internal/models"
)

// PostgreSQL error codes mapped onto store errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

// Open connects to the database described by dsn and checks it answers.
func Open(ctx context.Context, dsn string) (*PostgresLedgerStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return NewPostgresLedgerStore(db), nil
}

// Close releases the connection pool.
func (p *PostgresLedgerStore) Close() error {
	return p.db.Close()
}

func (p *PostgresLedgerStore) Setup(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, schema)
	return err
}

func (p *PostgresLedgerStore) CreateLedger(ctx context.Context, ledger models.Ledger) (models.Ledger, error) {
	const query = `INSERT INTO ledgers (code, name, description, sort, kind)
	VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at, updated_at`

	description := sql.NullString{String: ledger.Description, Valid: ledger.Description != ""}
	err := p.db.QueryRowContext(ctx, query, ledger.Code, ledger.Name, description, ledger.Sort, string(ledger.Kind)).
		Scan(&ledger.ID, &ledger.CreatedAt, &ledger.UpdatedAt)
	if err != nil {
		return models.Ledger{}, translate(err)
	}
	ledger.CreatedAt = ledger.CreatedAt.UTC()
	ledger.UpdatedAt = ledger.UpdatedAt.UTC()
	return ledger, nil
}

const ledgerColumns = `id, code, name, description, sort, kind, created_at, updated_at`

func (p *PostgresLedgerStore) LedgerByCode(ctx context.Context, code string) (models.Ledger, error) {
	const query = `SELECT ` + ledgerColumns + ` FROM ledgers WHERE code = $1`

	ledger, err := scanLedger(p.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return models.Ledger{}, interfaces.ErrNotFound
	}
	if err != nil {
		return models.Ledger{}, err
	}
	return ledger, nil
}

func (p *PostgresLedgerStore) Ledgers(ctx context.Context) ([]models.Ledger, error) {
	const query = `SELECT ` + ledgerColumns + ` FROM ledgers ORDER BY code`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ledgers []models.Ledger
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ledgers, nil
}

// SavePosting checks both ledgers and inserts the posting in one transaction,
// either the row is written or nothing is.
func (p *PostgresLedgerStore) SavePosting(ctx context.Context, posting models.Posting) (_ models.Posting, err error) {

	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Posting{}, err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	if posting.CrFromCode, err = p.lockLedger(ctx, dbTx, posting.CrFrom); err != nil {
		return models.Posting{}, fmt.Errorf("cr_from %d: %w", posting.CrFrom, err)
	}
	if posting.DbToCode, err = p.lockLedger(ctx, dbTx, posting.DbTo); err != nil {
		return models.Posting{}, fmt.Errorf("db_to %d: %w", posting.DbTo, err)
	}

	err = p.insertPosting(ctx, dbTx, &posting)
	if err != nil {
		return models.Posting{}, translate(err)
	}

	if err = dbTx.Commit(); err != nil {
		return models.Posting{}, err
	}
	return posting, nil
}

// lockLedger returns the ledger code and holds a share lock on the row until
// the transaction ends, so the ledger cannot vanish under the insert.
func (p *PostgresLedgerStore) lockLedger(ctx context.Context, dbTx *sql.Tx, id int64) (string, error) {
	const query = `SELECT code FROM ledgers WHERE id = $1 FOR SHARE`

	var code string
	err := dbTx.QueryRowContext(ctx, query, id).Scan(&code)
	if err == sql.ErrNoRows {
		return "", interfaces.ErrNotFound
	}
	return code, err
}

func (p *PostgresLedgerStore) insertPosting(ctx context.Context, dbTx *sql.Tx, posting *models.Posting) error {
	if posting.CreatedAt.IsZero() {
		// let the column default stamp the row
		const query = `INSERT INTO proceedings (cr_from, db_to, amount, narration)
		VALUES ($1,$2,$3,$4) RETURNING id, created_at, updated_at`
		err := dbTx.QueryRowContext(ctx, query, posting.CrFrom, posting.DbTo, posting.Amount, posting.Narration).
			Scan(&posting.ID, &posting.CreatedAt, &posting.UpdatedAt)
		posting.CreatedAt = posting.CreatedAt.UTC()
		posting.UpdatedAt = posting.UpdatedAt.UTC()
		return err
	}

	const query = `INSERT INTO proceedings (cr_from, db_to, amount, narration, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$5) RETURNING id`
	posting.CreatedAt = posting.CreatedAt.UTC()
	posting.UpdatedAt = posting.CreatedAt
	return dbTx.QueryRowContext(ctx, query, posting.CrFrom, posting.DbTo, posting.Amount, posting.Narration, posting.CreatedAt).
		Scan(&posting.ID)
}

// Postings returns the postings matching q, newest first.
func (p *PostgresLedgerStore) Postings(ctx context.Context, q interfaces.PostingQuery) ([]models.Posting, error) {
	query, args := postingsQuery(q)

	rows, err := p.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var postings []models.Posting
	for rows.Next() {
		var posting models.Posting
		err := rows.Scan(
			&posting.ID,
			&posting.CrFrom,
			&posting.DbTo,
			&posting.CrFromCode,
			&posting.DbToCode,
			&posting.Amount,
			&posting.Narration,
			&posting.CreatedAt,
			&posting.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		posting.CreatedAt = posting.CreatedAt.UTC()
		posting.UpdatedAt = posting.UpdatedAt.UTC()
		postings = append(postings, posting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return postings, nil
}

// postingsQuery builds the window query, only the filters set in q become
// predicates.
func postingsQuery(q interfaces.PostingQuery) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT p.id, p.cr_from, p.db_to, cf.code, dt.code, p.amount, p.narration, p.created_at, p.updated_at
	FROM proceedings p
	JOIN ledgers cf ON cf.id = p.cr_from
	JOIN ledgers dt ON dt.id = p.db_to`)

	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Window != nil {
		where = append(where, "p.created_at >= "+arg(q.Window.Start.UTC()))
		if !q.Window.Open() {
			where = append(where, "p.created_at <= "+arg(q.Window.End.UTC()))
		}
	}
	if q.LedgerID != 0 {
		id := arg(q.LedgerID)
		where = append(where, "(p.cr_from = "+id+" OR p.db_to = "+id+")")
	}
	if len(where) > 0 {
		b.WriteString("\n\tWHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString("\n\tORDER BY p.created_at DESC, p.id DESC")
	if q.Limit > 0 {
		b.WriteString(" LIMIT " + arg(q.Limit))
	}
	return b.String(), args
}

// Clear deletes every posting, then every ledger.
func (p *PostgresLedgerStore) Clear(ctx context.Context) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	if _, err = dbTx.ExecContext(ctx, `DELETE FROM proceedings`); err != nil {
		return err
	}
	if _, err = dbTx.ExecContext(ctx, `DELETE FROM ledgers`); err != nil {
		return err
	}
	return dbTx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLedger(row rowScanner) (models.Ledger, error) {
	var (
		ledger      models.Ledger
		description sql.NullString
		kind        string
	)
	err := row.Scan(&ledger.ID, &ledger.Code, &ledger.Name, &description, &ledger.Sort, &kind, &ledger.CreatedAt, &ledger.UpdatedAt)
	if err != nil {
		return models.Ledger{}, err
	}
	ledger.Description = description.String
	ledger.Kind = models.Kind(kind)
	ledger.CreatedAt = ledger.CreatedAt.UTC()
	ledger.UpdatedAt = ledger.UpdatedAt.UTC()
	return ledger, nil
}

// translate maps constraint violations onto the store errors the core knows.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", pqErr.Message, interfaces.ErrConflict)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", pqErr.Message, interfaces.ErrNotFound)
		}
	}
	return err
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
