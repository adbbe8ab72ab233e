package book

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tableBook    = "book"
	colID        = "id"
	colTitle     = "title"
	colAuthor    = "author"
	colPublisher = "publisher"
	colYear      = "year"

	// SQLSTATE unique_violation
	pgUniqueViolation = "23505"
)

var (
	dialect     = goqu.Dialect("postgres")
	bookColumns = []any{colID, colTitle, colAuthor, colPublisher, colYear}
	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, error) {
	query, args, err := buildListQuery(q)
	if err != nil {
		return nil, StoreFailure(err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, StoreFailure(err)
	}

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[Book])
	if err != nil {
		return nil, StoreFailure(err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	query, args, err := dialect.From(tableBook).
		Select(bookColumns...).
		Where(goqu.C(colID).Eq(id)).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, StoreFailure(err)
	}
	return r.queryOne(ctx, query, args)
}

func (r *PostgresRepo) GetByTitle(ctx context.Context, title string) (Book, error) {
	query, args, err := dialect.From(tableBook).
		Select(bookColumns...).
		Where(goqu.C(colTitle).Eq(title)).
		Order(goqu.I(colID).Asc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, StoreFailure(err)
	}
	return r.queryOne(ctx, query, args)
}

// Create relies on the book_title_key constraint for title uniqueness, so
// concurrent inserts of the same title cannot both succeed.
func (r *PostgresRepo) Create(ctx context.Context, f Fields) (Book, error) {
	query, args, err := buildInsertQuery(f)
	if err != nil {
		return Book{}, StoreFailure(err)
	}
	return r.queryOne(ctx, query, args)
}

// Update is a single conditional statement; a missing row yields ErrNotFound.
func (r *PostgresRepo) Update(ctx context.Context, id int64, f Fields) (Book, error) {
	query, args, err := buildUpdateQuery(id, f)
	if err != nil {
		return Book{}, StoreFailure(err)
	}
	return r.queryOne(ctx, query, args)
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := dialect.Delete(tableBook).
		Where(goqu.C(colID).Eq(id)).
		Returning(colID).
		Prepared(true).
		ToSQL()
	if err != nil {
		return StoreFailure(err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var deleted int64
	err = r.db.QueryRow(timeoutCtx, query, args...).Scan(&deleted)
	if err != nil {
		return classify(err)
	}
	return nil
}

func (r *PostgresRepo) queryOne(ctx context.Context, query string, args []any) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return Book{}, classify(err)
	}

	b, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Book])
	if err != nil {
		return Book{}, classify(err)
	}
	return b, nil
}

// classify maps driver errors onto the book error kinds.
func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &Error{Kind: KindConflict, Message: ErrConflict.Message, Err: err}
	}
	return StoreFailure(err)
}

func buildListQuery(q Query) (string, []any, error) {
	ds := dialect.From(tableBook).
		Select(bookColumns...).
		Order(goqu.I(colID).Desc())

	if strings.TrimSpace(q.Search) != "" {
		pattern := "%" + likeEscaper.Replace(q.Search) + "%"
		ds = ds.Where(goqu.Or(
			goqu.C(colTitle).ILike(pattern),
			goqu.C(colAuthor).ILike(pattern),
			goqu.C(colPublisher).ILike(pattern),
		))
	}

	return ds.Prepared(true).ToSQL()
}

func buildInsertQuery(f Fields) (string, []any, error) {
	return dialect.Insert(tableBook).
		Rows(record(f)).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()
}

func buildUpdateQuery(id int64, f Fields) (string, []any, error) {
	return dialect.Update(tableBook).
		Set(record(f)).
		Where(goqu.C(colID).Eq(id)).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()
}

func record(f Fields) goqu.Record {
	return goqu.Record{
		colTitle:     f.Title,
		colAuthor:    f.Author,
		colPublisher: f.Publisher,
		colYear:      f.Year,
	}
}
