package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// PostgresStore implements Store on PostgreSQL, the store the original
// deployment ran on. Atomic units of work take row locks with
// SELECT ... FOR UPDATE, so two borrows racing for the last copy
// serialize on the book row.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects with a lib/pq connection string and applies
// the schema.
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %v: %w", err, ErrStoreUnavailable)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open postgres: %v: %w", err, ErrStoreUnavailable)
	}
	if err := applyPostgresSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

const postgresSchema = `
CREATE TABLE IF NOT EXISTS members (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS books (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    category TEXT,
    stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0)
);
-- No FK constraints: borrow records are immutable history and must
-- outlive a deleted member. Deletion rules live in the engine guards.
CREATE TABLE IF NOT EXISTS borrow_records (
    id BIGSERIAL PRIMARY KEY,
    member_id BIGINT NOT NULL,
    book_id BIGINT NOT NULL,
    borrow_date TIMESTAMPTZ NOT NULL,
    return_date TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_borrow_records_book ON borrow_records(book_id);
CREATE INDEX IF NOT EXISTS idx_borrow_records_member ON borrow_records(member_id);
CREATE INDEX IF NOT EXISTS idx_borrow_records_open ON borrow_records(borrow_date)
    WHERE return_date IS NULL;
`

func applyPostgresSchema(db *sql.DB) error {
	if _, err := db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// pgErr maps serialization failures and deadlocks to ErrConflict; both
// mean the whole unit of work is safe to re-attempt.
func pgErr(op string, err error) error {
	var pe *pq.Error
	if errors.As(err, &pe) {
		switch pe.Code {
		case "40001", "40P01":
			return fmt.Errorf("%s: %w", op, ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func (s *PostgresStore) AddBook(title, author, category string, stock int) (int64, error) {
	if stock < 0 {
		return 0, fmt.Errorf("add book: stock must not be negative")
	}
	var id int64
	err := s.db.QueryRow(
		`INSERT INTO books (title, author, category, stock) VALUES ($1, $2, $3, $4) RETURNING id`,
		title, author, nullString(category), stock).Scan(&id)
	if err != nil {
		return 0, pgErr("add book", err)
	}
	return id, nil
}

func (s *PostgresStore) AddMember(name, email string) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		`INSERT INTO members (name, email) VALUES ($1, $2) RETURNING id`,
		name, email).Scan(&id)
	if err != nil {
		return 0, pgErr("add member", err)
	}
	return id, nil
}

func (s *PostgresStore) GetBook(id int64) (*Book, error) {
	return scanPgBook(s.db.QueryRow(
		`SELECT id, title, author, COALESCE(category,''), stock FROM books WHERE id=$1`, id), id)
}

func (s *PostgresStore) ListBooks() ([]*Book, error) {
	rows, err := s.db.Query(`SELECT id, title, author, COALESCE(category,''), stock FROM books ORDER BY id`)
	if err != nil {
		return nil, pgErr("list books", err)
	}
	return collectBooks(rows)
}

func (s *PostgresStore) SearchBooks(query string) ([]*Book, error) {
	if strings.TrimSpace(query) == "" {
		return []*Book{}, nil
	}
	pattern := "%" + query + "%"
	rows, err := s.db.Query(`
        SELECT id, title, author, COALESCE(category,''), stock FROM books
        WHERE title ILIKE $1 OR author ILIKE $1 OR category ILIKE $1
        ORDER BY id`, pattern)
	if err != nil {
		return nil, pgErr("search books", err)
	}
	return collectBooks(rows)
}

func (s *PostgresStore) UpdateBookStock(id int64, stock int) error {
	if stock < 0 {
		return fmt.Errorf("update stock: stock must not be negative")
	}
	res, err := s.db.Exec(`UPDATE books SET stock=$2 WHERE id=$1`, id, stock)
	if err != nil {
		return pgErr("update stock", err)
	}
	return requireRow(res, fmt.Errorf("update stock: book %d: %w", id, ErrBookNotFound))
}

func (s *PostgresStore) GetMember(id int64) (*Member, error) {
	var m Member
	err := s.db.QueryRow(`SELECT id, name, email FROM members WHERE id=$1`, id).
		Scan(&m.ID, &m.Name, &m.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %d: %w", id, ErrMemberNotFound)
	}
	if err != nil {
		return nil, pgErr("get member", err)
	}
	return &m, nil
}

func (s *PostgresStore) ListMembers() ([]*Member, error) {
	rows, err := s.db.Query(`SELECT id, name, email FROM members ORDER BY id`)
	if err != nil {
		return nil, pgErr("list members", err)
	}
	defer rows.Close()
	var members []*Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (s *PostgresStore) UpdateMember(id int64, name, email string) error {
	res, err := s.db.Exec(`
        UPDATE members
        SET name = COALESCE(NULLIF($2,''), name),
            email = COALESCE(NULLIF($3,''), email)
        WHERE id = $1`, id, name, email)
	if err != nil {
		return pgErr("update member", err)
	}
	return requireRow(res, fmt.Errorf("update member %d: %w", id, ErrMemberNotFound))
}

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

func (s *PostgresStore) GetBorrowRecord(id int64) (*BorrowRecord, error) {
	return scanPgRecord(s.db.QueryRow(
		`SELECT id, member_id, book_id, borrow_date, return_date FROM borrow_records WHERE id=$1`, id), id)
}

func (s *PostgresStore) ListBorrowRecordsByMember(memberID int64) ([]*BorrowRecord, error) {
	rows, err := s.db.Query(`
        SELECT id, member_id, book_id, borrow_date, return_date FROM borrow_records
        WHERE member_id=$1 ORDER BY borrow_date`, memberID)
	if err != nil {
		return nil, pgErr("list borrow records", err)
	}
	defer rows.Close()
	var records []*BorrowRecord
	for rows.Next() {
		var (
			r   BorrowRecord
			ret sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.MemberID, &r.BookID, &r.BorrowDate, &ret); err != nil {
			return nil, err
		}
		if ret.Valid {
			t := ret.Time
			r.ReturnDate = &t
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

func (s *PostgresStore) ListOpenBorrowRecordsOlderThan(cutoff time.Time) ([]*OverdueEntry, error) {
	rows, err := s.db.Query(`
        SELECT r.id, r.member_id, m.name, r.book_id, b.title, r.borrow_date
        FROM borrow_records r
        JOIN members m ON m.id = r.member_id
        JOIN books b ON b.id = r.book_id
        WHERE r.return_date IS NULL AND r.borrow_date < $1
        ORDER BY r.borrow_date`, cutoff.UTC())
	if err != nil {
		return nil, pgErr("select overdue", err)
	}
	defer rows.Close()
	var entries []*OverdueEntry
	for rows.Next() {
		var e OverdueEntry
		if err := rows.Scan(&e.RecordID, &e.MemberID, &e.MemberName, &e.BookID, &e.BookTitle, &e.BorrowDate); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) CountBorrowsByBook() (map[int64]int, error) {
	rows, err := s.db.Query(`SELECT book_id, COUNT(*) FROM borrow_records GROUP BY book_id`)
	if err != nil {
		return nil, pgErr("count borrows", err)
	}
	defer rows.Close()
	counts := make(map[int64]int)
	for rows.Next() {
		var (
			bookID int64
			n      int
		)
		if err := rows.Scan(&bookID, &n); err != nil {
			return nil, err
		}
		counts[bookID] = n
	}
	return counts, rows.Err()
}

// ---------------------------------------------------------------------------
// Atomic unit of work
// ---------------------------------------------------------------------------

func (s *PostgresStore) Atomic(fn func(Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return pgErr("begin", err)
	}
	defer tx.Rollback()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return pgErr("commit", err)
	}
	return nil
}

type pgTx struct {
	tx *sql.Tx
}

// GetBook locks the row for the rest of the transaction.
func (t *pgTx) GetBook(id int64) (*Book, error) {
	return scanPgBook(t.tx.QueryRow(
		`SELECT id, title, author, COALESCE(category,''), stock FROM books WHERE id=$1 FOR UPDATE`, id), id)
}

// GetMember locks the member row. Borrow and the member-deletion guard
// both start here, so a loan cannot open between the guard's check and
// its delete. Lock order is member then book everywhere.
func (t *pgTx) GetMember(id int64) (*Member, error) {
	var m Member
	err := t.tx.QueryRow(`SELECT id, name, email FROM members WHERE id=$1 FOR UPDATE`, id).
		Scan(&m.ID, &m.Name, &m.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %d: %w", id, ErrMemberNotFound)
	}
	if err != nil {
		return nil, pgErr("get member", err)
	}
	return &m, nil
}

func (t *pgTx) SetBookStock(id int64, stock int) error {
	if stock < 0 {
		return fmt.Errorf("set stock: stock must not be negative")
	}
	res, err := t.tx.Exec(`UPDATE books SET stock=$2 WHERE id=$1`, id, stock)
	if err != nil {
		return pgErr("set stock", err)
	}
	return requireRow(res, fmt.Errorf("set stock: book %d: %w", id, ErrBookNotFound))
}

func (t *pgTx) InsertBorrowRecord(memberID, bookID int64, borrowDate time.Time) (int64, error) {
	var id int64
	err := t.tx.QueryRow(
		`INSERT INTO borrow_records (member_id, book_id, borrow_date) VALUES ($1, $2, $3) RETURNING id`,
		memberID, bookID, borrowDate.UTC()).Scan(&id)
	if err != nil {
		return 0, pgErr("insert borrow record", err)
	}
	return id, nil
}

// GetBorrowRecord locks the record row, serializing concurrent returns.
func (t *pgTx) GetBorrowRecord(id int64) (*BorrowRecord, error) {
	return scanPgRecord(t.tx.QueryRow(
		`SELECT id, member_id, book_id, borrow_date, return_date FROM borrow_records WHERE id=$1 FOR UPDATE`, id), id)
}

func (t *pgTx) CloseBorrowRecord(id int64, returnDate time.Time) error {
	res, err := t.tx.Exec(
		`UPDATE borrow_records SET return_date=$2 WHERE id=$1 AND return_date IS NULL`,
		id, returnDate.UTC())
	if err != nil {
		return pgErr("close borrow record", err)
	}
	return requireRow(res, fmt.Errorf("close record %d: %w", id, ErrAlreadyReturned))
}

func (t *pgTx) HasBorrowRecords(bookID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM borrow_records WHERE book_id=$1)`, bookID).Scan(&exists)
	if err != nil {
		return false, pgErr("check borrow history", err)
	}
	return exists, nil
}

func (t *pgTx) HasOpenLoans(memberID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM borrow_records WHERE member_id=$1 AND return_date IS NULL)`,
		memberID).Scan(&exists)
	if err != nil {
		return false, pgErr("check open loans", err)
	}
	return exists, nil
}

func (t *pgTx) DeleteBook(id int64) error {
	res, err := t.tx.Exec(`DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return pgErr("delete book", err)
	}
	return requireRow(res, fmt.Errorf("delete book %d: %w", id, ErrBookNotFound))
}

func (t *pgTx) DeleteMember(id int64) error {
	res, err := t.tx.Exec(`DELETE FROM members WHERE id=$1`, id)
	if err != nil {
		return pgErr("delete member", err)
	}
	return requireRow(res, fmt.Errorf("delete member %d: %w", id, ErrMemberNotFound))
}

// ---------------------------------------------------------------------------
// Row helpers
// ---------------------------------------------------------------------------

func scanPgBook(row *sql.Row, id int64) (*Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
	}
	if err != nil {
		return nil, pgErr("get book", err)
	}
	return &b, nil
}

func scanPgRecord(row *sql.Row, id int64) (*BorrowRecord, error) {
	var (
		r   BorrowRecord
		ret sql.NullTime
	)
	err := row.Scan(&r.ID, &r.MemberID, &r.BookID, &r.BorrowDate, &ret)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %d: %w", id, ErrRecordNotFound)
	}
	if err != nil {
		return nil, pgErr("get borrow record", err)
	}
	if ret.Valid {
		t := ret.Time
		r.ReturnDate = &t
	}
	return &r, nil
}
