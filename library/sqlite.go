package library

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store on a single SQLite file. Write transactions
// open with BEGIN IMMEDIATE (via _txlock) so the read-decrement-insert
// sequence of a borrow serializes per database; a second writer waits on
// busy_timeout instead of failing mid-transaction.
type SQLiteStore struct {
	db *sql.DB

	addBookStmt   *sql.Stmt
	addMemberStmt *sql.Stmt
}

// NewSQLiteStore opens (or creates) the SQLite database at dbPath, applies
// schema migrations, and prepares common statements.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1&_txlock=immediate", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", ErrStoreUnavailable)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open sqlite: %v: %w", err, ErrStoreUnavailable)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases prepared statements and closes the DB.
func (s *SQLiteStore) Close() error {
	if s.addBookStmt != nil {
		s.addBookStmt.Close()
	}
	if s.addMemberStmt != nil {
		s.addMemberStmt.Close()
	}
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS members (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            email TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS books (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            category TEXT,
            stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0)
        );`,
		// No FK constraints here: borrow records are immutable history
		// and must outlive a deleted member. Deletion rules live in the
		// engine guards instead.
		`CREATE TABLE IF NOT EXISTS borrow_records (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            member_id INTEGER NOT NULL,
            book_id INTEGER NOT NULL,
            borrow_date DATETIME NOT NULL,
            return_date DATETIME
        );`,
		`CREATE INDEX IF NOT EXISTS idx_borrow_records_book ON borrow_records(book_id);`,
		`CREATE INDEX IF NOT EXISTS idx_borrow_records_member ON borrow_records(member_id);`,
		`CREATE INDEX IF NOT EXISTS idx_borrow_records_open ON borrow_records(borrow_date)
            WHERE return_date IS NULL;`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (s *SQLiteStore) prepareStatements() error {
	var err error
	if s.addBookStmt, err = s.db.Prepare(`INSERT INTO books(title,author,category,stock) VALUES(?,?,?,?)`); err != nil {
		return err
	}
	if s.addMemberStmt, err = s.db.Prepare(`INSERT INTO members(name,email) VALUES(?,?)`); err != nil {
		return err
	}
	return nil
}

// sqliteErr maps driver failures to the store error taxonomy: BUSY and
// LOCKED become ErrConflict so callers know the operation is safe to
// re-attempt from scratch.
func sqliteErr(op string, err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) {
		if se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%s: %w", op, ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func (s *SQLiteStore) AddBook(title, author, category string, stock int) (int64, error) {
	if stock < 0 {
		return 0, fmt.Errorf("add book: stock must not be negative")
	}
	res, err := s.addBookStmt.Exec(title, author, nullString(category), stock)
	if err != nil {
		return 0, sqliteErr("add book", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) AddMember(name, email string) (int64, error) {
	res, err := s.addMemberStmt.Exec(name, email)
	if err != nil {
		return 0, sqliteErr("add member", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) GetBook(id int64) (*Book, error) {
	return scanBook(s.db.QueryRow(
		`SELECT id,title,author,COALESCE(category,''),stock FROM books WHERE id=?`, id), id)
}

func (s *SQLiteStore) ListBooks() ([]*Book, error) {
	rows, err := s.db.Query(`SELECT id,title,author,COALESCE(category,''),stock FROM books ORDER BY id`)
	if err != nil {
		return nil, sqliteErr("list books", err)
	}
	return collectBooks(rows)
}

// SearchBooks matches the query as a substring of title, author or
// category, case-insensitively.
func (s *SQLiteStore) SearchBooks(query string) ([]*Book, error) {
	if strings.TrimSpace(query) == "" {
		return []*Book{}, nil
	}
	pattern := "%" + query + "%"
	rows, err := s.db.Query(`
        SELECT id,title,author,COALESCE(category,''),stock FROM books
        WHERE title LIKE ? OR author LIKE ? OR category LIKE ?
        ORDER BY id`, pattern, pattern, pattern)
	if err != nil {
		return nil, sqliteErr("search books", err)
	}
	return collectBooks(rows)
}

func (s *SQLiteStore) UpdateBookStock(id int64, stock int) error {
	if stock < 0 {
		return fmt.Errorf("update stock: stock must not be negative")
	}
	res, err := s.db.Exec(`UPDATE books SET stock=? WHERE id=?`, stock, id)
	if err != nil {
		return sqliteErr("update stock", err)
	}
	return requireRow(res, fmt.Errorf("update stock: book %d: %w", id, ErrBookNotFound))
}

func (s *SQLiteStore) GetMember(id int64) (*Member, error) {
	var m Member
	err := s.db.QueryRow(`SELECT id,name,email FROM members WHERE id=?`, id).
		Scan(&m.ID, &m.Name, &m.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %d: %w", id, ErrMemberNotFound)
	}
	if err != nil {
		return nil, sqliteErr("get member", err)
	}
	return &m, nil
}

func (s *SQLiteStore) ListMembers() ([]*Member, error) {
	rows, err := s.db.Query(`SELECT id,name,email FROM members ORDER BY id`)
	if err != nil {
		return nil, sqliteErr("list members", err)
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

// UpdateMember updates the non-empty fields only; with nothing to change
// it is a no-op.
func (s *SQLiteStore) UpdateMember(id int64, name, email string) error {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if name != "" {
		sets = append(sets, "name=?")
		args = append(args, name)
	}
	if email != "" {
		sets = append(sets, "email=?")
		args = append(args, email)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.Exec(`UPDATE members SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	if err != nil {
		return sqliteErr("update member", err)
	}
	return requireRow(res, fmt.Errorf("update member %d: %w", id, ErrMemberNotFound))
}

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

func (s *SQLiteStore) GetBorrowRecord(id int64) (*BorrowRecord, error) {
	return scanBorrowRecord(s.db.QueryRow(
		`SELECT id,member_id,book_id,borrow_date,return_date FROM borrow_records WHERE id=?`, id), id)
}

func (s *SQLiteStore) ListBorrowRecordsByMember(memberID int64) ([]*BorrowRecord, error) {
	rows, err := s.db.Query(`
        SELECT id,member_id,book_id,borrow_date,return_date FROM borrow_records
        WHERE member_id=? ORDER BY borrow_date`, memberID)
	if err != nil {
		return nil, sqliteErr("list borrow records", err)
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

// ListOpenBorrowRecordsOlderThan joins open records with member and book
// rows; the comparison is strict.
func (s *SQLiteStore) ListOpenBorrowRecordsOlderThan(cutoff time.Time) ([]*OverdueEntry, error) {
	rows, err := s.db.Query(`
        SELECT r.id, r.member_id, m.name, r.book_id, b.title, r.borrow_date
        FROM borrow_records r
        JOIN members m ON m.id = r.member_id
        JOIN books b ON b.id = r.book_id
        WHERE r.return_date IS NULL AND r.borrow_date < ?
        ORDER BY r.borrow_date`, cutoff.UTC())
	if err != nil {
		return nil, sqliteErr("select overdue", err)
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

// CountBorrowsByBook groups in SQL rather than fetching every row.
func (s *SQLiteStore) CountBorrowsByBook() (map[int64]int, error) {
	rows, err := s.db.Query(`SELECT book_id, COUNT(*) FROM borrow_records GROUP BY book_id`)
	if err != nil {
		return nil, sqliteErr("count borrows", err)
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

// Atomic runs fn inside one immediate transaction. The write lock is held
// from BEGIN, so concurrent borrows of the last copy serialize instead of
// racing between read and decrement.
func (s *SQLiteStore) Atomic(fn func(Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return sqliteErr("begin", err)
	}
	defer tx.Rollback()

	if err := fn(&sqliteTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return sqliteErr("commit", err)
	}
	return nil
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) GetBook(id int64) (*Book, error) {
	return scanBook(t.tx.QueryRow(
		`SELECT id,title,author,COALESCE(category,''),stock FROM books WHERE id=?`, id), id)
}

func (t *sqliteTx) GetMember(id int64) (*Member, error) {
	var m Member
	err := t.tx.QueryRow(`SELECT id,name,email FROM members WHERE id=?`, id).
		Scan(&m.ID, &m.Name, &m.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %d: %w", id, ErrMemberNotFound)
	}
	if err != nil {
		return nil, sqliteErr("get member", err)
	}
	return &m, nil
}

func (t *sqliteTx) SetBookStock(id int64, stock int) error {
	if stock < 0 {
		return fmt.Errorf("set stock: stock must not be negative")
	}
	res, err := t.tx.Exec(`UPDATE books SET stock=? WHERE id=?`, stock, id)
	if err != nil {
		return sqliteErr("set stock", err)
	}
	return requireRow(res, fmt.Errorf("set stock: book %d: %w", id, ErrBookNotFound))
}

func (t *sqliteTx) InsertBorrowRecord(memberID, bookID int64, borrowDate time.Time) (int64, error) {
	res, err := t.tx.Exec(
		`INSERT INTO borrow_records(member_id,book_id,borrow_date) VALUES(?,?,?)`,
		memberID, bookID, borrowDate.UTC())
	if err != nil {
		return 0, sqliteErr("insert borrow record", err)
	}
	return res.LastInsertId()
}

func (t *sqliteTx) GetBorrowRecord(id int64) (*BorrowRecord, error) {
	return scanBorrowRecord(t.tx.QueryRow(
		`SELECT id,member_id,book_id,borrow_date,return_date FROM borrow_records WHERE id=?`, id), id)
}

// CloseBorrowRecord only touches rows that are still open, so a double
// close cannot overwrite the first return date.
func (t *sqliteTx) CloseBorrowRecord(id int64, returnDate time.Time) error {
	res, err := t.tx.Exec(
		`UPDATE borrow_records SET return_date=? WHERE id=? AND return_date IS NULL`,
		returnDate.UTC(), id)
	if err != nil {
		return sqliteErr("close borrow record", err)
	}
	return requireRow(res, fmt.Errorf("close record %d: %w", id, ErrAlreadyReturned))
}

func (t *sqliteTx) HasBorrowRecords(bookID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM borrow_records WHERE book_id=?)`, bookID).Scan(&exists)
	if err != nil {
		return false, sqliteErr("check borrow history", err)
	}
	return exists, nil
}

func (t *sqliteTx) HasOpenLoans(memberID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM borrow_records WHERE member_id=? AND return_date IS NULL)`,
		memberID).Scan(&exists)
	if err != nil {
		return false, sqliteErr("check open loans", err)
	}
	return exists, nil
}

func (t *sqliteTx) DeleteBook(id int64) error {
	res, err := t.tx.Exec(`DELETE FROM books WHERE id=?`, id)
	if err != nil {
		return sqliteErr("delete book", err)
	}
	return requireRow(res, fmt.Errorf("delete book %d: %w", id, ErrBookNotFound))
}

func (t *sqliteTx) DeleteMember(id int64) error {
	res, err := t.tx.Exec(`DELETE FROM members WHERE id=?`, id)
	if err != nil {
		return sqliteErr("delete member", err)
	}
	return requireRow(res, fmt.Errorf("delete member %d: %w", id, ErrMemberNotFound))
}

// ---------------------------------------------------------------------------
// Row helpers
// ---------------------------------------------------------------------------

func scanBook(row *sql.Row, id int64) (*Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
	}
	if err != nil {
		return nil, sqliteErr("get book", err)
	}
	return &b, nil
}

func scanBorrowRecord(row *sql.Row, id int64) (*BorrowRecord, error) {
	var (
		r   BorrowRecord
		ret sql.NullTime
	)
	err := row.Scan(&r.ID, &r.MemberID, &r.BookID, &r.BorrowDate, &ret)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %d: %w", id, ErrRecordNotFound)
	}
	if err != nil {
		return nil, sqliteErr("get borrow record", err)
	}
	if ret.Valid {
		t := ret.Time
		r.ReturnDate = &t
	}
	return &r, nil
}

func collectBooks(rows *sql.Rows) ([]*Book, error) {
	defer rows.Close()
	var books []*Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Stock); err != nil {
			return nil, err
		}
		books = append(books, &b)
	}
	return books, rows.Err()
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
