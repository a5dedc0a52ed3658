package library

import "time"

// Catalog is the plain CRUD surface over books and members. None of these
// calls carry cross-row atomicity requirements; the CLI talks to them
// directly for add/list/update commands.
type Catalog interface {
	AddBook(title, author, category string, stock int) (int64, error)
	GetBook(id int64) (*Book, error)
	ListBooks() ([]*Book, error)
	// SearchBooks does a case-insensitive substring match on title,
	// author and category.
	SearchBooks(query string) ([]*Book, error)
	UpdateBookStock(id int64, stock int) error

	AddMember(name, email string) (int64, error)
	GetMember(id int64) (*Member, error)
	ListMembers() ([]*Member, error)
	// UpdateMember updates the non-empty fields only.
	UpdateMember(id int64, name, email string) error
}

// Ledger is the read surface over borrow records. Records are created and
// closed exclusively through Tx inside an atomic unit of work.
type Ledger interface {
	GetBorrowRecord(id int64) (*BorrowRecord, error)
	ListBorrowRecordsByMember(memberID int64) ([]*BorrowRecord, error)
	// ListOpenBorrowRecordsOlderThan selects open records with
	// borrowDate strictly before cutoff, joined with member name and
	// book title.
	ListOpenBorrowRecordsOlderThan(cutoff time.Time) ([]*OverdueEntry, error)
	// CountBorrowsByBook groups the full history (open and closed) by
	// book. Stores with a query engine do the grouping server-side.
	CountBorrowsByBook() (map[int64]int, error)
}

// Tx is the set of primitives available inside one atomic unit of work.
// Reads through Tx observe the transaction's own writes; on stores with
// row locking the book/record reads take the write lock.
type Tx interface {
	GetBook(id int64) (*Book, error)
	GetMember(id int64) (*Member, error)
	SetBookStock(id int64, stock int) error

	InsertBorrowRecord(memberID, bookID int64, borrowDate time.Time) (int64, error)
	GetBorrowRecord(id int64) (*BorrowRecord, error)
	// CloseBorrowRecord sets returnDate exactly once. Closing an
	// already-closed record fails with ErrAlreadyReturned.
	CloseBorrowRecord(id int64, returnDate time.Time) error

	HasBorrowRecords(bookID int64) (bool, error)
	HasOpenLoans(memberID int64) (bool, error)
	DeleteBook(id int64) error
	DeleteMember(id int64) error
}

// Store is the full persistence handle the engine is constructed with.
// Atomic runs fn inside one transaction: if fn returns an error nothing
// it did is visible; otherwise all of it commits together. Concurrent
// Atomic calls never observe each other's partial effects.
type Store interface {
	Catalog
	Ledger
	Atomic(fn func(Tx) error) error
	Close() error
}
