package library

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-memdb"
)

// MemStore implements Store on hashicorp/go-memdb. It backs tests and the
// "memory" storage setting; nothing survives process exit. go-memdb admits
// a single write transaction at a time, which is exactly the serialization
// the borrow/return units of work need.
type MemStore struct {
	db *memdb.MemDB

	nextBookID   atomic.Int64
	nextMemberID atomic.Int64
	nextRecordID atomic.Int64
}

const (
	booksTable   = "books"
	membersTable = "members"
	borrowsTable = "borrows"
)

// NewMemStore creates an empty in-memory store.
func NewMemStore() (*MemStore, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			booksTable: {
				Name: booksTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
			membersTable: {
				Name: membersTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
			borrowsTable: {
				Name: borrowsTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					"member_id": {
						Name:    "member_id",
						Unique:  false,
						Indexer: &memdb.IntFieldIndex{Field: "MemberID"},
					},
					"book_id": {
						Name:    "book_id",
						Unique:  false,
						Indexer: &memdb.IntFieldIndex{Field: "BookID"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("init memdb: %w", err)
	}
	return &MemStore{db: db}, nil
}

// Close is a no-op; the store lives and dies with the process.
func (s *MemStore) Close() error { return nil }

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func (s *MemStore) AddBook(title, author, category string, stock int) (int64, error) {
	if stock < 0 {
		return 0, fmt.Errorf("add book: stock must not be negative")
	}
	txn := s.db.Txn(true)
	defer txn.Abort()

	id := s.nextBookID.Add(1)
	if err := txn.Insert(booksTable, Book{ID: id, Title: title, Author: author, Category: category, Stock: stock}); err != nil {
		return 0, fmt.Errorf("add book: %w", err)
	}
	txn.Commit()
	return id, nil
}

func (s *MemStore) AddMember(name, email string) (int64, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	id := s.nextMemberID.Add(1)
	if err := txn.Insert(membersTable, Member{ID: id, Name: name, Email: email}); err != nil {
		return 0, fmt.Errorf("add member: %w", err)
	}
	txn.Commit()
	return id, nil
}

func (s *MemStore) GetBook(id int64) (*Book, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	return getBookTxn(txn, id)
}

func (s *MemStore) ListBooks() ([]*Book, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(booksTable, "id")
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	var books []*Book
	for obj := it.Next(); obj != nil; obj = it.Next() {
		b := obj.(Book)
		books = append(books, &b)
	}
	return books, nil
}

func (s *MemStore) SearchBooks(query string) ([]*Book, error) {
	if strings.TrimSpace(query) == "" {
		return []*Book{}, nil
	}
	q := strings.ToLower(query)

	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(booksTable, "id")
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	var books []*Book
	for obj := it.Next(); obj != nil; obj = it.Next() {
		b := obj.(Book)
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.Category), q) {
			books = append(books, &b)
		}
	}
	return books, nil
}

func (s *MemStore) UpdateBookStock(id int64, stock int) error {
	if stock < 0 {
		return fmt.Errorf("update stock: stock must not be negative")
	}
	txn := s.db.Txn(true)
	defer txn.Abort()

	book, err := getBookTxn(txn, id)
	if err != nil {
		return err
	}
	updated := *book
	updated.Stock = stock
	if err := txn.Insert(booksTable, updated); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	txn.Commit()
	return nil
}

func (s *MemStore) GetMember(id int64) (*Member, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	return getMemberTxn(txn, id)
}

func (s *MemStore) ListMembers() ([]*Member, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(membersTable, "id")
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	var members []*Member
	for obj := it.Next(); obj != nil; obj = it.Next() {
		m := obj.(Member)
		members = append(members, &m)
	}
	return members, nil
}

func (s *MemStore) UpdateMember(id int64, name, email string) error {
	if name == "" && email == "" {
		return nil
	}
	txn := s.db.Txn(true)
	defer txn.Abort()

	member, err := getMemberTxn(txn, id)
	if err != nil {
		return err
	}
	updated := *member
	if name != "" {
		updated.Name = name
	}
	if email != "" {
		updated.Email = email
	}
	if err := txn.Insert(membersTable, updated); err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	txn.Commit()
	return nil
}

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

func (s *MemStore) GetBorrowRecord(id int64) (*BorrowRecord, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	return getRecordTxn(txn, id)
}

func (s *MemStore) ListBorrowRecordsByMember(memberID int64) ([]*BorrowRecord, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(borrowsTable, "member_id", memberID)
	if err != nil {
		return nil, fmt.Errorf("list borrow records: %w", err)
	}
	var records []*BorrowRecord
	for obj := it.Next(); obj != nil; obj = it.Next() {
		r := obj.(BorrowRecord)
		records = append(records, &r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].BorrowDate.Before(records[j].BorrowDate)
	})
	return records, nil
}

func (s *MemStore) ListOpenBorrowRecordsOlderThan(cutoff time.Time) ([]*OverdueEntry, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(borrowsTable, "id")
	if err != nil {
		return nil, fmt.Errorf("select overdue: %w", err)
	}
	var entries []*OverdueEntry
	for obj := it.Next(); obj != nil; obj = it.Next() {
		r := obj.(BorrowRecord)
		if !r.Open() || !r.BorrowDate.Before(cutoff) {
			continue
		}
		member, err := getMemberTxn(txn, r.MemberID)
		if err != nil {
			return nil, err
		}
		book, err := getBookTxn(txn, r.BookID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &OverdueEntry{
			RecordID:   r.ID,
			MemberID:   member.ID,
			MemberName: member.Name,
			BookID:     book.ID,
			BookTitle:  book.Title,
			BorrowDate: r.BorrowDate,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].BorrowDate.Before(entries[j].BorrowDate)
	})
	return entries, nil
}

// CountBorrowsByBook scans the whole table; acceptable here because the
// in-memory store only ever holds small data sets.
func (s *MemStore) CountBorrowsByBook() (map[int64]int, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(borrowsTable, "id")
	if err != nil {
		return nil, fmt.Errorf("count borrows: %w", err)
	}
	counts := make(map[int64]int)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		r := obj.(BorrowRecord)
		counts[r.BookID]++
	}
	return counts, nil
}

// ---------------------------------------------------------------------------
// Atomic unit of work
// ---------------------------------------------------------------------------

// Atomic runs fn inside a single write transaction. go-memdb serializes
// writers, so two units of work never interleave; Abort discards every
// uncommitted change when fn fails.
func (s *MemStore) Atomic(fn func(Tx) error) error {
	txn := s.db.Txn(true)
	if err := fn(&memTx{txn: txn, store: s}); err != nil {
		txn.Abort()
		return err
	}
	txn.Commit()
	return nil
}

type memTx struct {
	txn   *memdb.Txn
	store *MemStore
}

func (t *memTx) GetBook(id int64) (*Book, error)     { return getBookTxn(t.txn, id) }
func (t *memTx) GetMember(id int64) (*Member, error) { return getMemberTxn(t.txn, id) }

func (t *memTx) SetBookStock(id int64, stock int) error {
	if stock < 0 {
		return fmt.Errorf("set stock: stock must not be negative")
	}
	book, err := getBookTxn(t.txn, id)
	if err != nil {
		return err
	}
	updated := *book
	updated.Stock = stock
	if err := t.txn.Insert(booksTable, updated); err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

func (t *memTx) InsertBorrowRecord(memberID, bookID int64, borrowDate time.Time) (int64, error) {
	id := t.store.nextRecordID.Add(1)
	rec := BorrowRecord{ID: id, MemberID: memberID, BookID: bookID, BorrowDate: borrowDate}
	if err := t.txn.Insert(borrowsTable, rec); err != nil {
		return 0, fmt.Errorf("insert borrow record: %w", err)
	}
	return id, nil
}

func (t *memTx) GetBorrowRecord(id int64) (*BorrowRecord, error) {
	return getRecordTxn(t.txn, id)
}

func (t *memTx) CloseBorrowRecord(id int64, returnDate time.Time) error {
	rec, err := getRecordTxn(t.txn, id)
	if err != nil {
		return err
	}
	if !rec.Open() {
		return fmt.Errorf("close record %d: %w", id, ErrAlreadyReturned)
	}
	closed := *rec
	closed.ReturnDate = &returnDate
	if err := t.txn.Insert(borrowsTable, closed); err != nil {
		return fmt.Errorf("close borrow record: %w", err)
	}
	return nil
}

func (t *memTx) HasBorrowRecords(bookID int64) (bool, error) {
	obj, err := t.txn.First(borrowsTable, "book_id", bookID)
	if err != nil {
		return false, fmt.Errorf("check borrow history: %w", err)
	}
	return obj != nil, nil
}

func (t *memTx) HasOpenLoans(memberID int64) (bool, error) {
	it, err := t.txn.Get(borrowsTable, "member_id", memberID)
	if err != nil {
		return false, fmt.Errorf("check open loans: %w", err)
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		if r := obj.(BorrowRecord); r.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) DeleteBook(id int64) error {
	book, err := getBookTxn(t.txn, id)
	if err != nil {
		return err
	}
	if err := t.txn.Delete(booksTable, *book); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func (t *memTx) DeleteMember(id int64) error {
	member, err := getMemberTxn(t.txn, id)
	if err != nil {
		return err
	}
	if err := t.txn.Delete(membersTable, *member); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row helpers
// ---------------------------------------------------------------------------

func getBookTxn(txn *memdb.Txn, id int64) (*Book, error) {
	obj, err := txn.First(booksTable, "id", id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
	}
	b := obj.(Book)
	return &b, nil
}

func getMemberTxn(txn *memdb.Txn, id int64) (*Member, error) {
	obj, err := txn.First(membersTable, "id", id)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("member %d: %w", id, ErrMemberNotFound)
	}
	m := obj.(Member)
	return &m, nil
}

func getRecordTxn(txn *memdb.Txn, id int64) (*BorrowRecord, error) {
	obj, err := txn.First(borrowsTable, "id", id)
	if err != nil {
		return nil, fmt.Errorf("get borrow record: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("record %d: %w", id, ErrRecordNotFound)
	}
	r := obj.(BorrowRecord)
	return &r, nil
}
