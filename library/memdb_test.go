package library

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

func newMemStore(t *testing.T) *MemStore {
	t.Helper()
	s, err := NewMemStore()
	if err != nil {
		t.Fatalf("new mem store: %v", err)
	}
	return s
}

func TestMemStoreCatalog(t *testing.T) {
	is := is.New(t)
	s := newMemStore(t)

	bookID, err := s.AddBook("Dune", "Frank Herbert", "Science Fiction", 2)
	is.NoErr(err)

	book, err := s.GetBook(bookID)
	is.NoErr(err)
	is.Equal(book.Title, "Dune")
	is.Equal(book.Stock, 2)

	_, err = s.GetBook(bookID + 1)
	is.True(errors.Is(err, ErrBookNotFound))

	memberID, err := s.AddMember("Alice", "alice@example.com")
	is.NoErr(err)
	is.NoErr(s.UpdateMember(memberID, "Alicia", ""))

	member, err := s.GetMember(memberID)
	is.NoErr(err)
	is.Equal(member.Name, "Alicia")
	is.Equal(member.Email, "alice@example.com") // untouched field keeps its value

	books, err := s.ListBooks()
	is.NoErr(err)
	is.Equal(len(books), 1)

	members, err := s.ListMembers()
	is.NoErr(err)
	is.Equal(len(members), 1)
}

func TestMemStoreSearch(t *testing.T) {
	is := is.New(t)
	s := newMemStore(t)

	_, err := s.AddBook("Dune", "Frank Herbert", "Science Fiction", 1)
	is.NoErr(err)
	_, err = s.AddBook("Animal Farm", "George Orwell", "Satire", 1)
	is.NoErr(err)

	matches, err := s.SearchBooks("HERBERT")
	is.NoErr(err)
	is.Equal(len(matches), 1) // author match is case-insensitive
	is.Equal(matches[0].Title, "Dune")

	matches, err = s.SearchBooks("fiction")
	is.NoErr(err)
	is.Equal(len(matches), 1) // category match

	matches, err = s.SearchBooks("")
	is.NoErr(err)
	is.Equal(len(matches), 0) // blank query matches nothing
}

func TestMemStoreReturnsCopies(t *testing.T) {
	is := is.New(t)
	s := newMemStore(t)

	bookID, err := s.AddBook("Dune", "Frank Herbert", "", 3)
	is.NoErr(err)

	book, err := s.GetBook(bookID)
	is.NoErr(err)
	book.Stock = 99 // caller mutation must not leak into the store

	fresh, err := s.GetBook(bookID)
	is.NoErr(err)
	is.Equal(fresh.Stock, 3)
}

func TestMemStoreAtomicAbortDiscardsChanges(t *testing.T) {
	is := is.New(t)
	s := newMemStore(t)

	bookID, err := s.AddBook("Dune", "Frank Herbert", "", 5)
	is.NoErr(err)
	memberID, err := s.AddMember("Alice", "alice@example.com")
	is.NoErr(err)

	boom := errors.New("boom")
	err = s.Atomic(func(tx Tx) error {
		if err := tx.SetBookStock(bookID, 0); err != nil {
			return err
		}
		if _, err := tx.InsertBorrowRecord(memberID, bookID, time.Now().UTC()); err != nil {
			return err
		}
		return boom
	})
	is.True(errors.Is(err, boom))

	book, err := s.GetBook(bookID)
	is.NoErr(err)
	is.Equal(book.Stock, 5) // stock write rolled back

	counts, err := s.CountBorrowsByBook()
	is.NoErr(err)
	is.Equal(len(counts), 0) // record insert rolled back
}

func TestMemStoreLedger(t *testing.T) {
	is := is.New(t)
	s := newMemStore(t)

	memberID, err := s.AddMember("Alice", "alice@example.com")
	is.NoErr(err)
	bookID, err := s.AddBook("Dune", "Frank Herbert", "", 5)
	is.NoErr(err)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var first, second int64
	err = s.Atomic(func(tx Tx) error {
		var err error
		if first, err = tx.InsertBorrowRecord(memberID, bookID, base.Add(-48*time.Hour)); err != nil {
			return err
		}
		second, err = tx.InsertBorrowRecord(memberID, bookID, base)
		return err
	})
	is.NoErr(err)

	records, err := s.ListBorrowRecordsByMember(memberID)
	is.NoErr(err)
	is.Equal(len(records), 2)
	is.Equal(records[0].ID, first) // ordered by borrow date
	is.Equal(records[1].ID, second)

	entries, err := s.ListOpenBorrowRecordsOlderThan(base.Add(-24 * time.Hour))
	is.NoErr(err)
	is.Equal(len(entries), 1)
	is.Equal(entries[0].RecordID, first)

	// A borrow date equal to the cutoff is not overdue.
	entries, err = s.ListOpenBorrowRecordsOlderThan(base.Add(-48 * time.Hour))
	is.NoErr(err)
	is.Equal(len(entries), 0)

	counts, err := s.CountBorrowsByBook()
	is.NoErr(err)
	is.Equal(counts[bookID], 2)
}
