package library

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	id, err := s.AddBook("Dune", "Frank Herbert", "Science Fiction", 3)
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s.Close()

	book, err := s.GetBook(id)
	if err != nil {
		t.Fatalf("get book after reopen: %v", err)
	}
	if book.Title != "Dune" || book.Stock != 3 {
		t.Fatalf("unexpected book after reopen: %+v", book)
	}
}

func TestAddAndGetBook(t *testing.T) {
	s := tempStore(t)

	id, err := s.AddBook("1984", "George Orwell", "", 2)
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	book, err := s.GetBook(id)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if book.Author != "George Orwell" || book.Category != "" || book.Stock != 2 {
		t.Fatalf("unexpected book: %+v", book)
	}

	if _, err := s.GetBook(id + 1); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("want ErrBookNotFound, got %v", err)
	}
	if _, err := s.AddBook("Broken", "Nobody", "", -1); err == nil {
		t.Fatal("want error for negative stock")
	}
}

func TestSearchBooks(t *testing.T) {
	s := tempStore(t)
	mustAdd := func(title, author, category string) {
		if _, err := s.AddBook(title, author, category, 1); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}
	mustAdd("Dune", "Frank Herbert", "Science Fiction")
	mustAdd("Dune Messiah", "Frank Herbert", "Science Fiction")
	mustAdd("Animal Farm", "George Orwell", "Satire")

	byTitle, err := s.SearchBooks("dune")
	if err != nil {
		t.Fatalf("search title: %v", err)
	}
	if len(byTitle) != 2 {
		t.Fatalf("want 2 title matches, got %d", len(byTitle))
	}

	byAuthor, err := s.SearchBooks("Orwell")
	if err != nil {
		t.Fatalf("search author: %v", err)
	}
	if len(byAuthor) != 1 || byAuthor[0].Title != "Animal Farm" {
		t.Fatalf("unexpected author matches: %+v", byAuthor)
	}

	byCategory, err := s.SearchBooks("science")
	if err != nil {
		t.Fatalf("search category: %v", err)
	}
	if len(byCategory) != 2 {
		t.Fatalf("want 2 category matches, got %d", len(byCategory))
	}

	empty, err := s.SearchBooks("   ")
	if err != nil {
		t.Fatalf("search blank: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("blank query must match nothing, got %d", len(empty))
	}
}

func TestUpdateBookStock(t *testing.T) {
	s := tempStore(t)
	id, _ := s.AddBook("Dune", "Frank Herbert", "", 1)

	if err := s.UpdateBookStock(id, 7); err != nil {
		t.Fatalf("update stock: %v", err)
	}
	book, _ := s.GetBook(id)
	if book.Stock != 7 {
		t.Fatalf("want stock 7, got %d", book.Stock)
	}

	if err := s.UpdateBookStock(id+1, 1); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("want ErrBookNotFound, got %v", err)
	}
	if err := s.UpdateBookStock(id, -1); err == nil {
		t.Fatal("want error for negative stock")
	}
}

func TestUpdateMemberPartial(t *testing.T) {
	s := tempStore(t)
	id, err := s.AddMember("Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}

	if err := s.UpdateMember(id, "Alicia", ""); err != nil {
		t.Fatalf("update name: %v", err)
	}
	m, _ := s.GetMember(id)
	if m.Name != "Alicia" || m.Email != "alice@example.com" {
		t.Fatalf("unexpected member after name update: %+v", m)
	}

	if err := s.UpdateMember(id, "", "alicia@example.com"); err != nil {
		t.Fatalf("update email: %v", err)
	}
	m, _ = s.GetMember(id)
	if m.Email != "alicia@example.com" {
		t.Fatalf("unexpected member after email update: %+v", m)
	}

	// Both fields empty is a no-op, even for an unknown id.
	if err := s.UpdateMember(id+99, "", ""); err != nil {
		t.Fatalf("no-op update: %v", err)
	}
	if err := s.UpdateMember(id+99, "Ghost", ""); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("want ErrMemberNotFound, got %v", err)
	}
}

func TestCloseBorrowRecordOnlyOnce(t *testing.T) {
	s := tempStore(t)
	memberID, _ := s.AddMember("Alice", "alice@example.com")
	bookID, _ := s.AddBook("Dune", "Frank Herbert", "", 1)

	var recID int64
	err := s.Atomic(func(tx Tx) error {
		var err error
		recID, err = tx.InsertBorrowRecord(memberID, bookID, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("insert record: %v", err)
	}

	err = s.Atomic(func(tx Tx) error {
		return tx.CloseBorrowRecord(recID, time.Now().UTC())
	})
	if err != nil {
		t.Fatalf("close record: %v", err)
	}

	err = s.Atomic(func(tx Tx) error {
		return tx.CloseBorrowRecord(recID, time.Now().UTC())
	})
	if !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("want ErrAlreadyReturned, got %v", err)
	}
}

func TestAtomicRollsBackOnError(t *testing.T) {
	s := tempStore(t)
	bookID, _ := s.AddBook("Dune", "Frank Herbert", "", 5)

	sentinel := errors.New("boom")
	err := s.Atomic(func(tx Tx) error {
		if err := tx.SetBookStock(bookID, 0); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel error, got %v", err)
	}

	book, err := s.GetBook(bookID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if book.Stock != 5 {
		t.Fatalf("rollback failed, stock = %d", book.Stock)
	}
}

func TestCountBorrowsByBook(t *testing.T) {
	s := tempStore(t)
	memberID, _ := s.AddMember("Alice", "alice@example.com")
	bookA, _ := s.AddBook("Alpha", "A", "", 1)
	bookB, _ := s.AddBook("Beta", "B", "", 1)

	insert := func(bookID int64, n int) {
		for i := 0; i < n; i++ {
			err := s.Atomic(func(tx Tx) error {
				_, err := tx.InsertBorrowRecord(memberID, bookID, time.Now().UTC())
				return err
			})
			if err != nil {
				t.Fatalf("insert record: %v", err)
			}
		}
	}
	insert(bookA, 3)
	insert(bookB, 1)

	counts, err := s.CountBorrowsByBook()
	if err != nil {
		t.Fatalf("count borrows: %v", err)
	}
	if counts[bookA] != 3 || counts[bookB] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestListOpenBorrowRecordsOlderThan(t *testing.T) {
	s := tempStore(t)
	memberID, _ := s.AddMember("Alice", "alice@example.com")
	bookID, _ := s.AddBook("Dune", "Frank Herbert", "", 5)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	insertAt := func(at time.Time) int64 {
		var id int64
		err := s.Atomic(func(tx Tx) error {
			var err error
			id, err = tx.InsertBorrowRecord(memberID, bookID, at)
			return err
		})
		if err != nil {
			t.Fatalf("insert record: %v", err)
		}
		return id
	}

	oldID := insertAt(base.Add(-48 * time.Hour))
	insertAt(base) // too recent
	closedID := insertAt(base.Add(-72 * time.Hour))
	err := s.Atomic(func(tx Tx) error {
		return tx.CloseBorrowRecord(closedID, base)
	})
	if err != nil {
		t.Fatalf("close record: %v", err)
	}

	entries, err := s.ListOpenBorrowRecordsOlderThan(base.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("select overdue: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 overdue entry, got %d", len(entries))
	}
	e := entries[0]
	if e.RecordID != oldID || e.MemberName != "Alice" || e.BookTitle != "Dune" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestGetBorrowRecordNotFound(t *testing.T) {
	s := tempStore(t)
	if _, err := s.GetBorrowRecord(99); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}
