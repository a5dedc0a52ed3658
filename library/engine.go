package library

import (
	"fmt"
	"sort"
	"time"
)

// Defaults applied when a report is called with a zero value.
const (
	DefaultOverdueAge  = 14 * 24 * time.Hour
	DefaultReportLimit = 10
)

// Engine owns every cross-entity invariant of the lending domain: it is
// the only writer of Book.Stock and of borrow-record state transitions.
// Each of its mutating operations runs as one atomic unit of work against
// the store, so concurrent callers never see partial effects.
type Engine struct {
	store Store
	now   func() time.Time
}

// NewEngine wraps an opened store handle. The handle's lifecycle belongs
// to the caller; the engine never closes it.
func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// Borrow checks out one copy of a book to a member. It fails with
// ErrOutOfStock when no copy is available, and with ErrMemberNotFound /
// ErrBookNotFound when either side of the loan does not exist. The stock
// check, the decrement and the record insert commit together: of two
// simultaneous borrows racing for the last copy, exactly one succeeds.
func (e *Engine) Borrow(memberID, bookID int64) (*BorrowRecord, error) {
	var rec *BorrowRecord
	err := e.store.Atomic(func(tx Tx) error {
		member, err := tx.GetMember(memberID)
		if err != nil {
			return err
		}

		book, err := tx.GetBook(bookID)
		if err != nil {
			return err
		}
		if book.Stock <= 0 {
			return fmt.Errorf("borrow book %d: %w", bookID, ErrOutOfStock)
		}

		if err := tx.SetBookStock(bookID, book.Stock-1); err != nil {
			return err
		}

		borrowedAt := e.now().UTC()
		id, err := tx.InsertBorrowRecord(member.ID, book.ID, borrowedAt)
		if err != nil {
			return err
		}
		rec = &BorrowRecord{
			ID:         id,
			MemberID:   member.ID,
			BookID:     book.ID,
			BorrowDate: borrowedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Return closes an open borrow record and puts the copy back in stock.
// Returning a record twice fails with ErrAlreadyReturned on the second
// call, and the stock is incremented exactly once.
func (e *Engine) Return(recordID int64) (*BorrowRecord, error) {
	var rec *BorrowRecord
	err := e.store.Atomic(func(tx Tx) error {
		r, err := tx.GetBorrowRecord(recordID)
		if err != nil {
			return err
		}
		if !r.Open() {
			return fmt.Errorf("return record %d: %w", recordID, ErrAlreadyReturned)
		}

		returnedAt := e.now().UTC()
		if err := tx.CloseBorrowRecord(recordID, returnedAt); err != nil {
			return err
		}

		book, err := tx.GetBook(r.BookID)
		if err != nil {
			return err
		}
		if err := tx.SetBookStock(book.ID, book.Stock+1); err != nil {
			return err
		}

		r.ReturnDate = &returnedAt
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteBookGuarded deletes a book only if no borrow record, open or
// closed, references it. History is preserved rather than cascaded away.
func (e *Engine) DeleteBookGuarded(bookID int64) error {
	return e.store.Atomic(func(tx Tx) error {
		if _, err := tx.GetBook(bookID); err != nil {
			return err
		}
		referenced, err := tx.HasBorrowRecords(bookID)
		if err != nil {
			return err
		}
		if referenced {
			return fmt.Errorf("delete book %d: %w", bookID, ErrHasBorrowHistory)
		}
		return tx.DeleteBook(bookID)
	})
}

// DeleteMemberGuarded deletes a member only if they have no open loan.
// Returned history does not block deletion.
func (e *Engine) DeleteMemberGuarded(memberID int64) error {
	return e.store.Atomic(func(tx Tx) error {
		if _, err := tx.GetMember(memberID); err != nil {
			return err
		}
		active, err := tx.HasOpenLoans(memberID)
		if err != nil {
			return err
		}
		if active {
			return fmt.Errorf("delete member %d: %w", memberID, ErrHasActiveLoans)
		}
		return tx.DeleteMember(memberID)
	})
}

// ReportOverdue lists every open loan whose borrow date is strictly older
// than now minus maxAge. A zero or negative maxAge means the 14-day
// default. Pure read.
func (e *Engine) ReportOverdue(maxAge time.Duration) ([]*OverdueEntry, error) {
	if maxAge <= 0 {
		maxAge = DefaultOverdueAge
	}
	cutoff := e.now().UTC().Add(-maxAge)
	entries, err := e.store.ListOpenBorrowRecordsOlderThan(cutoff)
	if err != nil {
		return nil, fmt.Errorf("overdue report: %w", err)
	}
	return entries, nil
}

// ReportMostBorrowed aggregates the full borrow history per book and
// returns the top entries by count. Ties break by ascending book id so
// the order is deterministic. A non-positive limit means the default 10.
func (e *Engine) ReportMostBorrowed(limit int) ([]*BorrowStat, error) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}

	counts, err := e.store.CountBorrowsByBook()
	if err != nil {
		return nil, fmt.Errorf("most-borrowed report: %w", err)
	}

	stats := make([]*BorrowStat, 0, len(counts))
	for bookID, count := range counts {
		stats = append(stats, &BorrowStat{BookID: bookID, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].BookID < stats[j].BookID
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}

	for _, s := range stats {
		book, err := e.store.GetBook(s.BookID)
		if err != nil {
			// A counted book must still exist: deletion is guarded by
			// borrow history.
			return nil, fmt.Errorf("most-borrowed report: resolve book %d: %w", s.BookID, err)
		}
		s.Title = book.Title
	}
	return stats, nil
}
