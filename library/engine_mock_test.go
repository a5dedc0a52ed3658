package library_test

import (
	"errors"
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"

	"library-lending/library"
	"library-lending/library/mocks"
)

func TestBorrowSurfacesStoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	engine := library.NewEngine(store)

	store.EXPECT().Atomic(gomock.Any()).
		Return(fmt.Errorf("begin: %w", library.ErrStoreUnavailable))

	_, err := engine.Borrow(1, 2)
	if !errors.Is(err, library.ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
	if library.IsRetryable(err) {
		t.Fatal("an unavailable store must not look retryable")
	}
}

func TestBorrowOutOfStockInsertsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	tx := mocks.NewMockTx(ctrl)
	engine := library.NewEngine(store)

	store.EXPECT().Atomic(gomock.Any()).
		DoAndReturn(func(fn func(library.Tx) error) error { return fn(tx) })
	tx.EXPECT().GetMember(int64(1)).Return(&library.Member{ID: 1, Name: "Alice"}, nil)
	tx.EXPECT().GetBook(int64(2)).Return(&library.Book{ID: 2, Title: "Dune", Stock: 0}, nil)
	// No SetBookStock or InsertBorrowRecord expectations: the controller
	// fails the test if the engine writes anything here.

	_, err := engine.Borrow(1, 2)
	if !errors.Is(err, library.ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
}

func TestReturnConflictIsRetryable(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	engine := library.NewEngine(store)

	store.EXPECT().Atomic(gomock.Any()).
		Return(fmt.Errorf("commit: %w", library.ErrConflict))

	_, err := engine.Return(7)
	if !errors.Is(err, library.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	if !library.IsRetryable(err) {
		t.Fatal("a conflict must be retryable")
	}
}

func TestReportOverdueStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	engine := library.NewEngine(store)

	store.EXPECT().ListOpenBorrowRecordsOlderThan(gomock.Any()).
		Return(nil, fmt.Errorf("select overdue: %w", library.ErrStoreUnavailable))

	_, err := engine.ReportOverdue(0)
	if !errors.Is(err, library.ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}

func TestReportMostBorrowedResolvesTitles(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	engine := library.NewEngine(store)

	store.EXPECT().CountBorrowsByBook().
		Return(map[int64]int{3: 2, 9: 5}, nil)
	store.EXPECT().GetBook(int64(9)).Return(&library.Book{ID: 9, Title: "Dune"}, nil)
	store.EXPECT().GetBook(int64(3)).Return(&library.Book{ID: 3, Title: "Animal Farm"}, nil)

	stats, err := engine.ReportMostBorrowed(0)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("want 2 stats, got %d", len(stats))
	}
	if stats[0].BookID != 9 || stats[0].Title != "Dune" || stats[0].Count != 5 {
		t.Fatalf("unexpected first stat: %+v", stats[0])
	}
	if stats[1].BookID != 3 || stats[1].Title != "Animal Farm" {
		t.Fatalf("unexpected second stat: %+v", stats[1])
	}
}
