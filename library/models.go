package library

import "time"

// Book represents one title in the catalog. Stock counts the copies
// currently available to borrow, not the copies the library owns.
type Book struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category,omitempty"`
	Stock    int    `json:"stock"`
}

// Member represents a registered library member.
type Member struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BorrowRecord is one loan. ReturnDate is nil while the loan is open;
// once set the record is immutable. Records are never deleted and form
// the library's permanent circulation history.
type BorrowRecord struct {
	ID         int64      `json:"id"`
	MemberID   int64      `json:"member_id"`
	BookID     int64      `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// Open reports whether the loan has not been returned yet.
func (r *BorrowRecord) Open() bool { return r.ReturnDate == nil }

// OverdueEntry is one row of the overdue report, joined with the member
// name and book title for display.
type OverdueEntry struct {
	RecordID   int64     `json:"record_id"`
	MemberID   int64     `json:"member_id"`
	MemberName string    `json:"member_name"`
	BookID     int64     `json:"book_id"`
	BookTitle  string    `json:"book_title"`
	BorrowDate time.Time `json:"borrow_date"`
}

// BorrowStat is one row of the most-borrowed report.
type BorrowStat struct {
	BookID int64  `json:"book_id"`
	Title  string `json:"title"`
	Count  int    `json:"count"`
}
