// Lending commands. Both go through the engine so the stock movement
// and the record transition commit as one unit.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow <member-id> <book-id>",
	Short: "Check out one copy of a book to a member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		memberID, err := parseID("member id", args[0])
		if err != nil {
			return err
		}
		bookID, err := parseID("book id", args[1])
		if err != nil {
			return err
		}
		return doBorrow(memberID, bookID)
	},
}

var returnCmd = &cobra.Command{
	Use:   "return <record-id>",
	Short: "Return a borrowed copy by its record id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordID, err := parseID("record id", args[0])
		if err != nil {
			return err
		}
		return doReturn(recordID)
	},
}

func doBorrow(memberID, bookID int64) error {
	rec, err := engine.Borrow(memberID, bookID)
	if err != nil {
		return err
	}
	fmt.Printf("Borrowed: record %d (member %d, book %d) at %s\n",
		rec.ID, rec.MemberID, rec.BookID, rec.BorrowDate.Format(time.RFC3339))
	return nil
}

func doReturn(recordID int64) error {
	rec, err := engine.Return(recordID)
	if err != nil {
		return err
	}
	fmt.Printf("Returned: record %d (book %d back in stock)\n", rec.ID, rec.BookID)
	return nil
}
