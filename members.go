// Catalog commands for members.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	updateMemberName  string
	updateMemberEmail string
)

var addMemberCmd = &cobra.Command{
	Use:   "add-member <name> <email>",
	Short: "Register a member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doAddMember(args[0], args[1])
	},
}

var showMemberCmd = &cobra.Command{
	Use:   "show-member <member-id>",
	Short: "Show a member and their full borrow history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("member id", args[0])
		if err != nil {
			return err
		}
		return doShowMember(id)
	},
}

var updateMemberCmd = &cobra.Command{
	Use:   "update-member <member-id>",
	Short: "Update a member's name and/or email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("member id", args[0])
		if err != nil {
			return err
		}
		return doUpdateMember(id, updateMemberName, updateMemberEmail)
	},
}

var deleteMemberCmd = &cobra.Command{
	Use:   "delete-member <member-id>",
	Short: "Delete a member who has no open loans",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("member id", args[0])
		if err != nil {
			return err
		}
		return doDeleteMember(id)
	},
}

func init() {
	updateMemberCmd.Flags().StringVar(&updateMemberName, "name", "", "new name")
	updateMemberCmd.Flags().StringVar(&updateMemberEmail, "email", "", "new email")
}

func doAddMember(name, email string) error {
	id, err := store.AddMember(name, email)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	fmt.Printf("Added member %d: %s <%s>\n", id, name, email)
	return nil
}

func doShowMember(memberID int64) error {
	member, err := store.GetMember(memberID)
	if err != nil {
		return fmt.Errorf("show member: %w", err)
	}
	fmt.Printf("Member %d: %s <%s>\n", member.ID, member.Name, member.Email)

	records, err := store.ListBorrowRecordsByMember(memberID)
	if err != nil {
		return fmt.Errorf("show member: borrow records: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No borrow records.")
		return nil
	}

	fmt.Println("Borrow records:")
	for _, r := range records {
		title := "N/A"
		if book, err := store.GetBook(r.BookID); err == nil {
			title = book.Title
		}
		status, returned := "Borrowed", "-"
		if !r.Open() {
			status = "Returned"
			returned = r.ReturnDate.Format(time.RFC3339)
		}
		fmt.Printf("  record %3d | book %3d | %-40s | %s -> %s | %s\n",
			r.ID, r.BookID, truncateString(title, 40),
			r.BorrowDate.Format(time.RFC3339), returned, status)
	}
	return nil
}

func doUpdateMember(memberID int64, name, email string) error {
	if name == "" && email == "" {
		fmt.Println("Nothing to update.")
		return nil
	}
	if err := store.UpdateMember(memberID, name, email); err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	fmt.Printf("Updated member %d\n", memberID)
	return nil
}

func doDeleteMember(memberID int64) error {
	if err := engine.DeleteMemberGuarded(memberID); err != nil {
		return err
	}
	fmt.Printf("Deleted member %d\n", memberID)
	return nil
}
