// Interactive shell. Reads one command per line and dispatches to the
// same handlers the subcommands use, so scripted and interactive runs
// behave identically. The banner and prompt appear only when stdin is a
// terminal; piped input produces clean output.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive command loop",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Println("Library lending shell. Type 'help' for commands.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("lib> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		name := strings.ToLower(parts[0])
		if name == "exit" || name == "quit" {
			break
		}
		if err := dispatch(name, parts[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

func dispatch(name string, args []string) error {
	switch name {
	case "help":
		printShellHelp()
		return nil
	case "add_member":
		if len(args) != 2 {
			return fmt.Errorf("usage: add_member <name> <email>")
		}
		return doAddMember(args[0], args[1])
	case "add_book":
		if len(args) != 4 {
			return fmt.Errorf("usage: add_book <title> <author> <category> <stock>")
		}
		stock, err := strconv.Atoi(args[3])
		if err != nil || stock < 0 {
			return fmt.Errorf("invalid stock %q: want a non-negative integer", args[3])
		}
		return doAddBook(args[0], args[1], args[2], stock)
	case "list_books":
		return doListBooks()
	case "search_books":
		if len(args) == 0 {
			return fmt.Errorf("usage: search_books <query>")
		}
		return doSearchBooks(strings.Join(args, " "))
	case "show_member":
		id, err := oneID("member id", args)
		if err != nil {
			return err
		}
		return doShowMember(id)
	case "update_book_stock":
		if len(args) != 2 {
			return fmt.Errorf("usage: update_book_stock <book_id> <new_stock>")
		}
		id, err := parseID("book id", args[0])
		if err != nil {
			return err
		}
		stock, err := strconv.Atoi(args[1])
		if err != nil || stock < 0 {
			return fmt.Errorf("invalid stock %q: want a non-negative integer", args[1])
		}
		return doUpdateStock(id, stock)
	case "update_member_info":
		if len(args) == 0 {
			return fmt.Errorf("usage: update_member_info <member_id> [name=<name>] [email=<email>]")
		}
		id, err := parseID("member id", args[0])
		if err != nil {
			return err
		}
		var memberName, memberEmail string
		for _, kv := range args[1:] {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid field %q: want name=<name> or email=<email>", kv)
			}
			switch key {
			case "name":
				memberName = value
			case "email":
				memberEmail = value
			default:
				return fmt.Errorf("unknown field %q: want name or email", key)
			}
		}
		return doUpdateMember(id, memberName, memberEmail)
	case "delete_member":
		id, err := oneID("member id", args)
		if err != nil {
			return err
		}
		return doDeleteMember(id)
	case "delete_book":
		id, err := oneID("book id", args)
		if err != nil {
			return err
		}
		return doDeleteBook(id)
	case "borrow_book":
		if len(args) != 2 {
			return fmt.Errorf("usage: borrow_book <member_id> <book_id>")
		}
		memberID, err := parseID("member id", args[0])
		if err != nil {
			return err
		}
		bookID, err := parseID("book id", args[1])
		if err != nil {
			return err
		}
		return doBorrow(memberID, bookID)
	case "return_book":
		id, err := oneID("record id", args)
		if err != nil {
			return err
		}
		return doReturn(id)
	case "report_overdue":
		days := cfgOverdueDays
		if len(args) > 0 {
			d, err := strconv.Atoi(args[0])
			if err != nil || d <= 0 {
				return fmt.Errorf("invalid days %q: want a positive integer", args[0])
			}
			days = d
		}
		return doReportOverdue(days)
	case "report_most_borrowed":
		limit := cfgReportLimit
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid limit %q: want a positive integer", args[0])
			}
			limit = n
		}
		return doReportMostBorrowed(limit)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", name)
	}
}

func oneID(label string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("want exactly one %s", label)
	}
	return parseID(label, args[0])
}

func printShellHelp() {
	fmt.Println(`Available commands:
  add_member <name> <email>
  add_book <title> <author> <category> <stock>
  list_books
  search_books <query>
  show_member <member_id>
  update_book_stock <book_id> <new_stock>
  update_member_info <member_id> [name=<name>] [email=<email>]
  delete_member <member_id>
  delete_book <book_id>
  borrow_book <member_id> <book_id>
  return_book <record_id>
  report_overdue [days]
  report_most_borrowed [limit]
  help
  exit`)
}
