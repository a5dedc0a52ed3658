// Catalog commands for books. Plain CRUD goes straight to the store;
// deletion is guarded and therefore routes through the engine.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"library-lending/library"
)

var addBookCmd = &cobra.Command{
	Use:   "add-book <title> <author> <category> <stock>",
	Short: "Add a book to the catalog",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		stock, err := strconv.Atoi(args[3])
		if err != nil || stock < 0 {
			return fmt.Errorf("invalid stock %q: want a non-negative integer", args[3])
		}
		return doAddBook(args[0], args[1], args[2], stock)
	},
}

var listBooksCmd = &cobra.Command{
	Use:   "list-books",
	Short: "List every book in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doListBooks()
	},
}

var searchBooksCmd = &cobra.Command{
	Use:   "search-books <query>",
	Short: "Search books by title, author or category substring",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doSearchBooks(strings.Join(args, " "))
	},
}

var updateStockCmd = &cobra.Command{
	Use:   "update-stock <book-id> <stock>",
	Short: "Set a book's stock count",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("book id", args[0])
		if err != nil {
			return err
		}
		stock, err := strconv.Atoi(args[1])
		if err != nil || stock < 0 {
			return fmt.Errorf("invalid stock %q: want a non-negative integer", args[1])
		}
		return doUpdateStock(id, stock)
	},
}

var deleteBookCmd = &cobra.Command{
	Use:   "delete-book <book-id>",
	Short: "Delete a book that has no borrow history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("book id", args[0])
		if err != nil {
			return err
		}
		return doDeleteBook(id)
	},
}

func doAddBook(title, author, category string, stock int) error {
	id, err := store.AddBook(title, author, category, stock)
	if err != nil {
		return fmt.Errorf("add book: %w", err)
	}
	fmt.Printf("Added book %d: %s by %s (stock %d)\n", id, title, author, stock)
	return nil
}

func doListBooks() error {
	books, err := store.ListBooks()
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}
	if len(books) == 0 {
		fmt.Println("No books in catalog.")
		return nil
	}
	printBooks(books)
	return nil
}

func doSearchBooks(query string) error {
	books, err := store.SearchBooks(query)
	if err != nil {
		return fmt.Errorf("search books: %w", err)
	}
	if len(books) == 0 {
		fmt.Printf("No books matching %q.\n", query)
		return nil
	}
	printBooks(books)
	return nil
}

func doUpdateStock(bookID int64, stock int) error {
	if err := store.UpdateBookStock(bookID, stock); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	fmt.Printf("Stock for book %d set to %d\n", bookID, stock)
	return nil
}

func doDeleteBook(bookID int64) error {
	if err := engine.DeleteBookGuarded(bookID); err != nil {
		return err
	}
	fmt.Printf("Deleted book %d\n", bookID)
	return nil
}

func printBooks(books []*library.Book) {
	for _, b := range books {
		fmt.Printf("%3d | %-40s | %-20s | %-15s | stock: %d\n",
			b.ID,
			truncateString(b.Title, 40),
			truncateString(b.Author, 20),
			truncateString(b.Category, 15),
			b.Stock)
	}
}

func parseID(label, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", label, s)
	}
	return id, nil
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
