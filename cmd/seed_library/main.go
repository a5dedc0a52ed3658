// Command seed_library resets the local database and fills it with a
// demo catalog, a few members and enough lending traffic that the
// reports have something to show.
package main

import (
	"fmt"
	"os"

	"library-lending/library"
)

const dbFile = "library.db"

type seedBook struct {
	title    string
	author   string
	category string
	stock    int
}

type seedMember struct {
	name  string
	email string
}

func main() {
	fmt.Println("Cleaning up existing database files...")
	dbFiles := []string{dbFile, dbFile + "-shm", dbFile + "-wal"}
	for _, file := range dbFiles {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", file, err)
		}
	}

	store, err := library.NewSQLiteStore(dbFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	books := []seedBook{
		{"Dune", "Frank Herbert", "Science Fiction", 3},
		{"Dune Messiah", "Frank Herbert", "Science Fiction", 2},
		{"1984", "George Orwell", "Dystopia", 4},
		{"Animal Farm", "George Orwell", "Satire", 2},
		{"The Fellowship of the Ring", "J.R.R. Tolkien", "Fantasy", 3},
		{"The Two Towers", "J.R.R. Tolkien", "Fantasy", 3},
		{"The Return of the King", "J.R.R. Tolkien", "Fantasy", 3},
		{"The Art of War", "Sun Tzu", "Strategy", 1},
		{"Romeo and Juliet", "William Shakespeare", "Drama", 2},
		{"The Three Musketeers", "Alexandre Dumas", "Adventure", 2},
	}

	members := []seedMember{
		{"Paul Atreides", "paul@arrakis.example"},
		{"Jessica Atreides", "jessica@arrakis.example"},
		{"Duncan Idaho", "duncan@arrakis.example"},
		{"Gurney Halleck", "gurney@arrakis.example"},
	}

	bookIDs := make([]int64, 0, len(books))
	for _, b := range books {
		id, err := store.AddBook(b.title, b.author, b.category, b.stock)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding book %q: %v\n", b.title, err)
			os.Exit(1)
		}
		bookIDs = append(bookIDs, id)
	}
	fmt.Printf("Seeded %d books\n", len(bookIDs))

	memberIDs := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := store.AddMember(m.name, m.email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding member %q: %v\n", m.name, err)
			os.Exit(1)
		}
		memberIDs = append(memberIDs, id)
	}
	fmt.Printf("Seeded %d members\n", len(memberIDs))

	// Lending traffic runs through the engine so stock and records stay
	// consistent. Some loans stay open so the overdue report has rows.
	engine := library.NewEngine(store)
	loans := []struct {
		member int
		book   int
		closed bool
	}{
		{0, 0, true},
		{0, 0, true},
		{0, 0, false},
		{1, 2, true},
		{1, 2, false},
		{2, 4, true},
		{2, 5, false},
		{3, 7, false},
		{3, 2, true},
		{1, 8, false},
	}

	borrowed, returned := 0, 0
	for _, loan := range loans {
		rec, err := engine.Borrow(memberIDs[loan.member], bookIDs[loan.book])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error borrowing book %d: %v\n", bookIDs[loan.book], err)
			os.Exit(1)
		}
		borrowed++
		if loan.closed {
			if _, err := engine.Return(rec.ID); err != nil {
				fmt.Fprintf(os.Stderr, "Error returning record %d: %v\n", rec.ID, err)
				os.Exit(1)
			}
			returned++
		}
	}
	fmt.Printf("Recorded %d borrows, %d returns\n", borrowed, returned)

	fmt.Println("\nSeeded catalog:")
	seeded, err := store.ListBooks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing books: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%-3s %-40s %-25s %-5s\n", "ID", "Title", "Author", "Stock")
	for _, b := range seeded {
		fmt.Printf("%-3d %-40s %-25s %-5d\n", b.ID, b.Title, b.Author, b.Stock)
	}

	roster, err := store.ListMembers()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing members: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nSeeded members:")
	for _, m := range roster {
		fmt.Printf("%-3d %-25s %s\n", m.ID, m.Name, m.Email)
	}
}
