package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"bookcatalog/internal/book"
	"bookcatalog/internal/platform/postgres"
)

var sampleBooks = []book.Fields{
	{Title: "Dune", Author: "Frank Herbert", Publisher: "Ace", Year: 1965},
	{Title: "Laskar Pelangi", Author: "Andrea Hirata", Publisher: "Bentang Pustaka", Year: 2005},
	{Title: "Bumi Manusia", Author: "Pramoedya Ananta Toer", Publisher: "Hasta Mitra", Year: 1980},
	{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Publisher: "Addison-Wesley", Year: 1999},
	{Title: "The Go Programming Language", Author: "Alan Donovan", Publisher: "Addison-Wesley", Year: 2015},
}

func main() {
	generate := flag.Int("generate", 0, "Number of extra generated books to insert")
	flag.Parse()

	loadEnvFiles()

	ctx := context.Background()
	pool, err := postgres.Open(ctx, databaseDSN(), postgres.DefaultOptions())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := book.NewPostgresRepo(pool, dbTimeout())

	books := append([]book.Fields{}, sampleBooks...)
	books = append(books, generateBooks(*generate)...)

	inserted, skipped, err := seed(ctx, repo, books)
	if err != nil {
		log.Fatalf("Failed to seed books: %v", err)
	}
	log.Printf("Seed done: inserted=%d skipped=%d", inserted, skipped)
}

// seed inserts every book whose title is not stored yet.
func seed(ctx context.Context, repo book.Repository, books []book.Fields) (inserted, skipped int, err error) {
	for _, f := range books {
		_, err := repo.GetByTitle(ctx, f.Title)
		switch {
		case err == nil:
			skipped++
			continue
		case !errors.Is(err, book.ErrNotFound):
			return inserted, skipped, fmt.Errorf("lookup %q: %w", f.Title, err)
		}

		if _, err := repo.Create(ctx, f); err != nil {
			// lost a race with another writer; the title is there now
			if errors.Is(err, book.ErrConflict) {
				skipped++
				continue
			}
			return inserted, skipped, fmt.Errorf("insert %q: %w", f.Title, err)
		}
		inserted++
	}
	return inserted, skipped, nil
}

func generateBooks(count int) []book.Fields {
	publishers := []string{"Gramedia", "Penguin", "HarperCollins", "Oxford", "MIT Press", "Mizan"}
	out := make([]book.Fields, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, book.Fields{
			Title:     fmt.Sprintf("Book Title %d - %s", i+1, getRandomWord()),
			Author:    fmt.Sprintf("Author %s", getRandomWord()),
			Publisher: publishers[rand.Intn(len(publishers))],
			Year:      1950 + rand.Intn(75),
		})
	}
	return out
}

func getRandomWord() string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rand.Intn(len(words))]
}
