package book

import "strings"

// Book represents a book entity.
type Book struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Author    string `json:"author" db:"author"`
	Publisher string `json:"publisher" db:"publisher"`
	Year      int    `json:"year" db:"year"`
}

// Fields holds the business fields written on create and update.
type Fields struct {
	Title     string
	Author    string
	Publisher string
	Year      int
}

// Query defines filters for listing books.
type Query struct {
	// Search matches title, author or publisher, case-insensitively.
	Search string
}

// Searching reports whether q filters by a non-blank search term.
func (q Query) Searching() bool {
	return strings.TrimSpace(q.Search) != ""
}
