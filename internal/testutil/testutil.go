package testutil

import (
	"tomerater/internal/book"
)

// Emails used across package tests.
const (
	AliceEmail = "alice@example.com"
	BobEmail   = "bob@example.org"
	CarolEmail = "carol@university.edu"
)

// SnowCrash returns a fresh plain book.
func SnowCrash() *book.Book {
	return book.New("Snow Crash", "0553380958")
}

// Dune returns a fresh fiction title.
func Dune() *book.Book {
	return book.NewFiction("Dune", "Frank Herbert", "0441013597")
}

// SocietyOfMind returns a fresh non-fiction title.
func SocietyOfMind() *book.Book {
	return book.NewNonFiction("Society of Mind", "AI", "beginner", "0671657135")
}

// Shelf returns one book of each variant, in a fixed order.
func Shelf() []*book.Book {
	return []*book.Book{SnowCrash(), Dune(), SocietyOfMind()}
}
