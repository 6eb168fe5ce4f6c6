package book

import (
	"fmt"

	"tomerater/internal/notice"
	"tomerater/internal/rating"
)

// Kind tags which variant of catalog item a Book is.
type Kind string

const (
	KindBook       Kind = "book"
	KindFiction    Kind = "fiction"
	KindNonFiction Kind = "non_fiction"
)

// Key is the equality key of a book: two books are the same entity iff title
// and ISBN both match. The catalog enforces uniqueness on ISBN alone.
type Key struct {
	Title string
	ISBN  string
}

// ShelfEntry is a tracked book and how many times it has been read.
type ShelfEntry struct {
	Book  *Book
	Count int
}

// Book represents a catalog item together with the ratings readers gave it.
// Variant-specific fields are only meaningful for the matching Kind.
type Book struct {
	kind    Kind
	title   string
	isbn    string
	author  string
	subject string
	level   string
	ratings []int
}

// New creates a plain book.
func New(title, isbn string) *Book {
	return &Book{kind: KindBook, title: title, isbn: isbn}
}

// NewFiction creates a fiction title written by author.
func NewFiction(title, author, isbn string) *Book {
	return &Book{kind: KindFiction, title: title, isbn: isbn, author: author}
}

// NewNonFiction creates a non-fiction title on subject at the given level.
func NewNonFiction(title, subject, level, isbn string) *Book {
	return &Book{kind: KindNonFiction, title: title, isbn: isbn, subject: subject, level: level}
}

func (b *Book) Kind() Kind      { return b.kind }
func (b *Book) Title() string   { return b.title }
func (b *Book) ISBN() string    { return b.isbn }
func (b *Book) Author() string  { return b.author }
func (b *Book) Subject() string { return b.subject }
func (b *Book) Level() string   { return b.level }

// Key returns the current equality key.
func (b *Book) Key() Key {
	return Key{Title: b.title, ISBN: b.isbn}
}

// Equal reports whether both books share title and ISBN.
func (b *Book) Equal(other *Book) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Key() == other.Key()
}

// Ratings returns a copy of the stored ratings in the order they were added.
func (b *Book) Ratings() []int {
	out := make([]int, len(b.ratings))
	copy(out, b.ratings)
	return out
}

// AddRating stores r when it is present and within range. Anything else is
// dropped without a notice.
func (b *Book) AddRating(r *int) {
	if !rating.InRange(r) {
		return
	}
	b.ratings = append(b.ratings, *r)
}

// AverageRating returns the mean of the stored ratings; ok is false when the
// book has not been rated.
func (b *Book) AverageRating() (avg float64, ok bool) {
	return rating.Average(b.ratings)
}

// ChangeISBN replaces the ISBN without any uniqueness check.
func (b *Book) ChangeISBN(isbn string, n notice.Notifier) {
	old := b.isbn
	b.isbn = isbn
	notice.Emit(n, notice.KindISBNChanged,
		fmt.Sprintf("%s: ISBN has been updated to %s", b.title, b.isbn),
		map[string]string{"title": b.title, "old_isbn": old, "isbn": b.isbn},
	)
}

// String returns the display label, which depends on the variant.
func (b *Book) String() string {
	switch b.kind {
	case KindFiction:
		return fmt.Sprintf("%s by %s", b.title, b.author)
	case KindNonFiction:
		return fmt.Sprintf("%s, a %s manual on %s", b.title, b.level, b.subject)
	default:
		return fmt.Sprintf("%s with ISBN: %s", b.title, b.isbn)
	}
}
