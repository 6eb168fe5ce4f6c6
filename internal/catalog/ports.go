package catalog

import (
	"tomerater/internal/book"
	"tomerater/internal/reader"
)

// ReaderRepository holds registered readers keyed by email.
type ReaderRepository interface {
	Get(email string) (*reader.Reader, bool)
	Has(email string) bool
	Put(r *reader.Reader)
	List() []*reader.Reader
}

// ShelfRepository tracks how often each book has been read.
type ShelfRepository interface {
	Increment(b *book.Book) int
	Count(b *book.Book) int
	HasISBN(isbn string) bool
	Entries() []book.ShelfEntry
}
