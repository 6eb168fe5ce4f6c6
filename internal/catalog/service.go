package catalog

import (
	"fmt"
	"io"

	"tomerater/internal/book"
	"tomerater/internal/notice"
	"tomerater/internal/reader"
)

// Service owns every reader and tracked book and mediates all operations
// that touch both. Failures never return errors: the service emits a notice
// and returns nil or false. It is not safe for concurrent use.
type Service struct {
	readers  ReaderRepository
	shelf    ShelfRepository
	notifier notice.Notifier
}

func (s *Service) Notifier() notice.Notifier {
	return s.notifier
}

// ISBNInUse reports whether a tracked book currently carries isbn.
func (s *Service) ISBNInUse(isbn string) bool {
	return s.shelf.HasISBN(isbn)
}

func (s *Service) CreateBook(title, isbn string) *book.Book {
	if !s.isbnAvailable(title, isbn) {
		return nil
	}
	return book.New(title, isbn)
}

func (s *Service) CreateFiction(title, author, isbn string) *book.Book {
	if !s.isbnAvailable(title, isbn) {
		return nil
	}
	return book.NewFiction(title, author, isbn)
}

func (s *Service) CreateNonFiction(title, subject, level, isbn string) *book.Book {
	if !s.isbnAvailable(title, isbn) {
		return nil
	}
	return book.NewNonFiction(title, subject, level, isbn)
}

func (s *Service) isbnAvailable(title, isbn string) bool {
	if !s.shelf.HasISBN(isbn) {
		return true
	}
	notice.Emit(s.notifier, notice.KindDuplicateISBN,
		fmt.Sprintf("%s with ISBN: %s already exists in Tome Rater.", title, isbn),
		map[string]string{"title": title, "isbn": isbn},
	)
	return false
}

// RecordReading registers that the reader with email read b, with an
// optional rating. It is the only way a book becomes tracked. A nil book,
// as returned by a refused Create call, is ignored.
func (s *Service) RecordReading(b *book.Book, email string, stars *int) bool {
	if b == nil {
		return false
	}
	r, ok := s.readers.Get(email)
	if !ok {
		notice.Emit(s.notifier, notice.KindUnknownReader,
			fmt.Sprintf("No user with email %s!", email),
			map[string]string{"email": email},
		)
		return false
	}
	r.ReadBook(b, stars)
	b.AddRating(stars)
	s.shelf.Increment(b)
	return true
}

// AddReader registers a reader and records an unrated reading for each of
// books. It returns nil when the email is malformed or already taken.
func (s *Service) AddReader(name, email string, books ...*book.Book) *reader.Reader {
	if !ValidEmail(email) {
		notice.Emit(s.notifier, notice.KindInvalidEmail,
			"Please provide a valid email address",
			map[string]string{"name": name, "email": email},
		)
		return nil
	}
	if s.readers.Has(email) {
		notice.Emit(s.notifier, notice.KindDuplicateEmail,
			fmt.Sprintf("The email %s is already in use in Tome Rater.", email),
			map[string]string{"name": name, "email": email},
		)
		return nil
	}

	r := reader.New(name, email)
	s.readers.Put(r)
	for _, b := range books {
		if b == nil {
			continue
		}
		s.RecordReading(b, email, nil)
	}
	return r
}

// Reader looks a reader up by the email it was registered with.
func (s *Service) Reader(email string) (*reader.Reader, bool) {
	return s.readers.Get(email)
}

func (s *Service) Readers() []*reader.Reader {
	return s.readers.List()
}

// Books returns tracked books in the order they were first read.
func (s *Service) Books() []*book.Book {
	entries := s.shelf.Entries()
	out := make([]*book.Book, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Book)
	}
	return out
}

func (s *Service) ReadCount(b *book.Book) int {
	return s.shelf.Count(b)
}

// MostReadBook returns the book with the strictly highest read-count and
// that count. The earliest tracked book wins a tie.
func (s *Service) MostReadBook() (*book.Book, int) {
	var mostRead *book.Book
	highest := 0
	for _, e := range s.shelf.Entries() {
		if e.Count > highest {
			highest = e.Count
			mostRead = e.Book
		}
	}
	return mostRead, highest
}

// HighestRatedBook returns the book whose average rating is strictly above
// every earlier one, starting from 0. A book averaging 0, or never rated,
// is never returned.
func (s *Service) HighestRatedBook() *book.Book {
	var best *book.Book
	highest := 0.0
	for _, e := range s.shelf.Entries() {
		avg, ok := e.Book.AverageRating()
		if ok && avg > highest {
			highest = avg
			best = e.Book
		}
	}
	return best
}

// MostPositiveReader applies the HighestRatedBook policy to readers.
func (s *Service) MostPositiveReader() *reader.Reader {
	var best *reader.Reader
	highest := 0.0
	for _, r := range s.readers.List() {
		avg, ok := r.AverageRating()
		if ok && avg > highest {
			highest = avg
			best = r
		}
	}
	return best
}

func (s *Service) PrintCatalog(w io.Writer) error {
	for _, b := range s.Books() {
		if _, err := fmt.Fprintln(w, b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) PrintReaders(w io.Writer) error {
	for _, r := range s.readers.List() {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return nil
}
