// Package seed loads a YAML description of books, readers and readings and
// replays it against a catalog through the catalog's own operations, so every
// rule (unique ISBN, email check, rating range) applies to seeded data too.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tomerater/internal/book"
	"tomerater/internal/catalog"
)

var (
	ErrUnknownBook = errors.New("unknown book")
	ErrUnknownKind = errors.New("unknown book kind")
)

type Book struct {
	Kind    book.Kind `yaml:"kind"`
	Title   string    `yaml:"title"`
	ISBN    string    `yaml:"isbn"`
	Author  string    `yaml:"author,omitempty"`
	Subject string    `yaml:"subject,omitempty"`
	Level   string    `yaml:"level,omitempty"`
}

type Reader struct {
	Name  string   `yaml:"name"`
	Email string   `yaml:"email"`
	Books []string `yaml:"books,omitempty"`
}

type Reading struct {
	ISBN   string `yaml:"isbn"`
	Email  string `yaml:"email"`
	Rating *int   `yaml:"rating,omitempty"`
}

type File struct {
	Books    []Book    `yaml:"books"`
	Readers  []Reader  `yaml:"readers"`
	Readings []Reading `yaml:"readings"`
}

// Result tells how much of a File made it into the catalog.
type Result struct {
	BooksCreated     int
	BooksRejected    int
	ReadersAdded     int
	ReadersRejected  int
	ReadingsRecorded int
	ReadingsRejected int
}

func Load(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode seed: %w", err)
	}
	return f, nil
}

func LoadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Apply creates the books, registers the readers and records the readings in
// that order. Refusals by the catalog are counted, not returned; an error
// means the file itself is inconsistent and nothing after it was applied.
func Apply(svc *catalog.Service, f File) (Result, error) {
	var res Result
	books := make(map[string]*book.Book, len(f.Books))

	for _, sb := range f.Books {
		b, err := create(svc, sb)
		if err != nil {
			return res, err
		}
		if b == nil {
			res.BooksRejected++
			continue
		}
		if _, dup := books[sb.ISBN]; !dup {
			books[sb.ISBN] = b
		}
		res.BooksCreated++
	}

	for _, sr := range f.Readers {
		initial := make([]*book.Book, 0, len(sr.Books))
		for _, isbn := range sr.Books {
			b, ok := books[isbn]
			if !ok {
				return res, fmt.Errorf("reader %s: isbn %s: %w", sr.Email, isbn, ErrUnknownBook)
			}
			initial = append(initial, b)
		}
		if svc.AddReader(sr.Name, sr.Email, initial...) == nil {
			res.ReadersRejected++
			continue
		}
		res.ReadersAdded++
	}

	for _, rd := range f.Readings {
		b, ok := books[rd.ISBN]
		if !ok {
			return res, fmt.Errorf("reading by %s: isbn %s: %w", rd.Email, rd.ISBN, ErrUnknownBook)
		}
		if !svc.RecordReading(b, rd.Email, rd.Rating) {
			res.ReadingsRejected++
			continue
		}
		res.ReadingsRecorded++
	}

	return res, nil
}

func create(svc *catalog.Service, sb Book) (*book.Book, error) {
	switch sb.Kind {
	case book.KindBook, "":
		return svc.CreateBook(sb.Title, sb.ISBN), nil
	case book.KindFiction:
		return svc.CreateFiction(sb.Title, sb.Author, sb.ISBN), nil
	case book.KindNonFiction:
		return svc.CreateNonFiction(sb.Title, sb.Subject, sb.Level, sb.ISBN), nil
	default:
		return nil, fmt.Errorf("book %s: %q: %w", sb.ISBN, sb.Kind, ErrUnknownKind)
	}
}
