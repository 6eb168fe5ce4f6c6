package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"

	"tomerater/internal/book"
	"tomerater/internal/catalog"
	"tomerater/internal/reader"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type BookLine struct {
	Label     string    `json:"label"`
	Kind      book.Kind `json:"kind"`
	Title     string    `json:"title"`
	ISBN      string    `json:"isbn"`
	ReadCount int       `json:"read_count"`
	Ratings   int       `json:"ratings"`
	Average   *float64  `json:"average,omitempty"`
}

type ReaderLine struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	BooksRead int      `json:"books_read"`
	Average   *float64 `json:"average,omitempty"`
}

type Highlights struct {
	MostReadBook       *BookLine   `json:"most_read_book,omitempty"`
	HighestRatedBook   *BookLine   `json:"highest_rated_book,omitempty"`
	MostPositiveReader *ReaderLine `json:"most_positive_reader,omitempty"`
}

type Summary struct {
	Books      []BookLine   `json:"books"`
	Readers    []ReaderLine `json:"readers"`
	Highlights Highlights   `json:"highlights"`
}

// Build snapshots svc. Averages that do not exist stay nil.
func Build(svc *catalog.Service) Summary {
	s := Summary{
		Books:   make([]BookLine, 0),
		Readers: make([]ReaderLine, 0),
	}
	for _, b := range svc.Books() {
		s.Books = append(s.Books, bookLine(svc, b))
	}
	for _, r := range svc.Readers() {
		s.Readers = append(s.Readers, readerLine(r))
	}

	if b, _ := svc.MostReadBook(); b != nil {
		line := bookLine(svc, b)
		s.Highlights.MostReadBook = &line
	}
	if b := svc.HighestRatedBook(); b != nil {
		line := bookLine(svc, b)
		s.Highlights.HighestRatedBook = &line
	}
	if r := svc.MostPositiveReader(); r != nil {
		line := readerLine(r)
		s.Highlights.MostPositiveReader = &line
	}
	return s
}

func bookLine(svc *catalog.Service, b *book.Book) BookLine {
	return BookLine{
		Label:     b.String(),
		Kind:      b.Kind(),
		Title:     b.Title(),
		ISBN:      b.ISBN(),
		ReadCount: svc.ReadCount(b),
		Ratings:   len(b.Ratings()),
		Average:   optional(b.AverageRating()),
	}
}

func readerLine(r *reader.Reader) ReaderLine {
	return ReaderLine{
		Name:      r.Name(),
		Email:     r.Email(),
		BooksRead: r.CountRead(),
		Average:   optional(r.AverageRating()),
	}
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

func WriteText(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "BOOK\tISBN\tREADS\tAVERAGE")
	for _, b := range s.Books {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", b.Label, b.ISBN, b.ReadCount, formatAverage(b.Average))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "READER\tEMAIL\tBOOKS\tAVERAGE")
	for _, r := range s.Readers {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Name, r.Email, r.BooksRead, formatAverage(r.Average))
	}
	fmt.Fprintln(tw)

	h := s.Highlights
	fmt.Fprintf(tw, "most read book:\t%s\n", bookLabel(h.MostReadBook))
	fmt.Fprintf(tw, "highest rated book:\t%s\n", bookLabel(h.HighestRatedBook))
	fmt.Fprintf(tw, "most positive reader:\t%s\n", readerLabel(h.MostPositiveReader))

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func formatAverage(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *avg)
}

func bookLabel(b *BookLine) string {
	if b == nil {
		return "-"
	}
	return b.Label
}

func readerLabel(r *ReaderLine) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%s <%s>", r.Name, r.Email)
}
