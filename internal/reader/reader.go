package reader

import (
	"fmt"

	"tomerater/internal/book"
	"tomerater/internal/notice"
	"tomerater/internal/rating"
)

// Entry is one book on a reader's list. A nil Rating means read but not rated.
type Entry struct {
	Book   *book.Book
	Rating *int
}

type Reader struct {
	name    string
	email   string
	entries []Entry
	index   map[book.Key]int
}

func New(name, email string) *Reader {
	return &Reader{
		name:  name,
		email: email,
		index: make(map[book.Key]int),
	}
}

func (r *Reader) Name() string  { return r.name }
func (r *Reader) Email() string { return r.email }

// Equal reports whether name and email both match.
func (r *Reader) Equal(other *Reader) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.name == other.name && r.email == other.email
}

// ReadBook records b on the reading list. Reading the same book again
// overwrites its rating and keeps its original position. The rating is
// copied, so later writes through stars are not seen.
func (r *Reader) ReadBook(b *book.Book, stars *int) {
	if stars != nil {
		v := *stars
		stars = &v
	}
	key := b.Key()
	if i, ok := r.index[key]; ok {
		r.entries[i].Rating = stars
		return
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Entry{Book: b, Rating: stars})
}

// Rating returns the reader's rating for b. found is false if b was never read.
func (r *Reader) Rating(b *book.Book) (stars *int, found bool) {
	i, ok := r.index[b.Key()]
	if !ok {
		return nil, false
	}
	return r.entries[i].Rating, true
}

// BooksRead lists the reading list in first-read order.
func (r *Reader) BooksRead() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Reader) CountRead() int {
	return len(r.entries)
}

// AverageRating averages the ratings the reader actually gave. Unrated reads
// count towards neither sum nor count; ok is false if nothing was rated.
func (r *Reader) AverageRating() (avg float64, ok bool) {
	stars := make([]int, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Rating != nil {
			stars = append(stars, *e.Rating)
		}
	}
	return rating.Average(stars)
}

// ChangeEmail replaces the email. Indexes keyed by the previous address are
// not updated here.
func (r *Reader) ChangeEmail(email string, n notice.Notifier) {
	old := r.email
	r.email = email
	notice.Emit(n, notice.KindEmailChanged,
		fmt.Sprintf("%s: email address has been updated to %s", r.name, r.email),
		map[string]string{"name": r.name, "old_email": old, "email": r.email},
	)
}

func (r *Reader) String() string {
	return fmt.Sprintf("User %s, email: %s, books read: %d", r.name, r.email, len(r.entries))
}
