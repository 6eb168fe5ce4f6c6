package store

import (
	"tomerater/internal/book"
)

// ShelfMem tracks read-counts per book in first-seen order. Books are matched
// by their current title and ISBN; the first instance seen for a key stays
// the stored one.
type ShelfMem struct {
	index   map[book.Key]int
	entries []book.ShelfEntry
}

func NewShelfMem() *ShelfMem {
	return &ShelfMem{index: make(map[book.Key]int)}
}

// Increment bumps the read-count of b, starting at 1 for an unseen book, and
// returns the new count.
func (s *ShelfMem) Increment(b *book.Book) int {
	key := b.Key()
	if i, ok := s.index[key]; ok {
		s.entries[i].Count++
		return s.entries[i].Count
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, book.ShelfEntry{Book: b, Count: 1})
	return 1
}

func (s *ShelfMem) Count(b *book.Book) int {
	i, ok := s.index[b.Key()]
	if !ok {
		return 0
	}
	return s.entries[i].Count
}

// HasISBN scans the ISBNs tracked books carry right now.
func (s *ShelfMem) HasISBN(isbn string) bool {
	for _, e := range s.entries {
		if e.Book.ISBN() == isbn {
			return true
		}
	}
	return false
}

func (s *ShelfMem) Entries() []book.ShelfEntry {
	out := make([]book.ShelfEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *ShelfMem) Len() int {
	return len(s.entries)
}
