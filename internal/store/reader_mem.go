package store

import (
	"tomerater/internal/reader"
)

// ReaderMem indexes readers by the email they had when they were stored.
type ReaderMem struct {
	byEmail map[string]*reader.Reader
	order   []string
}

func NewReaderMem() *ReaderMem {
	return &ReaderMem{byEmail: make(map[string]*reader.Reader)}
}

func (s *ReaderMem) Get(email string) (*reader.Reader, bool) {
	r, ok := s.byEmail[email]
	return r, ok
}

func (s *ReaderMem) Has(email string) bool {
	_, ok := s.byEmail[email]
	return ok
}

// Put stores r under its current email. An existing entry for that email is
// replaced in place.
func (s *ReaderMem) Put(r *reader.Reader) {
	email := r.Email()
	if _, ok := s.byEmail[email]; !ok {
		s.order = append(s.order, email)
	}
	s.byEmail[email] = r
}

// List returns readers in registration order.
func (s *ReaderMem) List() []*reader.Reader {
	out := make([]*reader.Reader, 0, len(s.order))
	for _, email := range s.order {
		out = append(out, s.byEmail[email])
	}
	return out
}

func (s *ReaderMem) Len() int {
	return len(s.order)
}
