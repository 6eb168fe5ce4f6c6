package catalog

import (
	"tomerater/internal/notice"
	"tomerater/internal/store"
)

type Option func(*Service)

// WithNotifier routes the service's notices to n.
func WithNotifier(n notice.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func NewService(readers ReaderRepository, shelf ShelfRepository, opts ...Option) *Service {
	s := &Service{
		readers:  readers,
		shelf:    shelf,
		notifier: notice.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New returns a service backed by empty in-memory stores.
func New(opts ...Option) *Service {
	return NewService(store.NewReaderMem(), store.NewShelfMem(), opts...)
}
