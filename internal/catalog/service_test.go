package catalog

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tomerater/internal/book"
	"tomerater/internal/notice"
	"tomerater/internal/rating"
	"tomerater/internal/testutil"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(n notice.Notice) {
	m.Called(n)
}

func newService(t *testing.T) (*Service, *notice.Recorder) {
	t.Helper()
	rec := notice.NewRecorder()
	return New(WithNotifier(rec)), rec
}

func TestService_CreateBook(t *testing.T) {
	t.Run("returns an unregistered book", func(t *testing.T) {
		s, rec := newService(t)

		b := s.CreateBook("Snow Crash", "0553380958")

		require.NotNil(t, b)
		assert.Equal(t, book.KindBook, b.Kind())
		assert.Empty(t, s.Books(), "creation must not track the book")
		assert.Zero(t, rec.Len())
	})

	t.Run("variants", func(t *testing.T) {
		s, _ := newService(t)

		f := s.CreateFiction("Dune", "Frank Herbert", "0441013597")
		nf := s.CreateNonFiction("Society of Mind", "AI", "beginner", "0671657135")

		require.NotNil(t, f)
		require.NotNil(t, nf)
		assert.Equal(t, "Dune by Frank Herbert", f.String())
		assert.Equal(t, "Society of Mind, a beginner manual on AI", nf.String())
	})

	t.Run("untracked isbn may be created twice", func(t *testing.T) {
		s, _ := newService(t)

		assert.NotNil(t, s.CreateBook("A", "1"))
		assert.NotNil(t, s.CreateBook("B", "1"))
	})
}

func TestService_Create_DuplicateISBN(t *testing.T) {
	s, rec := newService(t)
	s.AddReader("Alice", testutil.AliceEmail)
	tracked := s.CreateBook("Snow Crash", "0553380958")
	require.True(t, s.RecordReading(tracked, testutil.AliceEmail, nil))
	rec.Reset()

	before := s.Books()

	assert.Nil(t, s.CreateBook("Other Title", "0553380958"))
	assert.Nil(t, s.CreateFiction("Other Title", "Someone", "0553380958"))
	assert.Nil(t, s.CreateNonFiction("Other Title", "Math", "advanced", "0553380958"))

	assert.Equal(t, before, s.Books())
	assert.Equal(t, []notice.Kind{
		notice.KindDuplicateISBN, notice.KindDuplicateISBN, notice.KindDuplicateISBN,
	}, rec.Kinds())

	n, _ := rec.Last()
	assert.Equal(t, "Other Title with ISBN: 0553380958 already exists in Tome Rater.", n.Message)
}

func TestService_Create_DuplicateISBN_NotifiesOnce(t *testing.T) {
	n := new(mockNotifier)
	s := New(WithNotifier(n))
	s.AddReader("Alice", testutil.AliceEmail)
	s.RecordReading(testutil.SnowCrash(), testutil.AliceEmail, nil)

	n.On("Notify", mock.MatchedBy(func(got notice.Notice) bool {
		return got.Kind == notice.KindDuplicateISBN && got.Attrs["isbn"] == "0553380958"
	})).Return().Once()

	assert.Nil(t, s.CreateBook("Snow Crash", "0553380958"))
	n.AssertExpectations(t)
}

func TestService_RecordReading(t *testing.T) {
	t.Run("unknown reader changes nothing", func(t *testing.T) {
		s, rec := newService(t)
		b := testutil.SnowCrash()

		ok := s.RecordReading(b, "ghost@example.com", rating.Of(3))

		assert.False(t, ok)
		assert.Empty(t, s.Readers())
		assert.Empty(t, s.Books())
		assert.Empty(t, b.Ratings())
		assert.Zero(t, s.ReadCount(b))
		n, found := rec.Last()
		require.True(t, found)
		assert.Equal(t, notice.KindUnknownReader, n.Kind)
		assert.Equal(t, "No user with email ghost@example.com!", n.Message)
	})

	t.Run("counts every reading", func(t *testing.T) {
		s, _ := newService(t)
		s.AddReader("Alice", testutil.AliceEmail)
		s.AddReader("Bob", testutil.BobEmail)
		b := testutil.SnowCrash()

		assert.True(t, s.RecordReading(b, testutil.AliceEmail, nil))
		assert.True(t, s.RecordReading(b, testutil.BobEmail, rating.Of(2)))
		assert.True(t, s.RecordReading(b, testutil.AliceEmail, rating.Of(4)))

		assert.Equal(t, 3, s.ReadCount(b))
		assert.Equal(t, []int{2, 4}, b.Ratings())
	})

	t.Run("out-of-range rating is dropped silently", func(t *testing.T) {
		s, rec := newService(t)
		s.AddReader("Alice", testutil.AliceEmail)
		rec.Reset()
		b := testutil.SnowCrash()

		require.True(t, s.RecordReading(b, testutil.AliceEmail, rating.Of(7)))

		assert.Empty(t, b.Ratings())
		assert.Equal(t, 1, s.ReadCount(b))
		assert.Zero(t, rec.Len())
	})
}

func TestService_AddReader(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		s, rec := newService(t)

		r := s.AddReader("Bob", "bob@nodomain")

		assert.Nil(t, r)
		assert.Empty(t, s.Readers())
		n, ok := rec.Last()
		require.True(t, ok)
		assert.Equal(t, notice.KindInvalidEmail, n.Kind)
		assert.Equal(t, "Please provide a valid email address", n.Message)
	})

	t.Run("duplicate email keeps the first reader", func(t *testing.T) {
		s, rec := newService(t)
		first := s.AddReader("Alice", testutil.AliceEmail)

		second := s.AddReader("Alicia", testutil.AliceEmail)

		assert.Nil(t, second)
		got, ok := s.Reader(testutil.AliceEmail)
		require.True(t, ok)
		assert.Same(t, first, got)
		assert.Equal(t, []notice.Kind{notice.KindDuplicateEmail}, rec.Kinds())
	})

	t.Run("invalid email is checked before duplicates", func(t *testing.T) {
		s, rec := newService(t)

		s.AddReader("Bob", "bob@nodomain")
		s.AddReader("Bob", "bob@nodomain")

		assert.Equal(t, []notice.Kind{notice.KindInvalidEmail, notice.KindInvalidEmail}, rec.Kinds())
	})

	t.Run("initial books are unrated reads", func(t *testing.T) {
		s, _ := newService(t)
		shelf := testutil.Shelf()

		r := s.AddReader("Carol", testutil.CarolEmail, shelf...)

		require.NotNil(t, r)
		assert.Equal(t, 3, r.CountRead())
		_, rated := r.AverageRating()
		assert.False(t, rated)
		assert.Equal(t, shelf, s.Books())
		for _, b := range shelf {
			assert.Equal(t, 1, s.ReadCount(b))
			assert.Empty(t, b.Ratings())
		}
	})
}

func TestService_ChangeEmailLeavesIndexStale(t *testing.T) {
	s, rec := newService(t)
	r := s.AddReader("Alice", testutil.AliceEmail)

	r.ChangeEmail("alice@example.org", s.Notifier())

	_, found := s.Reader("alice@example.org")
	assert.False(t, found)
	got, found := s.Reader(testutil.AliceEmail)
	require.True(t, found)
	assert.Equal(t, "alice@example.org", got.Email())
	assert.True(t, s.RecordReading(testutil.Dune(), testutil.AliceEmail, nil))
	assert.Equal(t, []notice.Kind{notice.KindEmailChanged}, rec.Kinds())
}

func TestService_SnowCrashScenario(t *testing.T) {
	s, _ := newService(t)
	b := s.CreateBook("Snow Crash", "0553380958")
	require.NotNil(t, b)
	alice := s.AddReader("Alice", "alice@example.com")
	require.NotNil(t, alice)

	require.True(t, s.RecordReading(b, "alice@example.com", rating.Of(4)))

	avg, ok := b.AverageRating()
	assert.True(t, ok)
	assert.Equal(t, 4.0, avg)

	avg, ok = alice.AverageRating()
	assert.True(t, ok)
	assert.Equal(t, 4.0, avg)

	mostRead, count := s.MostReadBook()
	assert.Same(t, b, mostRead)
	assert.Equal(t, 1, count)
}

func TestService_TwoReadersSameBook(t *testing.T) {
	s, _ := newService(t)
	b := testutil.SnowCrash()
	alice := s.AddReader("Alice", testutil.AliceEmail)
	bob := s.AddReader("Bob", testutil.BobEmail)

	s.RecordReading(b, testutil.AliceEmail, rating.Of(4))
	s.RecordReading(b, testutil.BobEmail, rating.Of(2))

	avg, _ := b.AverageRating()
	assert.Equal(t, 3.0, avg)
	aliceAvg, _ := alice.AverageRating()
	bobAvg, _ := bob.AverageRating()
	assert.Equal(t, 4.0, aliceAvg)
	assert.Equal(t, 2.0, bobAvg)
}

func TestService_TwoReadersSameBook_OutOfRangeKeptByReaderOnly(t *testing.T) {
	s, _ := newService(t)
	b := testutil.SnowCrash()
	s.AddReader("Alice", testutil.AliceEmail)
	bob := s.AddReader("Bob", testutil.BobEmail)

	s.RecordReading(b, testutil.AliceEmail, rating.Of(3))
	s.RecordReading(b, testutil.BobEmail, rating.Of(5))

	avg, _ := b.AverageRating()
	assert.Equal(t, 3.0, avg, "5 is out of range for the book")
	bobAvg, ok := bob.AverageRating()
	assert.True(t, ok)
	assert.Equal(t, 5.0, bobAvg, "the reader keeps the rating as given")
}

func TestService_MostReadBook(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s, _ := newService(t)
		b, count := s.MostReadBook()
		assert.Nil(t, b)
		assert.Zero(t, count)
	})

	t.Run("tie goes to the first tracked", func(t *testing.T) {
		s, _ := newService(t)
		s.AddReader("Alice", testutil.AliceEmail)
		dune, snow := testutil.Dune(), testutil.SnowCrash()
		s.RecordReading(dune, testutil.AliceEmail, nil)
		s.RecordReading(snow, testutil.AliceEmail, nil)

		got, count := s.MostReadBook()
		assert.Same(t, dune, got)
		assert.Equal(t, 1, count)
	})

	t.Run("strictly highest", func(t *testing.T) {
		s, _ := newService(t)
		s.AddReader("Alice", testutil.AliceEmail)
		s.AddReader("Bob", testutil.BobEmail)
		dune, snow := testutil.Dune(), testutil.SnowCrash()
		s.RecordReading(dune, testutil.AliceEmail, nil)
		s.RecordReading(snow, testutil.AliceEmail, nil)
		s.RecordReading(snow, testutil.BobEmail, nil)

		got, count := s.MostReadBook()
		assert.Same(t, snow, got)
		assert.Equal(t, 2, count)
	})
}

func TestService_HighestRatedBook(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s, _ := newService(t)
		assert.Nil(t, s.HighestRatedBook())
	})

	t.Run("zero average is never selected", func(t *testing.T) {
		s, _ := newService(t)
		s.AddReader("Alice", testutil.AliceEmail)
		s.RecordReading(testutil.SnowCrash(), testutil.AliceEmail, rating.Of(0))

		assert.Nil(t, s.HighestRatedBook())
	})

	t.Run("unrated books are skipped", func(t *testing.T) {
		s, _ := newService(t)
		s.AddReader("Alice", testutil.AliceEmail)
		unrated, rated := testutil.Dune(), testutil.SnowCrash()
		s.RecordReading(unrated, testutil.AliceEmail, nil)
		s.RecordReading(rated, testutil.AliceEmail, rating.Of(1))

		assert.Same(t, rated, s.HighestRatedBook())
	})

	t.Run("tie goes to the first tracked", func(t *testing.T) {
		s, _ := newService(t)
		s.AddReader("Alice", testutil.AliceEmail)
		first, second, lower := testutil.Dune(), testutil.SnowCrash(), testutil.SocietyOfMind()
		s.RecordReading(lower, testutil.AliceEmail, rating.Of(2))
		s.RecordReading(first, testutil.AliceEmail, rating.Of(3))
		s.RecordReading(second, testutil.AliceEmail, rating.Of(3))

		assert.Same(t, first, s.HighestRatedBook())
	})
}

func TestService_MostPositiveReader(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s, _ := newService(t)
		assert.Nil(t, s.MostPositiveReader())
	})

	t.Run("readers without ratings are skipped", func(t *testing.T) {
		s, _ := newService(t)
		s.AddReader("Alice", testutil.AliceEmail, testutil.Dune())
		bob := s.AddReader("Bob", testutil.BobEmail)
		s.RecordReading(testutil.SnowCrash(), testutil.BobEmail, rating.Of(1))

		assert.Same(t, bob, s.MostPositiveReader())
	})

	t.Run("tie goes to the first registered", func(t *testing.T) {
		s, _ := newService(t)
		alice := s.AddReader("Alice", testutil.AliceEmail)
		s.AddReader("Bob", testutil.BobEmail)
		s.RecordReading(testutil.SnowCrash(), testutil.AliceEmail, rating.Of(3))
		s.RecordReading(testutil.Dune(), testutil.BobEmail, rating.Of(3))

		assert.Same(t, alice, s.MostPositiveReader())
	})

	t.Run("zero average is never selected", func(t *testing.T) {
		s, _ := newService(t)
		s.AddReader("Alice", testutil.AliceEmail)
		s.RecordReading(testutil.SnowCrash(), testutil.AliceEmail, rating.Of(0))

		assert.Nil(t, s.MostPositiveReader())
	})
}

func TestService_Print(t *testing.T) {
	s, _ := newService(t)
	s.AddReader("Alice", testutil.AliceEmail, testutil.Shelf()...)
	s.AddReader("Bob", testutil.BobEmail)

	var catalogOut, readersOut bytes.Buffer
	require.NoError(t, s.PrintCatalog(&catalogOut))
	require.NoError(t, s.PrintReaders(&readersOut))

	wantCatalog := "Snow Crash with ISBN: 0553380958\n" +
		"Dune by Frank Herbert\n" +
		"Society of Mind, a beginner manual on AI\n"
	wantReaders := "User Alice, email: alice@example.com, books read: 3\n" +
		"User Bob, email: bob@example.org, books read: 0\n"

	if diff := cmp.Diff(wantCatalog, catalogOut.String()); diff != "" {
		t.Errorf("PrintCatalog mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantReaders, readersOut.String()); diff != "" {
		t.Errorf("PrintReaders mismatch (-want +got):\n%s", diff)
	}
}

func TestService_DefaultNotifierDiscards(t *testing.T) {
	s := New()
	assert.NotPanics(t, func() {
		s.AddReader("Bob", "bob@nodomain")
		s.RecordReading(testutil.SnowCrash(), "ghost@example.com", nil)
	})
}

func TestService_ISBNInUse(t *testing.T) {
	s, _ := newService(t)
	b := s.CreateBook("Snow Crash", "0553380958")
	assert.False(t, s.ISBNInUse("0553380958"), "created but untracked")

	s.AddReader("Alice", testutil.AliceEmail, b)
	assert.True(t, s.ISBNInUse("0553380958"))

	b.ChangeISBN("9780553380958", s.Notifier())
	assert.False(t, s.ISBNInUse("0553380958"))
	assert.NotNil(t, s.CreateBook("Reissue", "0553380958"))
}

func TestService_RecordReading_RatingNotAliased(t *testing.T) {
	s, _ := newService(t)
	s.AddReader("Alice", testutil.AliceEmail)
	b := testutil.SnowCrash()

	stars := 3
	require.True(t, s.RecordReading(b, testutil.AliceEmail, &stars))
	stars = 0

	alice, _ := s.Reader(testutil.AliceEmail)
	avg, ok := alice.AverageRating()
	require.True(t, ok)
	assert.Equal(t, 3.0, avg)
	bookAvg, _ := b.AverageRating()
	assert.Equal(t, bookAvg, avg)
	assert.Same(t, alice, s.MostPositiveReader())
}

func TestService_RefusedBookIsIgnored(t *testing.T) {
	s, rec := newService(t)
	s.AddReader("Alice", testutil.AliceEmail, s.CreateBook("Snow Crash", "1"))
	rec.Reset()

	dup := s.CreateBook("Dup", "1")
	require.Nil(t, dup)

	carol := s.AddReader("Carol", testutil.CarolEmail, dup)
	require.NotNil(t, carol)
	assert.Zero(t, carol.CountRead())

	assert.False(t, s.RecordReading(nil, testutil.AliceEmail, rating.Of(4)))
	assert.Len(t, s.Books(), 1)
	assert.Equal(t, []notice.Kind{notice.KindDuplicateISBN}, rec.Kinds())
}
