package state

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestContainer(t *testing.T) (*Container, *store.Bridge, *store.MemoryStore) {
	t.Helper()
	kv := store.NewMemoryStore()
	bridge := store.NewBridge(kv, quietLogger())
	clock := func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return New(bridge, WithLogger(quietLogger()), WithClock(clock)), bridge, kv
}

func ids[T domain.ListItem](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.GetID())
	}
	return out
}

func TestNew_SeedsFreshStore(t *testing.T) {
	c, _, _ := newTestContainer(t)

	assert.Equal(t, domain.DefaultSession(), c.Session())
	assert.Equal(t, SeedBorrowedBooks(), c.BorrowedBooks())
	assert.Empty(t, c.PurchasedBooks())
	assert.Equal(t, SeedCatalog(), c.CatalogEbooks())
	assert.Equal(t, SeedCatalog(), c.VisibleCatalog())
}

func TestNew_CorruptListsFallBack(t *testing.T) {
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Put(KeyBorrowedBooks, []byte(`{"id":"bk-9"}`)))
	require.NoError(t, kv.Put(KeyPurchasedBooks, []byte(`not json`)))
	require.NoError(t, kv.Put(KeyEbookCatalog, []byte(`42`)))

	c := New(store.NewBridge(kv, quietLogger()), WithLogger(quietLogger()))

	assert.Equal(t, SeedBorrowedBooks(), c.BorrowedBooks())
	assert.Equal(t, []domain.Ebook{}, c.PurchasedBooks())
	assert.Equal(t, SeedCatalog(), c.CatalogEbooks())
}

func TestNew_DropsDuplicateIDs(t *testing.T) {
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Put(KeyBorrowedBooks, []byte(`[{"id":"a","title":"One"},{"id":"a","title":"Two"},{"id":"b"}]`)))

	c := New(store.NewBridge(kv, quietLogger()), WithLogger(quietLogger()))

	books := c.BorrowedBooks()
	assert.Equal(t, []string{"a", "b"}, ids(books))
	assert.Equal(t, "One", books[0].Title)
}

func TestHydrate_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		books []domain.BorrowedBook
	}{
		{"empty", []domain.BorrowedBook{}},
		{"single", []domain.BorrowedBook{{ID: "x", Title: "X", Author: "A", Due: "2026-01-01"}}},
		{"many", SeedBorrowedBooks()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := store.NewMemoryStore()
			bridge := store.NewBridge(kv, quietLogger())
			c := New(bridge, WithLogger(quietLogger()))

			for _, b := range c.BorrowedBooks() {
				c.ReturnBorrowedBook(b.ID)
			}
			for _, b := range tt.books {
				c.AddBorrowedBook(b)
			}

			fresh := New(bridge, WithLogger(quietLogger()))
			assert.Equal(t, tt.books, fresh.BorrowedBooks())
		})
	}
}

func TestLoginLogout(t *testing.T) {
	c, _, kv := newTestContainer(t)

	session, err := c.Login("Emma Parker")
	require.NoError(t, err)
	assert.Equal(t, domain.Session{IsLoggedIn: true, CurrentUserName: "Emma Parker"}, session)

	v, ok, _ := kv.Get(KeyIsLoggedIn)
	require.True(t, ok)
	assert.Equal(t, "true", string(v))
	v, ok, _ = kv.Get(KeyCurrentUser)
	require.True(t, ok)
	assert.Equal(t, "Emma Parker", string(v))

	session = c.Logout()
	assert.Equal(t, domain.DefaultSession(), session)
	assert.Equal(t, domain.DefaultSession(), c.Session())

	_, ok, _ = kv.Get(KeyIsLoggedIn)
	assert.False(t, ok)
	_, ok, _ = kv.Get(KeyCurrentUser)
	assert.False(t, ok)
}

func TestLogin_EmptyName(t *testing.T) {
	c, _, kv := newTestContainer(t)

	_, err := c.Login("   ")
	assert.ErrorIs(t, err, domain.ErrEmptyUserName)
	assert.False(t, c.Session().IsLoggedIn)

	_, ok, _ := kv.Get(KeyIsLoggedIn)
	assert.False(t, ok)
}

func TestRequireSession(t *testing.T) {
	c, _, _ := newTestContainer(t)
	assert.ErrorIs(t, c.RequireSession(), domain.ErrLoginRequired)

	_, err := c.Login("James Carter")
	require.NoError(t, err)
	assert.NoError(t, c.RequireSession())
}

func TestBorrowedBooks_AddReturnSequences(t *testing.T) {
	c, _, _ := newTestContainer(t)
	for _, b := range SeedBorrowedBooks() {
		c.ReturnBorrowedBook(b.ID)
	}

	book := func(id string) domain.BorrowedBook { return domain.BorrowedBook{ID: id, Title: id} }

	c.AddBorrowedBook(book("a"))
	c.AddBorrowedBook(book("b"))
	c.AddBorrowedBook(book("a"))
	c.ReturnBorrowedBook("c")
	c.AddBorrowedBook(book("c"))
	c.ReturnBorrowedBook("a")
	c.ReturnBorrowedBook("a")
	c.AddBorrowedBook(book("d"))
	got := c.AddBorrowedBook(book("a"))

	assert.Equal(t, []string{"b", "c", "d", "a"}, ids(got))
	assert.Equal(t, got, c.BorrowedBooks())
}

func TestAddBorrowedBook_Idempotent(t *testing.T) {
	c, _, _ := newTestContainer(t)
	b := domain.BorrowedBook{ID: "bk-9", Title: "Dracula", Author: "Bram Stoker", Due: "2026-03-15"}

	once := c.AddBorrowedBook(b)
	twice := c.AddBorrowedBook(b)
	assert.Equal(t, once, twice)
	assert.Len(t, twice, len(SeedBorrowedBooks())+1)
}

func TestRenewBorrowedBook(t *testing.T) {
	c, _, _ := newTestContainer(t)

	books := c.RenewBorrowedBook("bk-1", DefaultRenewalDays)
	assert.Equal(t, "2026-02-19", books[0].Due)

	books = c.RenewBorrowedBook("bk-3", 3)
	assert.Equal(t, "2026-03-03", books[2].Due, "crosses the month end")

	// Persisted through the bridge
	assert.Equal(t, "2026-02-19", c.BorrowedBooks()[0].Due)
}

func TestRenewBorrowedBook_RFC3339(t *testing.T) {
	c, _, _ := newTestContainer(t)
	c.AddBorrowedBook(domain.BorrowedBook{ID: "x", Due: "2026-02-12T00:00:00Z"})

	books := c.RenewBorrowedBook("x", 7)
	assert.Equal(t, "2026-02-19", books[len(books)-1].Due)
}

func TestRenewBorrowedBook_UnparseableDue(t *testing.T) {
	c, _, _ := newTestContainer(t)
	bad := domain.BorrowedBook{ID: "x", Title: "T", Author: "A", Due: "someday"}
	c.AddBorrowedBook(bad)

	var notified int
	c.Subscribe(func(Snapshot) { notified++ })

	books := c.RenewBorrowedBook("x", 7)
	assert.Equal(t, bad, books[len(books)-1])
	assert.Zero(t, notified)
}

func TestAddPurchasedBook_Rejected(t *testing.T) {
	c, _, _ := newTestContainer(t)
	before := c.PurchasedBooks()

	got, err := c.AddPurchasedBook(domain.Ebook{ID: "eb-404", Title: "Nope"})
	assert.ErrorIs(t, err, domain.ErrPurchaseRejected)
	assert.Equal(t, before, got)
	assert.Equal(t, before, c.PurchasedBooks())
}

func TestAddPurchasedBook_Workflow(t *testing.T) {
	c, _, _ := newTestContainer(t)
	catalog := SeedCatalog()

	got, err := c.AddPurchasedBook(catalog[1])
	require.NoError(t, err)
	assert.Equal(t, []domain.Ebook{catalog[1]}, got)

	got, err = c.AddPurchasedBook(catalog[1])
	require.NoError(t, err)
	assert.Len(t, got, 1, "buying twice is a no-op")

	assert.True(t, c.IsPurchased("eb-2"))
	assert.Equal(t, []string{"eb-1", "eb-3"}, ids(c.VisibleCatalog()))
	assert.Len(t, c.CatalogEbooks(), 3, "purchase does not delete from the catalog")

	c.RemovePurchasedBook("eb-2")
	assert.False(t, c.IsPurchased("eb-2"))
	assert.Equal(t, []string{"eb-1", "eb-2", "eb-3"}, ids(c.VisibleCatalog()))
}

func TestRemoveCatalogEbook(t *testing.T) {
	c, _, _ := newTestContainer(t)

	got := c.RemoveCatalogEbook("eb-1")
	assert.Equal(t, []string{"eb-2", "eb-3"}, ids(got))
	assert.Equal(t, got, c.RemoveCatalogEbook("eb-1"))

	_, err := c.AddPurchasedBook(SeedCatalog()[0])
	assert.ErrorIs(t, err, domain.ErrPurchaseRejected)
}

func TestBorrowWork(t *testing.T) {
	c, _, _ := newTestContainer(t)
	work := domain.Work{Key: "/works/OL1W", Title: "Emma", Authors: []string{"Jane Austen"}}

	books := c.BorrowWork(work, 14)
	last := books[len(books)-1]
	assert.Equal(t, domain.BorrowedBook{ID: "/works/OL1W", Title: "Emma", Author: "Jane Austen", Due: "2026-03-15"}, last)
	assert.True(t, c.IsBorrowed("/works/OL1W"))

	assert.Equal(t, domain.UnknownAuthor, BorrowedFromWork(domain.Work{Key: "k"}, "").Author)
	assert.Equal(t, "A, B", EbookFromWork(domain.Work{Authors: []string{"A", "B"}}).Author)
}

func TestSubscribe_NotifiesOnChangeOnly(t *testing.T) {
	c, _, _ := newTestContainer(t)

	var snaps []Snapshot
	unsubscribe := c.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	c.ReturnBorrowedBook("bk-1")
	c.ReturnBorrowedBook("bk-1")
	c.RemovePurchasedBook("eb-1")
	require.Len(t, snaps, 1)
	assert.Equal(t, []string{"bk-2", "bk-3"}, ids(snaps[0].Borrowed))

	unsubscribe()
	c.ReturnBorrowedBook("bk-2")
	assert.Len(t, snaps, 1)
}

func TestSnapshot_SeqOrdersChanges(t *testing.T) {
	c, _, _ := newTestContainer(t)

	var seqs []uint64
	c.Subscribe(func(s Snapshot) { seqs = append(seqs, s.Seq) })

	start := c.Snapshot().Seq
	c.ReturnBorrowedBook("bk-1")
	c.ReturnBorrowedBook("bk-1")
	_, err := c.Login("Emma Parker")
	require.NoError(t, err)
	c.Rehydrate()

	assert.Equal(t, []uint64{start + 1, start + 2}, seqs, "no-ops do not advance the sequence")
	assert.Equal(t, start+2, c.Snapshot().Seq)
}

func TestRehydrate_ConvergesWithOtherInstance(t *testing.T) {
	kv := store.NewMemoryStore()
	first := New(store.NewBridge(kv, quietLogger()), WithLogger(quietLogger()))
	secondBridge := store.NewBridge(kv, quietLogger())
	second := New(secondBridge, WithLogger(quietLogger()))

	var seen Snapshot
	second.Subscribe(func(s Snapshot) { seen = s })
	stop := second.SyncExternalChanges()
	defer stop()

	_, err := first.Login("Emma Parker")
	require.NoError(t, err)
	_, err = first.AddPurchasedBook(SeedCatalog()[0])
	require.NoError(t, err)

	// Stale until notified
	assert.False(t, second.Session().IsLoggedIn)

	secondBridge.NotifyExternalChange()
	assert.Equal(t, "Emma Parker", second.Session().CurrentUserName)
	assert.True(t, second.IsPurchased("eb-1"))
	assert.Equal(t, []string{"eb-2", "eb-3"}, ids(seen.Visible))
}

func TestRehydrate_NoChangeNoNotify(t *testing.T) {
	c, _, _ := newTestContainer(t)

	var notified int
	c.Subscribe(func(Snapshot) { notified++ })
	c.Rehydrate()
	c.Rehydrate()
	assert.Zero(t, notified)
}

func TestWriteFailuresKeepMemoryAuthoritative(t *testing.T) {
	c, _, kv := newTestContainer(t)
	require.NoError(t, kv.Close())

	books := c.ReturnBorrowedBook("bk-1")
	assert.Equal(t, []string{"bk-2", "bk-3"}, ids(books))

	session, err := c.Login("Emma Parker")
	require.NoError(t, err)
	assert.True(t, session.IsLoggedIn)
}
