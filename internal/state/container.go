package state

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/store"
)

// Snapshot is a point-in-time copy of the application state
type Snapshot struct {
	Session   domain.Session
	Borrowed  []domain.BorrowedBook
	Purchased []domain.Ebook
	Catalog   []domain.Ebook
	Visible   []domain.Ebook // Catalog minus Purchased

	// Seq increases with every change. Observers may receive snapshots
	// out of order and should drop any with a lower Seq than one already seen.
	Seq uint64
}

// Option configures a Container
type Option func(*Container)

// WithLogger sets the container's logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used for loan due dates
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// Container owns the session and the borrowed, purchased and catalog
// collections. Every mutation is written through the bridge before the
// in-memory copy is replaced. All methods are safe for concurrent use.
type Container struct {
	bridge *store.Bridge
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	session   domain.Session
	borrowed  []domain.BorrowedBook
	purchased []domain.Ebook
	catalog   []domain.Ebook
	seq       uint64

	obsMu     sync.Mutex
	observers map[int]func(Snapshot)
	nextObs   int
}

// New creates a container and hydrates it from the bridge
func New(bridge *store.Bridge, opts ...Option) *Container {
	c := &Container{
		bridge:    bridge,
		logger:    slog.Default(),
		now:       time.Now,
		observers: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	c.session, c.borrowed, c.purchased, c.catalog = c.read()
	c.mu.Unlock()

	c.logger.Debug("state hydrated",
		"loggedIn", c.session.IsLoggedIn,
		"borrowed", len(c.borrowed),
		"purchased", len(c.purchased),
		"catalog", len(c.catalog))
	return c
}

// read loads every persisted value, applying fallbacks
func (c *Container) read() (domain.Session, []domain.BorrowedBook, []domain.Ebook, []domain.Ebook) {
	session := domain.Session{
		IsLoggedIn:      c.bridge.ReadBool(KeyIsLoggedIn, false),
		CurrentUserName: c.bridge.ReadString(KeyCurrentUser, ""),
	}
	borrowed := uniqueByID(store.ReadList(c.bridge, KeyBorrowedBooks, SeedBorrowedBooks()))
	purchased := uniqueByID(store.ReadList(c.bridge, KeyPurchasedBooks, []domain.Ebook{}))
	catalog := uniqueByID(store.ReadList(c.bridge, KeyEbookCatalog, SeedCatalog()))
	return session, borrowed, purchased, catalog
}

// Rehydrate re-reads all state from the bridge and notifies observers if
// anything differs from the in-memory copy.
func (c *Container) Rehydrate() {
	c.update(func() bool {
		session, borrowed, purchased, catalog := c.read()
		changed := session != c.session ||
			!slices.Equal(borrowed, c.borrowed) ||
			!slices.Equal(purchased, c.purchased) ||
			!slices.Equal(catalog, c.catalog)
		if changed {
			c.session, c.borrowed, c.purchased, c.catalog = session, borrowed, purchased, catalog
			c.logger.Debug("state rehydrated", "borrowed", len(borrowed), "purchased", len(purchased))
		}
		return changed
	})
}

// SyncExternalChanges rehydrates whenever the bridge reports a change made
// outside this process. The returned function stops syncing.
func (c *Container) SyncExternalChanges() (stop func()) {
	return c.bridge.OnExternalChange(c.Rehydrate)
}

// Subscribe registers fn to receive a snapshot after every change.
// fn is called outside the container lock.
func (c *Container) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.obsMu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	c.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.obsMu.Lock()
			delete(c.observers, id)
			c.obsMu.Unlock()
		})
	}
}

// update runs fn under the lock; when fn reports a change, observers get
// the resulting snapshot.
func (c *Container) update(fn func() bool) {
	c.mu.Lock()
	changed := fn()
	var snap Snapshot
	if changed {
		c.seq++
		snap = c.snapshotLocked()
	}
	c.mu.Unlock()

	if !changed {
		return
	}

	c.obsMu.Lock()
	observers := make([]func(Snapshot), 0, len(c.observers))
	for _, obs := range c.observers {
		observers = append(observers, obs)
	}
	c.obsMu.Unlock()

	for _, obs := range observers {
		obs(snap)
	}
}

func (c *Container) snapshotLocked() Snapshot {
	return Snapshot{
		Session:   c.session,
		Borrowed:  slices.Clone(c.borrowed),
		Purchased: slices.Clone(c.purchased),
		Catalog:   slices.Clone(c.catalog),
		Visible:   visibleCatalog(c.catalog, c.purchased),
		Seq:       c.seq,
	}
}

// Login starts a session for name
func (c *Container) Login(name string) (domain.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.Session(), domain.ErrEmptyUserName
	}

	var out domain.Session
	c.update(func() bool {
		next := domain.Session{IsLoggedIn: true, CurrentUserName: name}
		c.bridge.WriteFlag(KeyIsLoggedIn, true)
		c.bridge.WriteString(KeyCurrentUser, name)
		changed := next != c.session
		c.session = next
		out = next
		return changed
	})
	c.logger.Info("logged in", "user", name)
	return out, nil
}

// Logout resets the session and removes its persisted keys
func (c *Container) Logout() domain.Session {
	c.update(func() bool {
		c.bridge.Remove(KeyIsLoggedIn)
		c.bridge.Remove(KeyCurrentUser)
		changed := c.session != domain.DefaultSession()
		c.session = domain.DefaultSession()
		return changed
	})
	c.logger.Info("logged out")
	return domain.DefaultSession()
}

// RequireSession returns domain.ErrLoginRequired when nobody is logged in
func (c *Container) RequireSession() error {
	if !c.Session().IsLoggedIn {
		return domain.ErrLoginRequired
	}
	return nil
}

// AddBorrowedBook appends b unless a loan with the same ID exists
func (c *Container) AddBorrowedBook(b domain.BorrowedBook) []domain.BorrowedBook {
	var out []domain.BorrowedBook
	c.update(func() bool {
		if indexByID(c.borrowed, b.ID) >= 0 {
			out = slices.Clone(c.borrowed)
			return false
		}
		next := append(slices.Clone(c.borrowed), b)
		c.bridge.WriteList(KeyBorrowedBooks, next)
		c.borrowed = next
		out = slices.Clone(next)
		return true
	})
	return out
}

// ReturnBorrowedBook removes the loan with the given ID
func (c *Container) ReturnBorrowedBook(id string) []domain.BorrowedBook {
	var out []domain.BorrowedBook
	c.update(func() bool {
		next, removed := removeByID(c.borrowed, id)
		if removed {
			c.bridge.WriteList(KeyBorrowedBooks, next)
			c.borrowed = next
		}
		out = slices.Clone(c.borrowed)
		return removed
	})
	return out
}

// RenewBorrowedBook pushes the due date of the loan forward by days.
// A loan whose due date does not parse is left unchanged.
func (c *Container) RenewBorrowedBook(id string, days int) []domain.BorrowedBook {
	var out []domain.BorrowedBook
	c.update(func() bool {
		i := indexByID(c.borrowed, id)
		if i < 0 {
			out = slices.Clone(c.borrowed)
			return false
		}
		due, ok := shiftDue(c.borrowed[i].Due, days)
		if !ok {
			c.logger.Debug("due date does not parse, renewal skipped", "id", id, "due", c.borrowed[i].Due)
		}
		if !ok || due == c.borrowed[i].Due {
			out = slices.Clone(c.borrowed)
			return false
		}
		next := slices.Clone(c.borrowed)
		next[i].Due = due
		c.bridge.WriteList(KeyBorrowedBooks, next)
		c.borrowed = next
		out = slices.Clone(next)
		return true
	})
	return out
}

// BorrowWork borrows a fetched work for loanDays
func (c *Container) BorrowWork(w domain.Work, loanDays int) []domain.BorrowedBook {
	return c.AddBorrowedBook(BorrowedFromWork(w, dueIn(c.now(), loanDays)))
}

// DueIn returns the due date of a loan starting today for days
func (c *Container) DueIn(days int) string {
	return dueIn(c.now(), days)
}

// AddPurchasedBook buys e. It fails with domain.ErrPurchaseRejected when e
// is not offered in the catalog. Buying an owned ebook is a no-op.
func (c *Container) AddPurchasedBook(e domain.Ebook) ([]domain.Ebook, error) {
	var out []domain.Ebook
	var err error
	c.update(func() bool {
		out = slices.Clone(c.purchased)
		if indexByID(c.catalog, e.ID) < 0 {
			err = fmt.Errorf("%w: %s", domain.ErrPurchaseRejected, e.ID)
			return false
		}
		if indexByID(c.purchased, e.ID) >= 0 {
			return false
		}
		next := append(slices.Clone(c.purchased), e)
		c.bridge.WriteList(KeyPurchasedBooks, next)
		c.purchased = next
		out = slices.Clone(next)
		return true
	})
	if err != nil {
		c.logger.Info("purchase rejected", "id", e.ID)
	}
	return out, err
}

// RemovePurchasedBook removes the purchased ebook with the given ID
func (c *Container) RemovePurchasedBook(id string) []domain.Ebook {
	var out []domain.Ebook
	c.update(func() bool {
		next, removed := removeByID(c.purchased, id)
		if removed {
			c.bridge.WriteList(KeyPurchasedBooks, next)
			c.purchased = next
		}
		out = slices.Clone(c.purchased)
		return removed
	})
	return out
}

// RemoveCatalogEbook withdraws the ebook with the given ID from the catalog
func (c *Container) RemoveCatalogEbook(id string) []domain.Ebook {
	var out []domain.Ebook
	c.update(func() bool {
		next, removed := removeByID(c.catalog, id)
		if removed {
			c.bridge.WriteList(KeyEbookCatalog, next)
			c.catalog = next
		}
		out = slices.Clone(c.catalog)
		return removed
	})
	return out
}

// Session returns the current session
func (c *Container) Session() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// BorrowedBooks returns a copy of the loans
func (c *Container) BorrowedBooks() []domain.BorrowedBook {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.borrowed)
}

// PurchasedBooks returns a copy of the purchased ebooks
func (c *Container) PurchasedBooks() []domain.Ebook {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.purchased)
}

// CatalogEbooks returns a copy of the full catalog, purchased ebooks included
func (c *Container) CatalogEbooks() []domain.Ebook {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.catalog)
}

// VisibleCatalog returns the catalog ebooks not yet purchased
func (c *Container) VisibleCatalog() []domain.Ebook {
	c.mu.Lock()
	defer c.mu.Unlock()
	return visibleCatalog(c.catalog, c.purchased)
}

// Snapshot returns a copy of the whole state
func (c *Container) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// IsBorrowed reports whether a loan with id exists
func (c *Container) IsBorrowed(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return indexByID(c.borrowed, id) >= 0
}

// IsPurchased reports whether the ebook with id has been bought
func (c *Container) IsPurchased(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return indexByID(c.purchased, id) >= 0
}

// InCatalog reports whether the ebook with id is offered in the catalog
func (c *Container) InCatalog(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return indexByID(c.catalog, id) >= 0
}
