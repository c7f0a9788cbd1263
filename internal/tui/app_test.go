package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/stacks/internal/auth"
	"github.com/mmcdole/stacks/internal/catalog"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/state"
	"github.com/mmcdole/stacks/internal/store"
)

type fakeRepo struct {
	works []domain.Work
	err   error
}

func (f *fakeRepo) FetchSubject(context.Context, string, int) ([]domain.Work, error) {
	return f.works, f.err
}

func (f *fakeRepo) FetchURL(context.Context, string, int) ([]domain.Work, error) {
	return f.works, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testWorks = []domain.Work{
	{Key: "/works/OL1W", Title: "The Adventures of Sherlock Holmes", Authors: []string{"Arthur Conan Doyle"},
		EditionCount: 120, FirstPublishYear: 1892, CoverID: 5, Subjects: []string{"Detective"}},
	{Key: "/works/OL2W", Title: "Walden", Authors: []string{"Henry David Thoreau"},
		EditionCount: 40, FirstPublishYear: 1854, Subjects: []string{"Nature"}},
	{Key: "eb-3", Title: "Dracula", Authors: []string{"Bram Stoker"}, EditionCount: 90, FirstPublishYear: 1897},
}

type fixture struct {
	kv   *store.MemoryStore
	st   *state.Container
	repo *fakeRepo
	m    Model
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := store.NewMemoryStore()
	clock := func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	st := state.New(store.NewBridge(kv, quietLogger()), state.WithLogger(quietLogger()), state.WithClock(clock))

	dir, err := auth.NewDirectory(auth.DemoAccounts(), quietLogger())
	require.NoError(t, err)

	repo := &fakeRepo{works: testWorks}
	svc := catalog.NewService(repo, catalog.ServiceConfig{}, quietLogger())

	m := NewModel(st, dir, svc, Options{LoanDays: 14, RenewalDays: 7})
	t.Cleanup(m.Close)
	return &fixture{kv: kv, st: st, repo: repo, m: m}
}

func (f *fixture) send(msgs ...tea.Msg) {
	for _, msg := range msgs {
		next, _ := f.m.Update(msg)
		f.m = next.(Model)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
)

func (f *fixture) loadCatalog() {
	f.send(runes("2"))
	f.send(FetchCatalogCmd(f.m.Catalog, f.m.catalogGen)())
}

func titles[T domain.ListItem](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.GetTitle())
	}
	return out
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, PageCatalog, ParsePage("catalog"))
	assert.Equal(t, PageAbout, ParsePage(" About "))
	assert.Equal(t, PageLanding, ParsePage("shelf"))
	assert.Equal(t, "account", PageAccount.String())
}

func TestModel_PageSwitching(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, PageLanding, f.m.Page)

	f.send(tab)
	assert.Equal(t, PageCatalog, f.m.Page)
	assert.True(t, f.m.catalogLoading, "first visit fetches the catalog")

	f.send(runes("4"))
	assert.Equal(t, PageAbout, f.m.Page)

	f.send(shiftTab)
	assert.Equal(t, PageAccount, f.m.Page)
	assert.True(t, f.m.loginForm.Focused(), "logged out account page opens the login form")

	// Keys go to the form until it is left
	f.send(runes("1"))
	assert.Equal(t, PageAccount, f.m.Page)
	f.send(esc, runes("1"))
	assert.Equal(t, PageLanding, f.m.Page)
}

func TestModel_TrendingLoaded(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.m.isLoading())

	f.send(FetchTrendingCmd(f.m.Catalog, f.m.trendingGen)())
	assert.False(t, f.m.trendingLoading)
	assert.Equal(t, titles(testWorks), titles(f.m.trendingList.Items()))
	assert.Empty(t, f.m.StatusMsg)

	// Stale responses are dropped
	f.send(TrendingLoadedMsg{Gen: f.m.trendingGen - 1, Result: catalog.Result{Works: []domain.Work{}}})
	assert.Len(t, f.m.trendingList.Items(), len(testWorks))
}

func TestModel_FetchFailureShowsNotice(t *testing.T) {
	f := newFixture(t)
	f.repo.err = errors.New("offline")

	f.send(FetchTrendingCmd(f.m.Catalog, f.m.trendingGen)())
	assert.Empty(t, f.m.trendingList.Items())
	assert.Equal(t, catalog.NoticeTrendingFailed, f.m.StatusMsg)
	assert.True(t, f.m.StatusIsErr)

	f.loadCatalog()
	assert.Equal(t, catalog.NoticeCatalogFailed, f.m.StatusMsg)
	assert.Empty(t, f.m.workList.Items())
}

func TestModel_StatusClears(t *testing.T) {
	f := newFixture(t)
	f.m.setStatus("first", false)
	seq := f.m.statusSeq
	f.m.setStatus("second", false)

	f.send(ClearStatusMsg{Seq: seq})
	assert.Equal(t, "second", f.m.StatusMsg, "stale clear is ignored")

	f.send(ClearStatusMsg{Seq: f.m.statusSeq})
	assert.Empty(t, f.m.StatusMsg)
}

func TestModel_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  string
	}{
		{name: "demo user", email: "emma@demo.com", password: "Emma123!"},
		{name: "wrong password", email: "emma@demo.com", password: "nope", wantErr: "Invalid credentials. Try a demo user."},
		{name: "empty", wantErr: "Please enter your email and password."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.send(runes("3"))
			require.True(t, f.m.loginForm.Focused())

			if tt.email != "" {
				f.send(runes(tt.email))
			}
			f.send(enter)
			if tt.password != "" {
				f.send(runes(tt.password))
			}
			f.send(enter)

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, f.m.loginForm.Error())
				assert.False(t, f.st.Session().IsLoggedIn)
				return
			}
			assert.Empty(t, f.m.loginForm.Error())
			assert.Equal(t, domain.Session{IsLoggedIn: true, CurrentUserName: "Emma Parker"}, f.st.Session())
			assert.Equal(t, "Welcome back, Emma Parker", f.m.StatusMsg)
			assert.False(t, f.m.loginForm.Focused())
		})
	}
}

func TestModel_BorrowRequiresLogin(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog()
	f.send(runes("l"), runes("a"))

	assert.Equal(t, "You need to log in before adding books to borrowed books.", f.m.StatusMsg)
	assert.True(t, f.m.StatusIsErr)
	assert.False(t, f.st.IsBorrowed(testWorks[0].Key))

	_, err := f.st.Login("Emma Parker")
	require.NoError(t, err)
	f.m.applySnapshot(f.st.Snapshot())

	f.send(runes("a"))
	assert.True(t, f.st.IsBorrowed(testWorks[0].Key))
	assert.Equal(t, `Borrowed "The Adventures of Sherlock Holmes", due 2026-03-15`, f.m.StatusMsg)

	f.send(runes("a"))
	assert.Contains(t, f.m.StatusMsg, "already on your borrowed list")
	assert.Len(t, f.st.BorrowedBooks(), 4)
}

func TestModel_Buy(t *testing.T) {
	f := newFixture(t)
	_, err := f.st.Login("James Carter")
	require.NoError(t, err)
	f.m.applySnapshot(f.st.Snapshot())
	f.loadCatalog()

	// Fetched works are not for sale unless the catalog lists them
	f.send(runes("l"), runes("b"))
	assert.Equal(t, "That ebook is not for sale in our catalog.", f.m.StatusMsg)
	assert.Empty(t, f.st.PurchasedBooks())

	f.send(runes("h"), runes("b"))
	assert.Equal(t, []string{"eb-1"}, ids(f.st.PurchasedBooks()))
	assert.Equal(t, []string{"Moby-Dick", "Dracula"}, titles(f.m.ebookList.Items()), "owned ebooks leave the visible catalog")

	// Dracula is both a fetched work and a catalog ebook
	f.send(runes("l"), runes("j"), runes("j"), runes("b"))
	assert.Equal(t, []string{"eb-1", "eb-3"}, ids(f.st.PurchasedBooks()))
}

func TestModel_FilterAndCriteria(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog()
	assert.Equal(t, []string{"all", "Detective", "Nature"}, f.m.chips)

	f.send(runes("/"), runes("drac"))
	assert.True(t, f.m.filtering)
	assert.Equal(t, []string{"Dracula"}, titles(f.m.ebookList.Items()))
	assert.Equal(t, []string{"Dracula"}, titles(f.m.workList.Items()))

	f.send(esc)
	assert.False(t, f.m.filtering)
	assert.Len(t, f.m.ebookList.Items(), 3)
	assert.Len(t, f.m.workList.Items(), 3)

	f.send(runes("c"))
	assert.Equal(t, "Detective", f.m.criteria.Subject)
	assert.Equal(t, []string{"The Adventures of Sherlock Holmes"}, titles(f.m.workList.Items()))

	f.send(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Len(t, f.m.workList.Items(), 3)

	f.send(runes("s"), runes("s"))
	assert.Equal(t, []string{"Dracula", "The Adventures of Sherlock Holmes", "Walden"}, titles(f.m.workList.Items()))

	f.send(runes("O"))
	assert.Equal(t, []string{"The Adventures of Sherlock Holmes"}, titles(f.m.workList.Items()))
}

func TestModel_AccountActions(t *testing.T) {
	f := newFixture(t)
	_, err := f.st.Login("Emma Parker")
	require.NoError(t, err)
	f.m.applySnapshot(f.st.Snapshot())

	f.send(runes("3"))
	assert.False(t, f.m.loginForm.Focused())

	f.send(runes("n"))
	assert.Equal(t, "2026-02-19", f.st.BorrowedBooks()[0].Due)
	assert.Equal(t, `Renewed "The Picture of Dorian Gray" until 2026-02-19`, f.m.StatusMsg)

	f.send(runes("r"))
	assert.Equal(t, []string{"bk-2", "bk-3"}, ids(f.st.BorrowedBooks()))

	f.send(runes("L"))
	assert.False(t, f.st.Session().IsLoggedIn)
	assert.True(t, f.m.loginForm.Focused())
}

func TestModel_ConvergesWithOtherInstance(t *testing.T) {
	f := newFixture(t)
	other := state.New(store.NewBridge(f.kv, quietLogger()), state.WithLogger(quietLogger()))

	_, err := other.Login("James Carter")
	require.NoError(t, err)
	other.ReturnBorrowedBook("bk-1")

	f.send(tea.FocusMsg{})
	select {
	case s := <-f.m.observer.Snapshots():
		f.send(SnapshotMsg{Snapshot: s})
	default:
		t.Fatal("rehydrate did not publish a snapshot")
	}

	assert.Equal(t, "James Carter", f.m.snapshot.Session.CurrentUserName)
	assert.Equal(t, []string{"bk-2", "bk-3"}, ids(f.m.borrowedList.Items()))
	assert.Equal(t, "James Carter's borrowed books", f.m.borrowedList.Title())
}

func TestModel_IgnoresStaleSnapshot(t *testing.T) {
	f := newFixture(t)
	stale := f.st.Snapshot()

	f.st.ReturnBorrowedBook("bk-2")
	f.send(SnapshotMsg{Snapshot: f.st.Snapshot()})
	f.send(SnapshotMsg{Snapshot: stale})

	assert.NotContains(t, titles(f.m.borrowedList.Items()), "Frankenstein")
	assert.Equal(t, f.st.Snapshot().Seq, f.m.snapshot.Seq)
}

func TestModel_View(t *testing.T) {
	f := newFixture(t)
	f.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	f.send(FetchTrendingCmd(f.m.Catalog, f.m.trendingGen)())

	view := f.m.View()
	assert.Contains(t, view, "Trending now")
	assert.Contains(t, view, "Walden")
	assert.Contains(t, view, "not signed in")

	f.send(runes("?"))
	assert.Contains(t, f.m.View(), "CATALOG FILTERS")
	f.send(runes("x"))
	assert.False(t, f.m.ShowHelp)

	f.send(runes("4"))
	assert.True(t, strings.Contains(f.m.View(), "Open Library"))
}

func ids[T domain.ListItem](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.GetID())
	}
	return out
}
