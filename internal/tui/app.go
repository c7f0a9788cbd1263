package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/stacks/internal/auth"
	"github.com/mmcdole/stacks/internal/catalog"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/search"
	"github.com/mmcdole/stacks/internal/state"
	"github.com/mmcdole/stacks/internal/tui/components"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// Page is a top-level screen
type Page int

const (
	PageLanding Page = iota
	PageCatalog
	PageAccount
	PageAbout
	pageCount
)

var pageNames = [pageCount]string{"landing", "catalog", "account", "about"}
var pageTitles = [pageCount]string{"Home", "Catalog", "Account", "About"}

func (p Page) String() string { return pageNames[p] }

// Title returns the tab label
func (p Page) Title() string { return pageTitles[p] }

// ParsePage maps a config value to a Page, defaulting to PageLanding
func ParsePage(s string) Page {
	for i, name := range pageNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Page(i)
		}
	}
	return PageLanding
}

// Pane selects which list on a page receives cursor keys
type Pane int

const (
	PaneLeft Pane = iota
	PaneRight
)

// Layout constants
const (
	ChromeHeight      = 3 // tab bar, blank line, footer
	FilterBarHeight   = 2
	HeroHeight        = 5
	SpinnerInterval   = 100 * time.Millisecond
	DefaultStatusTime = 4 * time.Second
)

// Options configures the Model
type Options struct {
	LoanDays    int
	RenewalDays int
	DefaultPage Page
	StatusDelay time.Duration // How long notices stay in the status bar
}

// Model is the root bubbletea model
type Model struct {
	// Services
	State   *state.Container
	Auth    *auth.Directory
	Catalog *catalog.Service
	Keys    KeyMap
	opts    Options

	// Dimensions
	Width  int
	Height int
	Ready  bool

	Page     Page
	ShowHelp bool

	snapshot    state.Snapshot
	observer    *ChannelObserver
	unsubscribe func()

	// Landing
	trendingList    components.List[domain.Work]
	trendingLoading bool
	trendingGen     int

	// Catalog
	works          []domain.Work
	catalogLoading bool
	catalogFetched bool
	catalogNotice  string
	catalogGen     int
	criteria       search.Criteria
	chips          []string
	chipIdx        int
	filterInput    textinput.Model
	filtering      bool
	ebookList      components.List[domain.Ebook]
	workList       components.List[domain.Work]
	catalogPane    Pane
	Inspector      components.Inspector

	// Account
	loginForm     components.LoginForm
	borrowedList  components.List[domain.BorrowedBook]
	purchasedList components.List[domain.Ebook]
	accountPane   Pane

	// Status bar
	StatusMsg    string
	StatusIsErr  bool
	statusSeq    int
	SpinnerFrame int
	ticking      bool
}

// NewModel creates a new application model subscribed to the container.
// Call Close when the program exits.
func NewModel(st *state.Container, dir *auth.Directory, svc *catalog.Service, opts Options) Model {
	if opts.StatusDelay <= 0 {
		opts.StatusDelay = DefaultStatusTime
	}
	if opts.LoanDays <= 0 {
		opts.LoanDays = 14
	}
	if opts.RenewalDays <= 0 {
		opts.RenewalDays = state.DefaultRenewalDays
	}

	fi := textinput.New()
	fi.Placeholder = "title or author"
	fi.CharLimit = 100
	fi.Width = 40
	fi.Prompt = "/ "
	fi.PromptStyle = styles.AccentStyle
	fi.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	fi.PlaceholderStyle = styles.DimStyle

	m := Model{
		State:         st,
		Auth:          dir,
		Catalog:       svc,
		Keys:          DefaultKeyMap(),
		opts:          opts,
		Page:          opts.DefaultPage,
		observer:      NewChannelObserver(1),
		trendingList:  components.NewList[domain.Work]("Trending now", catalog.NoticeCatalogFailed),
		ebookList:     components.NewList[domain.Ebook]("Ebooks for sale", "No ebooks available."),
		workList:      components.NewList[domain.Work]("Open Library", "No books match these filters."),
		borrowedList:  components.NewList[domain.BorrowedBook]("Borrowed books", "Nothing borrowed yet."),
		purchasedList: components.NewList[domain.Ebook]("Ebooks", "No ebooks purchased yet."),
		filterInput:   fi,
		Inspector:     components.NewInspector(),
		loginForm:     components.NewLoginForm(),
		chips:         []string{search.AllSubjects},
		criteria:      search.Criteria{Sort: search.SortRelevant},
	}

	var emails []string
	for _, u := range dir.Users() {
		emails = append(emails, u.Email)
	}
	m.loginForm.SetDemoUsers(emails)

	m.unsubscribe = st.Subscribe(m.observer.OnSnapshot)
	m.trendingGen = 1
	m.trendingLoading = true
	m.trendingList.SetLoading(true)
	if m.Page == PageCatalog {
		m.catalogGen = 1
		m.catalogLoading = true
		m.workList.SetLoading(true)
	}
	if m.Page == PageAccount && !st.Session().IsLoggedIn {
		m.loginForm.Focus()
	}
	m.ticking = true

	m.applySnapshot(st.Snapshot())
	m.focusPanes()
	return m
}

// Close stops listening for container changes
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		FetchTrendingCmd(m.Catalog, m.trendingGen),
		WaitForSnapshotCmd(m.observer.Snapshots()),
		TickCmd(SpinnerInterval),
	}
	if m.catalogLoading {
		cmds = append(cmds, FetchCatalogCmd(m.Catalog, m.catalogGen))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.FocusMsg:
		// Another instance may have changed the store meanwhile
		m.State.Rehydrate()
		return m, nil

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)
		return m, WaitForSnapshotCmd(m.observer.Snapshots())

	case TrendingLoadedMsg:
		if msg.Gen != m.trendingGen {
			return m, nil
		}
		m.trendingLoading = false
		m.trendingList.SetItems(msg.Result.Works)
		if msg.Result.Failed() {
			cmd := m.setStatus(msg.Result.Notice, true)
			return m, cmd
		}
		return m, nil

	case CatalogLoadedMsg:
		if msg.Gen != m.catalogGen {
			return m, nil
		}
		m.catalogLoading = false
		m.catalogFetched = true
		m.works = msg.Result.Works
		m.catalogNotice = msg.Result.Notice
		m.chips = search.SubjectChips(m.works)
		m.chipIdx = 0
		m.criteria.Subject = ""
		m.refreshCatalog()
		if msg.Result.Failed() {
			cmd := m.setStatus(msg.Result.Notice, true)
			return m, cmd
		}
		return m, nil

	case TickMsg:
		if !m.isLoading() {
			m.ticking = false
			return m, nil
		}
		m.SpinnerFrame++
		return m, TickCmd(SpinnerInterval)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	if m.Page == PageAccount && m.loginForm.Focused() {
		var cmd tea.Cmd
		var submitted bool
		m.loginForm, cmd, submitted = m.loginForm.Update(msg)
		if submitted {
			cmd = m.login()
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, m.Keys.NextPage):
		cmd := m.switchPage((m.Page + 1) % pageCount)
		return m, cmd
	case key.Matches(msg, m.Keys.PrevPage):
		cmd := m.switchPage((m.Page + pageCount - 1) % pageCount)
		return m, cmd
	case key.Matches(msg, m.Keys.Landing):
		cmd := m.switchPage(PageLanding)
		return m, cmd
	case key.Matches(msg, m.Keys.Catalog):
		cmd := m.switchPage(PageCatalog)
		return m, cmd
	case key.Matches(msg, m.Keys.Account):
		cmd := m.switchPage(PageAccount)
		return m, cmd
	case key.Matches(msg, m.Keys.About):
		cmd := m.switchPage(PageAbout)
		return m, cmd
	case key.Matches(msg, m.Keys.Logout):
		cmd := m.logout()
		return m, cmd
	}

	switch m.Page {
	case PageLanding:
		cmd := m.handleLandingKey(msg)
		return m, cmd
	case PageCatalog:
		cmd := m.handleCatalogKey(msg)
		return m, cmd
	case PageAccount:
		cmd := m.handleAccountKey(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleLandingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Up):
		m.trendingList.MoveUp()
	case key.Matches(msg, m.Keys.Down):
		m.trendingList.MoveDown()
	case key.Matches(msg, m.Keys.Borrow):
		if w, ok := m.trendingList.Selected(); ok {
			return m.borrowWork(w)
		}
	case key.Matches(msg, m.Keys.Refresh):
		return m.fetchTrending()
	}
	return nil
}

func (m *Model) handleCatalogKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.SwitchPane):
		m.catalogPane = 1 - m.catalogPane
		m.focusPanes()
	case key.Matches(msg, m.Keys.Up):
		if m.catalogPane == PaneLeft {
			m.ebookList.MoveUp()
		} else {
			m.workList.MoveUp()
		}
		m.updateInspector()
	case key.Matches(msg, m.Keys.Down):
		if m.catalogPane == PaneLeft {
			m.ebookList.MoveDown()
		} else {
			m.workList.MoveDown()
		}
		m.updateInspector()
	case key.Matches(msg, m.Keys.Buy):
		if m.catalogPane == PaneLeft {
			if e, ok := m.ebookList.Selected(); ok {
				return m.buyEbook(e)
			}
		} else if w, ok := m.workList.Selected(); ok {
			return m.buyEbook(state.EbookFromWork(w))
		}
	case key.Matches(msg, m.Keys.Borrow):
		if m.catalogPane == PaneRight {
			if w, ok := m.workList.Selected(); ok {
				return m.borrowWork(w)
			}
		}
	case key.Matches(msg, m.Keys.Remove):
		if m.catalogPane == PaneLeft {
			if e, ok := m.ebookList.Selected(); ok {
				m.State.RemoveCatalogEbook(e.ID)
				m.applySnapshot(m.State.Snapshot())
				return m.setStatus(fmt.Sprintf("Removed %q from the catalog", e.Title), false)
			}
		}
	case key.Matches(msg, m.Keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.criteria.Query)
		m.updateLayout()
		return m.filterInput.Focus()
	case key.Matches(msg, m.Keys.Sort):
		m.criteria.Sort = m.criteria.Sort.Next()
		m.refreshCatalog()
	case key.Matches(msg, m.Keys.Subject):
		m.chipIdx = (m.chipIdx + 1) % len(m.chips)
		m.criteria.Subject = m.chips[m.chipIdx]
		m.refreshCatalog()
	case key.Matches(msg, m.Keys.WithCover):
		m.criteria.WithCover = !m.criteria.WithCover
		m.refreshCatalog()
	case key.Matches(msg, m.Keys.WithAuthor):
		m.criteria.WithAuthor = !m.criteria.WithAuthor
		m.refreshCatalog()
	case key.Matches(msg, m.Keys.Readable):
		m.criteria.Readable = !m.criteria.Readable
		m.refreshCatalog()
	case key.Matches(msg, m.Keys.Classic):
		m.criteria.Classic = !m.criteria.Classic
		m.refreshCatalog()
	case key.Matches(msg, m.Keys.Popular):
		m.criteria.Popular = !m.criteria.Popular
		m.refreshCatalog()
	case key.Matches(msg, m.Keys.ShortTitle):
		m.criteria.ShortTitle = !m.criteria.ShortTitle
		m.refreshCatalog()
	case key.Matches(msg, m.Keys.ClearFilter):
		m.criteria = search.Criteria{Sort: m.criteria.Sort}
		m.chipIdx = 0
		m.refreshCatalog()
	case key.Matches(msg, m.Keys.Refresh):
		return m.fetchCatalog()
	}
	return nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		m.updateLayout()
		return m, nil
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.criteria.Query = ""
		m.refreshCatalog()
		m.updateLayout()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if q := m.filterInput.Value(); q != m.criteria.Query {
		m.criteria.Query = q
		m.refreshCatalog()
	}
	return m, cmd
}

func (m *Model) handleAccountKey(msg tea.KeyMsg) tea.Cmd {
	if !m.snapshot.Session.IsLoggedIn {
		if key.Matches(msg, m.Keys.Enter) {
			return m.loginForm.Focus()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.Keys.SwitchPane):
		m.accountPane = 1 - m.accountPane
		m.focusPanes()
	case key.Matches(msg, m.Keys.Up):
		if m.accountPane == PaneLeft {
			m.borrowedList.MoveUp()
		} else {
			m.purchasedList.MoveUp()
		}
	case key.Matches(msg, m.Keys.Down):
		if m.accountPane == PaneLeft {
			m.borrowedList.MoveDown()
		} else {
			m.purchasedList.MoveDown()
		}
	case key.Matches(msg, m.Keys.Return):
		if b, ok := m.borrowedList.Selected(); ok && m.accountPane == PaneLeft {
			m.State.ReturnBorrowedBook(b.ID)
			m.applySnapshot(m.State.Snapshot())
			return m.setStatus(fmt.Sprintf("Returned %q", b.Title), false)
		}
	case key.Matches(msg, m.Keys.Renew):
		if b, ok := m.borrowedList.Selected(); ok && m.accountPane == PaneLeft {
			m.State.RenewBorrowedBook(b.ID, m.opts.RenewalDays)
			m.applySnapshot(m.State.Snapshot())
			for _, r := range m.snapshot.Borrowed {
				if r.ID == b.ID && r.Due != b.Due {
					return m.setStatus(fmt.Sprintf("Renewed %q until %s", r.Title, r.Due), false)
				}
			}
			return m.setStatus(fmt.Sprintf("Could not renew %q", b.Title), true)
		}
	case key.Matches(msg, m.Keys.Remove):
		if e, ok := m.purchasedList.Selected(); ok && m.accountPane == PaneRight {
			m.State.RemovePurchasedBook(e.ID)
			m.applySnapshot(m.State.Snapshot())
			return m.setStatus(fmt.Sprintf("Removed %q from your ebooks", e.Title), false)
		}
	}
	return nil
}

func (m *Model) login() tea.Cmd {
	email, password := m.loginForm.Values()
	user, err := m.Auth.Authenticate(auth.Credentials{Email: email, Password: password})
	if err != nil {
		m.loginForm.SetError(auth.Message(err))
		return nil
	}

	session, err := m.State.Login(user.Name)
	if err != nil {
		m.loginForm.SetError(err.Error())
		return nil
	}

	m.loginForm.Reset()
	m.loginForm.Blur()
	m.applySnapshot(m.State.Snapshot())
	return m.setStatus("Welcome back, "+session.CurrentUserName, false)
}

func (m *Model) logout() tea.Cmd {
	if !m.snapshot.Session.IsLoggedIn {
		return nil
	}
	m.State.Logout()
	m.applySnapshot(m.State.Snapshot())
	var cmd tea.Cmd
	if m.Page == PageAccount {
		cmd = m.loginForm.Focus()
	}
	return tea.Batch(cmd, m.setStatus("Signed out", false))
}

func (m *Model) borrowWork(w domain.Work) tea.Cmd {
	if err := m.State.RequireSession(); err != nil {
		return m.setStatus(noticeFor(err, "borrowed books"), true)
	}
	if m.State.IsBorrowed(w.Key) {
		return m.setStatus(fmt.Sprintf("%q is already on your borrowed list", w.Title), false)
	}

	m.State.BorrowWork(w, m.opts.LoanDays)
	m.applySnapshot(m.State.Snapshot())
	return m.setStatus(fmt.Sprintf("Borrowed %q, due %s", w.Title, m.State.DueIn(m.opts.LoanDays)), false)
}

func (m *Model) buyEbook(e domain.Ebook) tea.Cmd {
	if err := m.State.RequireSession(); err != nil {
		return m.setStatus(noticeFor(err, "your ebooks"), true)
	}
	if m.State.IsPurchased(e.ID) {
		return m.setStatus(fmt.Sprintf("You already own %q", e.Title), false)
	}

	if _, err := m.State.AddPurchasedBook(e); err != nil {
		return m.setStatus(noticeFor(err, ""), true)
	}
	m.applySnapshot(m.State.Snapshot())
	return m.setStatus(fmt.Sprintf("Bought %q", e.Title), false)
}

// noticeFor maps a domain error to a status bar message
func noticeFor(err error, target string) string {
	switch {
	case errors.Is(err, domain.ErrLoginRequired):
		return "You need to log in before adding books to " + target + "."
	case errors.Is(err, domain.ErrPurchaseRejected):
		return "That ebook is not for sale in our catalog."
	default:
		return err.Error()
	}
}

func (m *Model) switchPage(p Page) tea.Cmd {
	if p == m.Page {
		return nil
	}
	m.Page = p
	m.loginForm.Blur()
	m.updateLayout()

	switch p {
	case PageCatalog:
		if !m.catalogFetched && !m.catalogLoading {
			return m.fetchCatalog()
		}
	case PageAccount:
		if !m.snapshot.Session.IsLoggedIn {
			return m.loginForm.Focus()
		}
	}
	return nil
}

func (m *Model) fetchTrending() tea.Cmd {
	m.trendingGen++
	m.trendingLoading = true
	m.trendingList.SetLoading(true)
	return tea.Batch(FetchTrendingCmd(m.Catalog, m.trendingGen), m.startTick())
}

func (m *Model) fetchCatalog() tea.Cmd {
	m.catalogGen++
	m.catalogLoading = true
	m.workList.SetLoading(true)
	return tea.Batch(FetchCatalogCmd(m.Catalog, m.catalogGen), m.startTick())
}

func (m Model) isLoading() bool {
	return m.trendingLoading || m.catalogLoading
}

func (m *Model) startTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return TickCmd(SpinnerInterval)
}

// setStatus shows a notice and schedules it to clear
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, m.opts.StatusDelay)
}

// applySnapshot copies container state into the lists. Snapshots older
// than the one already applied are ignored.
func (m *Model) applySnapshot(s state.Snapshot) {
	if s.Seq < m.snapshot.Seq {
		return
	}
	m.snapshot = s
	m.borrowedList.SetItems(s.Borrowed)
	m.purchasedList.SetItems(s.Purchased)

	name := s.Session.CurrentUserName
	if s.Session.IsLoggedIn && name != "" {
		m.borrowedList.SetTitle(name + "'s borrowed books")
		m.purchasedList.SetTitle(name + "'s ebooks")
		m.loginForm.Blur()
	} else {
		m.borrowedList.SetTitle("Borrowed books")
		m.purchasedList.SetTitle("Ebooks")
	}

	m.refreshCatalog()
}

// refreshCatalog re-applies the filters to the catalog page lists
func (m *Model) refreshCatalog() {
	query := strings.TrimSpace(m.criteria.Query)

	ebooks := m.snapshot.Visible
	highlights := make(map[string][]int)
	if query != "" {
		var matches []search.Match
		ebooks, matches = search.FuzzyItems(query, ebooks)
		for i, mt := range matches {
			highlights[ebooks[i].ID] = mt.MatchedIndexes
		}
	}
	m.ebookList.SetItems(ebooks)
	m.ebookList.SetMatches(highlights)

	works := search.Apply(m.works, m.criteria)
	if query != "" && (m.criteria.Sort == "" || m.criteria.Sort == search.SortRelevant) {
		works = search.RankWorks(query, works)
	}
	if !m.catalogLoading {
		m.workList.SetItems(works)
	}
	m.workList.SetTitle(fmt.Sprintf("Open Library · %d of %d · %s", len(works), len(m.works), m.criteria.Sort.Label()))
	if m.catalogNotice != "" && len(m.works) == 0 {
		m.workList.SetEmptyText(m.catalogNotice)
	} else {
		m.workList.SetEmptyText("No books match these filters.")
	}

	m.updateInspector()
}

func (m *Model) updateInspector() {
	if m.catalogPane == PaneLeft {
		if e, ok := m.ebookList.Selected(); ok {
			m.Inspector.SetItem(e)
			return
		}
	} else if w, ok := m.workList.Selected(); ok {
		m.Inspector.SetItem(w)
		return
	}
	m.Inspector.SetItem(nil)
}

func (m *Model) focusPanes() {
	m.ebookList.SetFocused(m.catalogPane == PaneLeft)
	m.workList.SetFocused(m.catalogPane == PaneRight)
	m.borrowedList.SetFocused(m.accountPane == PaneLeft)
	m.purchasedList.SetFocused(m.accountPane == PaneRight)
	m.trendingList.SetFocused(true)
	m.updateInspector()
}

// updateLayout sizes the lists for the current window
func (m *Model) updateLayout() {
	if !m.Ready {
		return
	}
	contentHeight := m.Height - ChromeHeight
	if contentHeight < 4 {
		contentHeight = 4
	}

	m.trendingList.SetSize(m.Width, contentHeight-HeroHeight)

	catalogHeight := contentHeight - FilterBarHeight
	left := m.Width * 30 / 100
	middle := m.Width * 40 / 100
	right := m.Width - left - middle
	m.ebookList.SetSize(left, catalogHeight)
	m.workList.SetSize(middle, catalogHeight)
	m.Inspector.SetSize(right, catalogHeight)
	m.filterInput.Width = m.Width - 4

	half := m.Width / 2
	m.borrowedList.SetSize(half, contentHeight)
	m.purchasedList.SetSize(m.Width-half, contentHeight)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	var body string
	switch m.Page {
	case PageLanding:
		body = m.renderLanding()
	case PageCatalog:
		body = m.renderCatalog()
	case PageAccount:
		body = m.renderAccount()
	case PageAbout:
		body = m.renderAbout()
	}

	contentHeight := m.Height - ChromeHeight
	if contentHeight < 0 {
		contentHeight = 0
	}
	body = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		m.renderFooter(),
	)
}
