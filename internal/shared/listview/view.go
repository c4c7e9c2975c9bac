package listview

// Config describes how one resource is searched and tabbed.
type Config[T any] struct {
	Fields   Fields[T]
	Status   func(T) string
	Tabs     []string
	PageSize int
	Window   int
}

// Query is the user-controlled part of a list screen.
type Query struct {
	Term string
	Tab  string
	Page int
}

// View is everything a list screen renders.
type View[T any] struct {
	Rows      Page[T]
	Query     Query
	Window    []int
	TabCounts map[string]int
}

// Build applies the tab filter, then the search term, then pagination.
// Tab counts ignore the search term.
func Build[T any](items []T, q Query, cfg Config[T]) View[T] {
	size := cfg.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	width := cfg.Window
	if width <= 0 {
		width = DefaultWindow
	}
	tabbed := FilterTab(items, q.Tab, cfg.Status)
	searched := Filter(tabbed, q.Term, cfg.Fields)
	page := Paginate(searched, q.Page, size)
	v := View[T]{
		Rows:   page,
		Query:  q,
		Window: Window(page.Page, page.TotalPages, width),
	}
	if len(cfg.Tabs) > 0 {
		v.TabCounts = TabCounts(items, cfg.Tabs, cfg.Status)
	}
	return v
}

// State is the filter and page state local to one list screen.
type State struct {
	term string
	tab  string
	page int
}

// NewState starts on page 1 with no term and the ALL tab.
func NewState() *State {
	return &State{tab: TabAll, page: 1}
}

// SetTerm changes the search term and returns to page 1.
func (s *State) SetTerm(term string) {
	if term == s.term {
		return
	}
	s.term = term
	s.page = 1
}

// SetTab changes the status tab and returns to page 1.
func (s *State) SetTab(tab string) {
	if tab == "" {
		tab = TabAll
	}
	if tab == s.tab {
		return
	}
	s.tab = tab
	s.page = 1
}

// GoTo moves to page when it lies within [1, totalPages].
func (s *State) GoTo(page, totalPages int) bool {
	if page < 1 || page > totalPages {
		return false
	}
	s.page = page
	return true
}

// Next advances one page unless already on the last one.
func (s *State) Next(totalPages int) bool {
	return s.GoTo(s.page+1, totalPages)
}

// Prev goes back one page unless already on the first one.
func (s *State) Prev(totalPages int) bool {
	return s.GoTo(s.page-1, totalPages)
}

// Query snapshots the state for Build.
func (s *State) Query() Query {
	return Query{Term: s.term, Tab: s.tab, Page: s.page}
}
