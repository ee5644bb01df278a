package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/marquee/pkg/api"
	"github.com/vango-dev/marquee/pkg/hashroute"
	"github.com/vango-dev/marquee/pkg/store"
)

// fakeBackend serves canned data and can hold a call until released.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	gate    map[string]chan struct{}
	events  map[string][]api.Event
	subs    []api.Subscription
	failing bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		gate: make(map[string]chan struct{}),
		events: map[string][]api.Event{
			"2025-06-01": {{ID: "e1", Title: "Hamlet", City: "Tokyo", Date: "2025-06-01"}},
			"2025-06-02": {{ID: "e2", Title: "Cats", City: "Osaka", Date: "2025-06-02"}},
			"2025-06-05": {
				{ID: "a", Title: "Annie", City: "Tokyo", Date: "2025-06-05", StartTime: "13:00", MinPrice: 9000, SoldOut: true},
				{ID: "b", Title: "Bach", City: "Osaka", Date: "2025-06-05", StartTime: "15:00", MinPrice: 3000},
				{ID: "c", Title: "Carmen", City: "Tokyo", Date: "2025-06-05", StartTime: "19:00", MinPrice: 6000},
			},
		},
	}
}

func (b *fakeBackend) record(call string) {
	b.mu.Lock()
	b.calls = append(b.calls, call)
	g := b.gate[call]
	b.mu.Unlock()
	if g != nil {
		<-g
	}
}

func (b *fakeBackend) hold(call string) chan struct{} {
	ch := make(chan struct{})
	b.mu.Lock()
	b.gate[call] = ch
	b.mu.Unlock()
	return ch
}

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBackend) err() error {
	if b.failing {
		return errors.New("api: 502 upstream down")
	}
	return nil
}

func (b *fakeBackend) SearchEvents(_ context.Context, q string) ([]api.Event, error) {
	b.record("search:" + q)
	return []api.Event{{ID: "s1", Title: "Result for " + q}}, b.err()
}

func (b *fakeBackend) EventsByDate(_ context.Context, date string) ([]api.Event, error) {
	b.record("date:" + date)
	if err := b.err(); err != nil {
		return nil, err
	}
	return b.events[date], nil
}

func (b *fakeBackend) Event(_ context.Context, id string) (*api.Event, error) {
	b.record("event:" + id)
	return &api.Event{ID: id, Title: "Event " + id}, b.err()
}

func (b *fakeBackend) CoCast(_ context.Context, names []string) (*api.CoCastResult, error) {
	b.record("cocast:" + strings.Join(names, ","))
	return &api.CoCastResult{Names: names, Events: []api.Event{{ID: "c1", Title: "Duet"}}}, nil
}

func (b *fakeBackend) Heatmap(_ context.Context, year, month int) ([]api.HeatmapDay, error) {
	b.record("heatmap")
	return []api.HeatmapDay{{Date: "2025-06-03", Count: 2}}, nil
}

func (b *fakeBackend) Me(context.Context) (*api.User, error) {
	b.record("me")
	return &api.User{ID: "u1", Name: "Kay"}, nil
}

func (b *fakeBackend) Subscriptions(context.Context) ([]api.Subscription, error) {
	b.record("subs")
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.Subscription(nil), b.subs...), nil
}

func (b *fakeBackend) Subscribe(_ context.Context, eventID string) (*api.Subscription, error) {
	b.record("subscribe:" + eventID)
	b.mu.Lock()
	b.subs = append(b.subs, api.Subscription{EventID: eventID, Title: "Event " + eventID})
	b.mu.Unlock()
	return &api.Subscription{EventID: eventID}, nil
}

func (b *fakeBackend) Unsubscribe(_ context.Context, eventID string) error {
	b.record("unsubscribe:" + eventID)
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
	return nil
}

func (b *fakeBackend) StartRefresh(_ context.Context, eventID string) (*api.Task, error) {
	b.record("refresh:" + eventID)
	return &api.Task{ID: "t1", Status: api.TaskPending}, nil
}

func (b *fakeBackend) WaitTask(_ context.Context, id string, _ time.Duration, onUpdate func(*api.Task)) (*api.Task, error) {
	b.record("wait:" + id)
	task := &api.Task{ID: id, Status: api.TaskDone}
	if onUpdate != nil {
		onUpdate(task)
	}
	return task, nil
}

// screen records every render.
type screen struct {
	mu     sync.Mutex
	frames []string
}

func (s *screen) Render(html string) {
	s.mu.Lock()
	s.frames = append(s.frames, html)
	s.mu.Unlock()
}

func (s *screen) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *screen) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return ""
	}
	return s.frames[len(s.frames)-1]
}

type harness struct {
	loc     *hashroute.MemoryLocation
	router  *hashroute.Router
	backend *fakeBackend
	screen  *screen
	app     *App
}

func newHarness(t *testing.T, hash string) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loc := hashroute.NewMemoryLocation(hash)
	router := hashroute.New(loc, hashroute.WithLogger(logger))
	h := &harness{
		loc:     loc,
		router:  router,
		backend: newFakeBackend(),
		screen:  &screen{},
	}
	h.app = New(Config{
		Router:   router,
		Backend:  h.backend,
		Mount:    h.screen,
		Logger:   logger,
		Now:      func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) },
		Poll:     time.Millisecond,
		Debounce: 10 * time.Millisecond,
	})
	t.Cleanup(h.app.Close)
	return h
}

func (h *harness) visit(path string) {
	h.router.Navigate(path)
	h.loc.Dispatch()
	h.app.Wait()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRouteTableOrder(t *testing.T) {
	h := newHarness(t, "")
	want := []string{"/", "/search", "/date", "/date/:date", "/cocast", "/event/:id", "/user", "/calendar"}
	got := h.app.RouteTable()
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("RouteTable() = %v, want %v", got, want)
	}
}

func TestHomeOnStart(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()
	if !strings.Contains(h.screen.Last(), "#/date/2025-06-01") {
		t.Errorf("home not rendered: %q", h.screen.Last())
	}
}

func TestUnknownRouteBouncesHome(t *testing.T) {
	h := newHarness(t, "#/no/such/page")
	h.app.Start()
	h.loc.Dispatch()

	if h.loc.Hash() != "#/" {
		t.Errorf("hash = %q, want #/", h.loc.Hash())
	}
	if !strings.Contains(h.screen.Last(), `class="home"`) {
		t.Errorf("expected home view, got %q", h.screen.Last())
	}
}

func TestDateViews(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()

	h.visit("/date?d=2025-06-02")
	if !strings.Contains(h.screen.Last(), "Cats") {
		t.Errorf("date query view = %q", h.screen.Last())
	}

	h.visit("/date/2025-06-01")
	if !strings.Contains(h.screen.Last(), "Hamlet") {
		t.Errorf("date path view = %q", h.screen.Last())
	}

	h.visit("/date")
	calls := h.backend.Calls()
	if calls[len(calls)-1] != "date:2025-06-01" {
		t.Errorf("bare /date should load today, calls = %v", calls)
	}

	h.visit("/date/not-a-date")
	if !strings.Contains(h.screen.Last(), "invalid date") {
		t.Errorf("invalid date view = %q", h.screen.Last())
	}
}

func TestCachedListRendersBeforeFetch(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()
	h.visit("/date/2025-06-01")
	h.visit("/")

	gate := h.backend.hold("date:2025-06-01")
	h.router.Navigate("/date/2025-06-01")
	h.loc.Dispatch()

	if !strings.Contains(h.screen.Last(), "Hamlet") {
		t.Errorf("cached list should render immediately, got %q", h.screen.Last())
	}
	close(gate)
	h.app.Wait()
}

func TestStaleFetchDoesNotOverwriteNewerView(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()

	gate := h.backend.hold("search:slow")
	h.router.Navigate("/search?q=slow")
	h.loc.Dispatch()

	// A second navigation is not blocked by the first fetch.
	h.router.Navigate("/date/2025-06-02")
	h.loc.Dispatch()
	waitFor(t, func() bool { return strings.Contains(h.screen.Last(), "Cats") })

	close(gate)
	h.app.Wait()
	if strings.Contains(h.screen.Last(), "Result for slow") {
		t.Error("stale search result painted over the newer view")
	}
	if _, ok := h.app.Store().List("search:slow"); !ok {
		t.Error("stale result should still be cached")
	}
}

func TestFetchErrorRendersError(t *testing.T) {
	h := newHarness(t, "")
	h.backend.failing = true
	h.app.Start()
	h.visit("/date/2025-06-01")
	if !strings.Contains(h.screen.Last(), "upstream down") {
		t.Errorf("error view = %q", h.screen.Last())
	}
}

func TestCoCast(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()

	h.visit("/cocast?names=A")
	if !strings.Contains(h.screen.Last(), "at least two") {
		t.Errorf("single name view = %q", h.screen.Last())
	}

	h.visit("/cocast?names=A,%20B")
	if !strings.Contains(h.screen.Last(), "Duet") {
		t.Errorf("cocast view = %q", h.screen.Last())
	}
	calls := h.backend.Calls()
	if calls[len(calls)-1] != "cocast:A,B" {
		t.Errorf("calls = %v", calls)
	}
}

func TestUserAndCalendar(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()

	h.visit("/user")
	if !strings.Contains(h.screen.Last(), "Kay") {
		t.Errorf("profile = %q", h.screen.Last())
	}
	if h.app.Store().User() == nil {
		t.Error("user should be cached")
	}

	h.visit("/calendar?month=2025-06")
	if !strings.Contains(h.screen.Last(), "heat-4") {
		t.Errorf("calendar = %q", h.screen.Last())
	}

	h.visit("/calendar?month=June")
	if !strings.Contains(h.screen.Last(), "invalid month") {
		t.Errorf("calendar error = %q", h.screen.Last())
	}
}

func TestSubscribeRerendersDetail(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()
	h.visit("/event/e1")
	if !strings.Contains(h.screen.Last(), "Notify me") {
		t.Fatalf("detail = %q", h.screen.Last())
	}

	h.app.Subscribe("e1")
	h.app.Wait()
	if !strings.Contains(h.screen.Last(), "Unsubscribe") {
		t.Errorf("after subscribe = %q", h.screen.Last())
	}

	h.app.Unsubscribe("e1")
	h.app.Wait()
	if !strings.Contains(h.screen.Last(), "Notify me") {
		t.Errorf("after unsubscribe = %q", h.screen.Last())
	}
}

func TestRefreshPollsAndRerenders(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()
	h.visit("/event/e2")

	h.app.Refresh("e2")
	h.app.Wait()

	calls := strings.Join(h.backend.Calls(), " ")
	if !strings.Contains(calls, "refresh:e2 wait:t1 event:e2") {
		t.Errorf("calls = %s", calls)
	}
}

func TestSearchDebounce(t *testing.T) {
	h := newHarness(t, "#/")
	h.app.Start()

	h.app.Search("ha")
	h.app.Search("ham")
	h.app.Search("hamlet")

	waitFor(t, func() bool { return h.loc.Hash() == "#/search?q=hamlet" })
	if h.loc.Len() != 1 {
		t.Errorf("debounced search should replace history, len = %d", h.loc.Len())
	}

	h.loc.Dispatch()
	h.app.Wait()
	for _, c := range h.backend.Calls() {
		if c == "search:ha" || c == "search:ham" {
			t.Errorf("intermediate search %q was issued", c)
		}
	}
	if !strings.Contains(h.screen.Last(), "Result for hamlet") {
		t.Errorf("search view = %q", h.screen.Last())
	}
}

// inOrder reports whether every title appears in html in the given order.
func inOrder(html string, titles ...string) bool {
	last := -1
	for _, title := range titles {
		i := strings.Index(html, ">"+title+"<")
		if i <= last {
			return false
		}
		last = i
	}
	return true
}

func TestFiltersRerenderCurrentList(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()
	h.visit("/date/2025-06-05")
	if !inOrder(h.screen.Last(), "Annie", "Bach", "Carmen") {
		t.Fatalf("default order wrong:\n%s", h.screen.Last())
	}
	calls := len(h.backend.Calls())

	h.app.SetSort(store.SortByPrice)
	out := h.screen.Last()
	if !inOrder(out, "Bach", "Carmen", "Annie") {
		t.Errorf("price order wrong:\n%s", out)
	}
	if !strings.Contains(out, `<option value="price" selected>`) {
		t.Error("sort control does not show price")
	}

	h.app.SetHideSoldOut(true)
	if out := h.screen.Last(); strings.Contains(out, ">Annie<") || !inOrder(out, "Bach", "Carmen") {
		t.Errorf("sold-out event still shown:\n%s", out)
	}

	h.app.SetCity(" tokyo ")
	out = h.screen.Last()
	if strings.Contains(out, ">Bach<") || !strings.Contains(out, ">Carmen<") {
		t.Errorf("city filter not applied:\n%s", out)
	}
	if !strings.Contains(out, `value="tokyo"`) {
		t.Error("city control lost its value")
	}

	if n := len(h.backend.Calls()); n != calls {
		t.Errorf("filter changes refetched: %d calls, want %d", n, calls)
	}
	f := h.app.Store().Filters()
	if f.Sort != store.SortByPrice || !f.HideSoldOut || f.City != "tokyo" {
		t.Errorf("store filters = %+v", f)
	}
}

func TestFiltersOffListDoNotRender(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()
	h.visit("/date/2025-06-05")
	h.visit("/user")
	frames := h.screen.Count()

	h.app.SetSort(store.SortByPrice)
	if h.screen.Count() != frames {
		t.Error("filter change repainted a non-list view")
	}
	if h.app.Store().Filters().Sort != store.SortByPrice {
		t.Error("sort not stored")
	}

	h.visit("/date/2025-06-05")
	if !inOrder(h.screen.Last(), "Bach", "Carmen", "Annie") {
		t.Errorf("stored sort not applied on next list:\n%s", h.screen.Last())
	}
}

func TestSearchResultsKeepSearchBox(t *testing.T) {
	h := newHarness(t, "")
	h.app.Start()
	h.visit("/search?q=hamlet")
	out := h.screen.Last()
	if !strings.Contains(out, `name="q" type="search" value="hamlet"`) {
		t.Errorf("results view lost the search box:\n%s", out)
	}
	if !strings.Contains(out, "Result for hamlet") {
		t.Errorf("results missing:\n%s", out)
	}
}
