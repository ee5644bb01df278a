package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/marquee/pkg/api"
	"github.com/vango-dev/marquee/pkg/store"
)

func TestHeatLevel(t *testing.T) {
	tests := []struct {
		count, max, want int
	}{
		{0, 10, 0},
		{5, 0, 0},
		{1, 10, 1},
		{5, 10, 2},
		{7, 10, 3},
		{10, 10, 4},
		{12, 10, 4},
	}
	for _, tt := range tests {
		if got := HeatLevel(tt.count, tt.max); got != tt.want {
			t.Errorf("HeatLevel(%d, %d) = %d, want %d", tt.count, tt.max, got, tt.want)
		}
	}
}

func TestCalendarGrid(t *testing.T) {
	// June 2025 starts on a Sunday and has 30 days.
	weeks := CalendarGrid(2025, time.June, []api.HeatmapDay{
		{Date: "2025-06-01", Count: 4},
		{Date: "2025-06-15", Count: 1},
	})
	if len(weeks) != 5 {
		t.Fatalf("weeks = %d, want 5", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Errorf("week %d has %d cells", i, len(w))
		}
	}
	if c := weeks[0][0]; c.Day != 1 || c.Level != HeatLevels {
		t.Errorf("first cell = %+v", c)
	}
	if c := weeks[2][0]; c.Date != "2025-06-15" || c.Level != 1 {
		t.Errorf("June 15 cell = %+v", c)
	}
	if c := weeks[4][2]; c.Day != 0 {
		t.Errorf("padding cell = %+v", c)
	}

	// July 2025 starts on a Tuesday.
	july := CalendarGrid(2025, time.July, nil)
	if july[0][0].Day != 0 || july[0][1].Day != 0 || july[0][2].Day != 1 {
		t.Errorf("July first week = %+v", july[0])
	}
}

func TestMarkdownSanitizes(t *testing.T) {
	out := string(Markdown("**Bold** cast <script>alert(1)</script> [x](javascript:alert(1))"))
	if !strings.Contains(out, "<strong>Bold</strong>") {
		t.Errorf("markdown not rendered: %q", out)
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, "javascript:") {
		t.Errorf("unsafe content survived: %q", out)
	}
	if Markdown("") != "" {
		t.Error("empty input should render empty")
	}
}

func TestRenderList(t *testing.T) {
	r := MustNew()
	out, err := r.EventList(ListData{
		Heading: "2025-06-01",
		Events: []api.Event{
			{ID: "e 1", Title: "Hamlet <Live>", Venue: "Globe", City: "Tokyo", Date: "2025-06-01", MinPrice: 12000, SoldOut: true},
		},
	})
	if err != nil {
		t.Fatalf("EventList() error = %v", err)
	}
	for _, want := range []string{"Hamlet &lt;Live&gt;", "#/event/e%201", "¥12,000", "sold-out", "#/date/2025-06-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, `name="q"`) {
		t.Error("date list should not carry a search box")
	}

	empty, _ := r.EventList(ListData{Heading: "none"})
	if !strings.Contains(empty, "No events found.") {
		t.Errorf("empty list output = %q", empty)
	}
}

func TestRenderListKeepsQueryAndFilters(t *testing.T) {
	r := MustNew()
	out, err := r.EventList(ListData{
		Heading: "Results for les mis",
		Query:   `les "mis"`,
		Filters: store.Filters{City: "Osaka", HideSoldOut: true, Sort: store.SortByPrice},
	})
	if err != nil {
		t.Fatalf("EventList() error = %v", err)
	}
	for _, want := range []string{
		`name="q" type="search" value="les &#34;mis&#34;"`,
		`<option value="price" selected>`,
		`name="city" type="text" value="Osaka"`,
		`name="hideSoldOut" type="checkbox" checked`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `<option value="date" selected>`) {
		t.Error("date should not be selected")
	}
}

func TestRenderDetailCoCastLink(t *testing.T) {
	r := MustNew()
	out, err := r.EventDetail(DetailData{Event: &api.Event{
		ID:   "e2",
		Cast: []string{"Grizabella", "Old Deuteronomy"},
	}})
	if err != nil {
		t.Fatalf("EventDetail() error = %v", err)
	}
	if !strings.Contains(out, `href="#/cocast?names=Grizabella%2COld%20Deuteronomy"`) {
		t.Errorf("co-cast link missing:\n%s", out)
	}

	solo, _ := r.EventDetail(DetailData{Event: &api.Event{ID: "e3", Cast: []string{"Grizabella"}}})
	if strings.Contains(solo, "#/cocast") {
		t.Error("single performer should not get a co-cast link")
	}
}

func TestRenderDetail(t *testing.T) {
	r := MustNew()
	out, err := r.EventDetail(DetailData{
		Event: &api.Event{
			ID:          "e1",
			Title:       "Cats",
			Cast:        []string{"Grizabella"},
			Description: "A *musical*",
			Tickets:     []api.Ticket{{Seat: "A1", Price: 9000, Available: true}},
		},
		Subscribed: true,
	})
	if err != nil {
		t.Fatalf("EventDetail() error = %v", err)
	}
	for _, want := range []string{"<em>musical</em>", "#/search?q=Grizabella", "Unsubscribe", "¥9,000", "available"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCalendarAndMisc(t *testing.T) {
	r := MustNew()
	out, err := r.Calendar(2025, time.January, []api.HeatmapDay{{Date: "2025-01-10", Count: 2}})
	if err != nil {
		t.Fatalf("Calendar() error = %v", err)
	}
	for _, want := range []string{"#/calendar?month=2024-12", "#/calendar?month=2025-02", "heat-4", "January"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q", want)
		}
	}

	home, _ := r.Home("2025-06-01")
	if !strings.Contains(home, "#/date/2025-06-01") {
		t.Errorf("home = %q", home)
	}
	e, _ := r.Error(errors.New("api: 502 upstream down"))
	if !strings.Contains(e, "upstream down") {
		t.Errorf("error view = %q", e)
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4500: "-4,500"}
	for n, want := range tests {
		if got := groupThousands(n); got != want {
			t.Errorf("groupThousands(%d) = %q, want %q", n, got, want)
		}
	}
}
