// Package views renders marquee's HTML fragments.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/vango-dev/marquee/pkg/api"
	"github.com/vango-dev/marquee/pkg/hashroute"
	"github.com/vango-dev/marquee/pkg/store"
)

// Renderer executes the view templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the view templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("views").Funcs(funcs).Parse(templates)
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is New for package initialization; it panics on a template error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

var funcs = template.FuncMap{
	"eventHref": func(id string) string {
		return "#/event/" + url.PathEscape(id)
	},
	"dateHref": func(date string) string {
		return "#/date/" + url.PathEscape(date)
	},
	"searchHref": func(q string) string {
		return "#/search" + hashroute.BuildQuery(map[string]any{"q": q})
	},
	"cocastHref": func(names []string) string {
		return "#/cocast" + hashroute.BuildQuery(map[string]any{"names": strings.Join(names, ",")})
	},
	"yen": func(n int) string {
		return fmt.Sprintf("¥%s", groupThousands(n))
	},
	"markdown": Markdown,
}

func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := ""
	if n < 0 {
		neg, s = "-", s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return neg + s
}

func (r *Renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// ListData feeds the event list views.
type ListData struct {
	Heading string
	Query   string
	Events  []api.Event
	Filters store.Filters
}

// Home renders the landing view.
func (r *Renderer) Home(today string) (string, error) {
	return r.render("home", map[string]string{"Today": today})
}

// Loading renders a placeholder while a fetch is in flight.
func (r *Renderer) Loading(what string) (string, error) {
	return r.render("loading", what)
}

// Error renders a failed fetch.
func (r *Renderer) Error(err error) (string, error) {
	return r.render("error", err.Error())
}

// EventList renders search, date and co-cast result lists.
func (r *Renderer) EventList(data ListData) (string, error) {
	return r.render("list", data)
}

// DetailData feeds the event detail view.
type DetailData struct {
	Event      *api.Event
	Subscribed bool
}

// EventDetail renders one event with its tickets.
func (r *Renderer) EventDetail(data DetailData) (string, error) {
	return r.render("detail", data)
}

// UserData feeds the profile view.
type UserData struct {
	User          *api.User
	Subscriptions []api.Subscription
}

// Profile renders the user and subscription view.
func (r *Renderer) Profile(data UserData) (string, error) {
	return r.render("profile", data)
}

// CalendarData feeds the heatmap view.
type CalendarData struct {
	Year  int
	Month time.Month
	Weeks [][]CalendarCell
	Prev  string
	Next  string
}

// Calendar renders the month heatmap.
func (r *Renderer) Calendar(year int, month time.Month, days []api.HeatmapDay) (string, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	return r.render("calendar", CalendarData{
		Year:  year,
		Month: month,
		Weeks: CalendarGrid(year, month, days),
		Prev:  "#/calendar" + hashroute.BuildQuery(map[string]any{"month": prev.Format("2006-01")}),
		Next:  "#/calendar" + hashroute.BuildQuery(map[string]any{"month": next.Format("2006-01")}),
	})
}
