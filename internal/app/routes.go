package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vango-dev/marquee/internal/views"
	"github.com/vango-dev/marquee/pkg/api"
	"github.com/vango-dev/marquee/pkg/hashroute"
	"github.com/vango-dev/marquee/pkg/store"
)

const dateLayout = "2006-01-02"

// registerRoutes registers every view. Literal routes come before
// parameterized ones with the same shape since the first match wins.
func (a *App) registerRoutes() {
	a.router.On("/", a.home)
	a.router.On("/search", a.search)
	a.router.On("/date", a.dateQuery)
	a.router.On("/date/:date", a.datePath)
	a.router.On("/cocast", a.cocast)
	a.router.On("/event/:id", a.event)
	a.router.On("/user", a.user)
	a.router.On("/calendar", a.calendar)
}

func (a *App) today() string {
	return a.now().Format(dateLayout)
}

func (a *App) home(hashroute.Params, hashroute.Query) {
	a.show(a.views.Home(a.today()))
}

func (a *App) search(_ hashroute.Params, query hashroute.Query) {
	q := query["q"]
	if q == "" {
		a.home(nil, nil)
		return
	}
	a.showList(store.SearchKey(q), "Results for "+q, q, func(ctx context.Context) ([]api.Event, error) {
		return a.backend.SearchEvents(ctx, q)
	})
}

func (a *App) dateQuery(_ hashroute.Params, query hashroute.Query) {
	a.showDate(query["d"])
}

func (a *App) datePath(params hashroute.Params, _ hashroute.Query) {
	a.showDate(params["date"])
}

func (a *App) showDate(date string) {
	if date == "" {
		date = a.today()
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		a.show(a.views.Error(fmt.Errorf("invalid date %q", date)))
		return
	}
	a.showList(store.DateKey(date), date, "", func(ctx context.Context) ([]api.Event, error) {
		return a.backend.EventsByDate(ctx, date)
	})
}

func (a *App) cocast(_ hashroute.Params, query hashroute.Query) {
	names := splitNames(query["names"])
	if len(names) < 2 {
		a.show(a.views.EventList(views.ListData{Heading: "Pick at least two performers"}))
		return
	}
	heading := "Together: " + query["names"]
	a.showList(store.CoCastKey(names), heading, "", func(ctx context.Context) ([]api.Event, error) {
		res, err := a.backend.CoCast(ctx, names)
		if err != nil {
			return nil, err
		}
		return res.Events, nil
	})
}

// showList renders a cached list immediately, otherwise a loading state,
// then fetches and re-renders.
func (a *App) showList(key, heading, q string, load func(ctx context.Context) ([]api.Event, error)) {
	path := a.router.CurrentPath()
	view := listView{path: path, key: key, heading: heading, query: q}
	a.listMu.Lock()
	a.list = &view
	a.listMu.Unlock()
	render := func(events []api.Event) (string, error) {
		return a.renderList(view, events)
	}

	if cached, ok := a.store.List(key); ok {
		a.show(render(cached))
	} else {
		a.show(a.views.Loading(heading))
	}

	a.fetch(func(ctx context.Context) {
		events, err := load(ctx)
		if err != nil {
			a.showError(path, err)
			return
		}
		a.store.PutList(key, events)
		html, err := render(events)
		a.showIf(path, html, err)
	})
}

func (a *App) renderList(v listView, events []api.Event) (string, error) {
	return a.views.EventList(views.ListData{
		Heading: v.heading,
		Query:   v.query,
		Events:  a.store.Apply(events),
		Filters: a.store.Filters(),
	})
}

func (a *App) event(params hashroute.Params, _ hashroute.Query) {
	id := params["id"]
	path := a.router.CurrentPath()
	a.show(a.views.Loading("event"))

	a.fetch(func(ctx context.Context) {
		event, err := a.backend.Event(ctx, id)
		if err != nil {
			a.showError(path, err)
			return
		}
		html, err := a.views.EventDetail(views.DetailData{Event: event, Subscribed: a.store.Subscribed(id)})
		a.showIf(path, html, err)
	})
}

func (a *App) user(hashroute.Params, hashroute.Query) {
	path := a.router.CurrentPath()
	a.show(a.views.Loading("profile"))

	a.fetch(func(ctx context.Context) {
		user, err := a.backend.Me(ctx)
		if err != nil {
			a.showError(path, err)
			return
		}
		subs, err := a.backend.Subscriptions(ctx)
		if err != nil {
			a.showError(path, err)
			return
		}
		a.store.SetUser(user)
		a.store.SetSubscriptions(subs)
		html, err := a.views.Profile(views.UserData{User: user, Subscriptions: subs})
		a.showIf(path, html, err)
	})
}

func (a *App) calendar(_ hashroute.Params, query hashroute.Query) {
	year, month := a.now().Year(), a.now().Month()
	if m := query["month"]; m != "" {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			a.show(a.views.Error(fmt.Errorf("invalid month %q", m)))
			return
		}
		year, month = t.Year(), t.Month()
	}

	path := a.router.CurrentPath()
	a.show(a.views.Loading(month.String() + " " + strconv.Itoa(year)))

	a.fetch(func(ctx context.Context) {
		days, err := a.backend.Heatmap(ctx, year, int(month))
		if err != nil {
			a.showError(path, err)
			return
		}
		html, err := a.views.Calendar(year, month, days)
		a.showIf(path, html, err)
	})
}
