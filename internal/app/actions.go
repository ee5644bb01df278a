package app

import (
	"context"
	"strings"
	"time"

	"github.com/vango-dev/marquee/internal/views"
	"github.com/vango-dev/marquee/pkg/api"
	"github.com/vango-dev/marquee/pkg/hashroute"
	"github.com/vango-dev/marquee/pkg/store"
)

// Search debounces search-box input. Only the last value typed within the
// debounce window navigates, and it replaces the history entry.
func (a *App) Search(q string) {
	a.searchMu.Lock()
	defer a.searchMu.Unlock()

	if a.searchTimer != nil {
		a.searchTimer.Stop()
	}
	a.searchTimer = time.AfterFunc(a.debounce, func() {
		a.router.Navigate("/search", hashroute.WithReplace(), hashroute.WithParams(map[string]any{"q": q}))
	})
}

// SetSort changes the list order, persists it and re-renders the list on
// screen.
func (a *App) SetSort(order store.SortOrder) {
	a.store.SetSort(order)
	a.refilter()
}

// SetCity restricts lists to one city; "" shows all.
func (a *App) SetCity(city string) {
	a.store.SetCity(strings.TrimSpace(city))
	a.refilter()
}

// SetHideSoldOut toggles sold-out events, persists it and re-renders.
func (a *App) SetHideSoldOut(hide bool) {
	a.store.SetHideSoldOut(hide)
	a.refilter()
}

// refilter repaints the current list from the cache. Nothing happens when
// the screen is not a list or its data has not arrived yet; the fetch
// renders with the new settings.
func (a *App) refilter() {
	a.listMu.Lock()
	view := a.list
	a.listMu.Unlock()
	if view == nil {
		return
	}
	events, ok := a.store.List(view.key)
	if !ok {
		return
	}
	html, err := a.renderList(*view, events)
	a.showIf(view.path, html, err)
}

// Subscribe adds an alert for eventID and refreshes the cached list.
func (a *App) Subscribe(eventID string) {
	a.fetch(func(ctx context.Context) {
		if _, err := a.backend.Subscribe(ctx, eventID); err != nil {
			a.logger.Warn("subscribe failed", "event", eventID, "error", err)
			return
		}
		a.reloadSubscriptions(ctx)
		a.rerenderEvent(ctx, eventID)
	})
}

// Unsubscribe removes the alert for eventID.
func (a *App) Unsubscribe(eventID string) {
	a.fetch(func(ctx context.Context) {
		if err := a.backend.Unsubscribe(ctx, eventID); err != nil {
			a.logger.Warn("unsubscribe failed", "event", eventID, "error", err)
			return
		}
		a.reloadSubscriptions(ctx)
		a.rerenderEvent(ctx, eventID)
	})
}

// Refresh starts a backend ticket refresh for eventID, polls it to
// completion and re-renders the detail view if it is still shown.
func (a *App) Refresh(eventID string) {
	a.fetch(func(ctx context.Context) {
		task, err := a.backend.StartRefresh(ctx, eventID)
		if err != nil {
			a.logger.Warn("refresh failed", "event", eventID, "error", err)
			return
		}
		_, err = a.backend.WaitTask(ctx, task.ID, a.poll, func(t *api.Task) {
			a.logger.Debug("refresh progress", "task", t.ID, "status", t.Status, "progress", t.Progress)
		})
		if err != nil {
			a.logger.Warn("refresh did not finish", "task", task.ID, "error", err)
			return
		}
		a.rerenderEvent(ctx, eventID)
	})
}

func (a *App) reloadSubscriptions(ctx context.Context) {
	subs, err := a.backend.Subscriptions(ctx)
	if err != nil {
		a.logger.Warn("subscriptions reload failed", "error", err)
		return
	}
	a.store.SetSubscriptions(subs)
}

// rerenderEvent re-fetches and repaints the detail view when the current
// route is that event.
func (a *App) rerenderEvent(ctx context.Context, eventID string) {
	path := a.router.CurrentPath()
	if hashroute.MatchPath("/event/:id", pathOnly(path))["id"] != eventID {
		return
	}
	event, err := a.backend.Event(ctx, eventID)
	if err != nil {
		a.showError(path, err)
		return
	}
	html, err := a.views.EventDetail(views.DetailData{Event: event, Subscribed: a.store.Subscribed(eventID)})
	a.showIf(path, html, err)
}

func pathOnly(path string) string {
	path, _, _ = strings.Cut(path, "?")
	return path
}
