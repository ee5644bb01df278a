// Package store holds the client's in-memory state: fetched lists, the
// signed-in user, and the filter settings applied to event lists.
//
// Two settings (sort order and hide-sold-out) persist through Preferences,
// which is localStorage in the browser build.
package store

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/vango-dev/marquee/pkg/api"
)

// SortOrder selects how event lists are ordered.
type SortOrder string

const (
	SortByDate  SortOrder = "date"
	SortByPrice SortOrder = "price"
	SortByTitle SortOrder = "title"
)

// Preference keys.
const (
	PrefSort        = "marquee.sort"
	PrefHideSoldOut = "marquee.hideSoldOut"
)

// Filters are the UI filter settings applied to event lists.
type Filters struct {
	City        string
	HideSoldOut bool
	Sort        SortOrder
}

// Store is the mutable client-side cache. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	lists   map[string][]api.Event
	user    *api.User
	subs    []api.Subscription
	filters Filters
	prefs   Preferences
}

// New creates a store and restores persisted settings from prefs.
func New(prefs Preferences) *Store {
	if prefs == nil {
		prefs = NewMemoryPreferences()
	}
	s := &Store{
		lists: make(map[string][]api.Event),
		prefs: prefs,
		filters: Filters{
			Sort: SortByDate,
		},
	}

	if v, ok := prefs.Get(PrefSort); ok && validSort(SortOrder(v)) {
		s.filters.Sort = SortOrder(v)
	}
	if v, ok := prefs.Get(PrefHideSoldOut); ok {
		s.filters.HideSoldOut, _ = strconv.ParseBool(v)
	}
	return s
}

func validSort(o SortOrder) bool {
	switch o {
	case SortByDate, SortByPrice, SortByTitle:
		return true
	}
	return false
}

// Key helpers for cached lists.
func SearchKey(q string) string       { return "search:" + q }
func DateKey(date string) string      { return "date:" + date }
func CoCastKey(names []string) string { return "cocast:" + strings.Join(names, ",") }

// PutList caches a fetched list under key.
func (s *Store) PutList(key string, events []api.Event) {
	s.mu.Lock()
	s.lists[key] = events
	s.mu.Unlock()
}

// List returns the cached list for key.
func (s *Store) List(key string) ([]api.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events, ok := s.lists[key]
	return events, ok
}

// SetUser records the signed-in user.
func (s *Store) SetUser(u *api.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// User returns the signed-in user, or nil.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetSubscriptions replaces the cached subscriptions.
func (s *Store) SetSubscriptions(subs []api.Subscription) {
	s.mu.Lock()
	s.subs = subs
	s.mu.Unlock()
}

// Subscriptions returns the cached subscriptions.
func (s *Store) Subscriptions() []api.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subs
}

// Subscribed reports whether eventID has an alert.
func (s *Store) Subscribed(eventID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subs {
		if sub.EventID == eventID {
			return true
		}
	}
	return false
}

// Filters returns the current filter settings.
func (s *Store) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetCity filters lists to one city; "" shows all.
func (s *Store) SetCity(city string) {
	s.mu.Lock()
	s.filters.City = city
	s.mu.Unlock()
}

// SetHideSoldOut toggles hiding sold-out events and persists it.
func (s *Store) SetHideSoldOut(hide bool) {
	s.mu.Lock()
	s.filters.HideSoldOut = hide
	s.mu.Unlock()
	s.prefs.Set(PrefHideSoldOut, strconv.FormatBool(hide))
}

// SetSort changes the sort order and persists it. Unknown orders are ignored.
func (s *Store) SetSort(order SortOrder) {
	if !validSort(order) {
		return
	}
	s.mu.Lock()
	s.filters.Sort = order
	s.mu.Unlock()
	s.prefs.Set(PrefSort, string(order))
}

// Apply filters and sorts a copy of events with the current settings.
func (s *Store) Apply(events []api.Event) []api.Event {
	f := s.Filters()

	out := make([]api.Event, 0, len(events))
	for _, e := range events {
		if f.City != "" && !strings.EqualFold(e.City, f.City) {
			continue
		}
		if f.HideSoldOut && e.SoldOut {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch f.Sort {
		case SortByPrice:
			return out[i].MinPrice < out[j].MinPrice
		case SortByTitle:
			return out[i].Title < out[j].Title
		default:
			if out[i].Date != out[j].Date {
				return out[i].Date < out[j].Date
			}
			return out[i].StartTime < out[j].StartTime
		}
	})
	return out
}
