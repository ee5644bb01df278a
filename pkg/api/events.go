package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SearchEvents finds events whose title, venue or cast matches q.
func (c *Client) SearchEvents(ctx context.Context, q string) ([]Event, error) {
	var events []Event
	err := c.get(ctx, "/api/events/search", url.Values{"q": {q}}, &events)
	return events, err
}

// EventsByDate lists the events on a YYYY-MM-DD date.
func (c *Client) EventsByDate(ctx context.Context, date string) ([]Event, error) {
	var events []Event
	err := c.get(ctx, "/api/events/date", url.Values{"date": {date}}, &events)
	return events, err
}

// Event fetches one event with its tickets.
func (c *Client) Event(ctx context.Context, id string) (*Event, error) {
	var event Event
	if err := c.get(ctx, "/api/events/"+url.PathEscape(id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CoCast lists events in which every named performer appears.
func (c *Client) CoCast(ctx context.Context, names []string) (*CoCastResult, error) {
	var result CoCastResult
	err := c.get(ctx, "/api/cocast", url.Values{"names": {strings.Join(names, ",")}}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Heatmap returns per-day event counts for a month.
func (c *Client) Heatmap(ctx context.Context, year, month int) ([]HeatmapDay, error) {
	var days []HeatmapDay
	query := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(month)},
	}
	err := c.get(ctx, "/api/calendar/heatmap", query, &days)
	return days, err
}
