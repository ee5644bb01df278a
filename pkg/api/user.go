package api

import (
	"context"
	"net/http"
	"net/url"
)

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/user/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Subscriptions lists the user's event alerts.
func (c *Client) Subscriptions(ctx context.Context) ([]Subscription, error) {
	var subs []Subscription
	err := c.get(ctx, "/api/subscriptions", nil, &subs)
	return subs, err
}

// Subscribe adds an alert for eventID.
func (c *Client) Subscribe(ctx context.Context, eventID string) (*Subscription, error) {
	var sub Subscription
	body := map[string]string{"eventId": eventID}
	if err := c.do(ctx, http.MethodPost, "/api/subscriptions", nil, body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Unsubscribe removes the alert for eventID.
func (c *Client) Unsubscribe(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodDelete, "/api/subscriptions/"+url.PathEscape(eventID), nil, nil, nil)
}
