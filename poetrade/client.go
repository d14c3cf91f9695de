// Package poetrade talks to the PoE2 trade API and poe2scout: trade
// history, active listings, and currency exchange rates. It knows nothing
// about fund accounting; it produces flat market records for the caller to
// value.
package poetrade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTradeBase = "https://www.pathofexile.com/api/trade2"
	defaultScoutBase = "https://poe2scout.com/api"

	userAgent  = "poe2-investments (local fund tracker)"
	maxRetries = 3
	// The API sometimes asks for minutes-long waits; past this we give up
	// and let the next run retry.
	maxRetryAfter = 30 * time.Second
)

// Client is an authenticated PoE2 trade API session.
type Client struct {
	League  string
	Account string

	// TradeBase and ScoutBase override the API hosts, for tests.
	TradeBase string
	ScoutBase string

	sessID string
	http   *http.Client
}

// NewClient creates a client authenticated with the given POESESSID cookie.
func NewClient(poesessid, league, account string) *Client {
	return &Client{
		League:    league,
		Account:   account,
		TradeBase: defaultTradeBase,
		ScoutBase: defaultScoutBase,
		sessID:    poesessid,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// do performs a request with session cookie, backing off on 429 responses
// according to Retry-After.
func (c *Client) do(ctx context.Context, method, addr string, body []byte) (*http.Response, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, addr, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.sessID != "" {
			req.AddCookie(&http.Cookie{Name: "POESESSID", Value: c.sessID})
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait > maxRetryAfter {
				return nil, fmt.Errorf("rate limited for %s: too long, giving up", wait)
			}
			log.Printf("rate limited, waiting %s (attempt %d/%d)", wait, attempt+1, maxRetries)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			continue
		}
		if resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("cannot %s %s: %s", method, resp.Request.URL.Path, resp.Status)
		}
		return resp, nil
	}
	return nil, fmt.Errorf("cannot %s %s: still rate limited after %d attempts", method, addr, maxRetries)
}

func retryAfter(resp *http.Response) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Minute
}

// getJSON performs a GET and unmarshals the JSON response.
func (c *Client) getJSON(ctx context.Context, addr string, data any) error {
	resp, err := c.do(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(data)
}

// postJSON performs a POST with a JSON body and unmarshals the response.
func (c *Client) postJSON(ctx context.Context, addr string, body, data any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, addr, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(data)
}

func (c *Client) leaguePath() string { return url.PathEscape(c.League) }

func (c *Client) historyURL() string {
	return fmt.Sprintf("%s/history/%s", c.TradeBase, c.leaguePath())
}

func (c *Client) searchURL() string {
	return fmt.Sprintf("%s/search/poe2/%s", c.TradeBase, c.leaguePath())
}

func (c *Client) fetchURL(ids []string, queryID string) string {
	return fmt.Sprintf("%s/fetch/%s?query=%s&realm=poe2", c.TradeBase, strings.Join(ids, ","), queryID)
}

func (c *Client) ratesURL() string {
	return fmt.Sprintf("%s/currencyExchange/SnapshotPairs?league=%s", c.ScoutBase, url.QueryEscape(c.League))
}
