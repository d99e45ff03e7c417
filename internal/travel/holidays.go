package travel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrUpstream = errors.New("holiday lookup failed upstream")

const (
	defaultBaseURL = "https://date.nager.at"
	cacheTTL       = 12 * time.Hour
)

// HolidayClient proxies the public-holiday API. Responses are cached in
// Redis; a nil cache client skips caching entirely.
type HolidayClient struct {
	HTTP    *http.Client
	Cache   *redis.Client
	BaseURL string
}

func NewHolidayClient(cache *redis.Client) *HolidayClient {
	return &HolidayClient{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Cache:   cache,
		BaseURL: defaultBaseURL,
	}
}

type holiday struct {
	Date string `json:"date"`
}

// Dates returns the holiday dates for a country and year, newest request
// wins the cache slot.
func (c *HolidayClient) Dates(ctx context.Context, country string, year int) ([]string, error) {
	key := fmt.Sprintf("holidays:%d:%s", year, country)

	if c.Cache != nil {
		if cached, err := c.Cache.Get(ctx, key).Result(); err == nil {
			var dates []string
			if json.Unmarshal([]byte(cached), &dates) == nil {
				return dates, nil
			}
		}
	}

	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.BaseURL, year, country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build holiday request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUpstream
	}

	var holidays []holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, ErrUpstream
	}

	dates := make([]string, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}

	if c.Cache != nil {
		if raw, err := json.Marshal(dates); err == nil {
			c.Cache.Set(ctx, key, raw, cacheTTL)
		}
	}

	return dates, nil
}
