package odpt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/YutaHarimoto2025/auto-line-arrival-message/calendar"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/config"
)

var (
	// ErrUpstreamUnavailable covers transport failures and non-2xx
	// responses. Transient; the caller owns any retry policy.
	ErrUpstreamUnavailable = errors.New("timetable API unavailable")
	// ErrUpstreamMalformed covers responses that cannot be decoded into
	// the expected shape.
	ErrUpstreamMalformed = errors.New("timetable API response malformed")
)

// Client queries the ODPT StationTimetable endpoint. It performs exactly
// one request per call with a bounded timeout and no internal retry.
type Client struct {
	endpoint    string
	consumerKey string
	operator    string
	railway     string
	httpClient  *http.Client
}

func NewClient(cfg config.ODPTConfig, consumerKey string) *Client {
	return &Client{
		endpoint:    cfg.Endpoint,
		consumerKey: consumerKey,
		operator:    cfg.Operator,
		railway:     cfg.Railway,
		httpClient:  &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
	}
}

// StationCode builds the full station identifier for a canonical name
// fragment, e.g. "odpt.Station:MIR.TsukubaExpress.Kashiwanoha-campus".
func (c *Client) StationCode(fragment string) string {
	return fmt.Sprintf("odpt.Station:%s.%s.%s", c.operator, c.railway, fragment)
}

// FetchStationTimetable returns the scheduled departures for the given
// station, calendar type and rail direction.
func (c *Client) FetchStationTimetable(ctx context.Context, station string, cal calendar.Type, direction string) ([]StationTimetable, error) {
	params := url.Values{}
	params.Set("acl:consumerKey", c.consumerKey)
	params.Set("odpt:operator", "odpt.Operator:"+c.operator)
	params.Set("odpt:station", station)
	params.Set("odpt:calendar", "odpt.Calendar:"+string(cal))
	params.Set("odpt:railDirection", "odpt.RailDirection:"+direction)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, resp.Status)
	}

	var timetables []StationTimetable
	if err := json.NewDecoder(resp.Body).Decode(&timetables); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}
	return timetables, nil
}
