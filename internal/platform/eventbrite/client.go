package eventbrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrUpstream is returned for any provider failure: transport errors,
// unexpected statuses, undecodable bodies, or an error envelope that does
// not mean "no results". Callers treat it as fatal; nothing is retried.
var ErrUpstream = errors.New("eventbrite request failed")

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   baseURL,
		userAgent: "editionapi/1.0",
	}
}

// User matches json/user_get.
type User struct {
	ID        int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Venue struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Address2   string `json:"address_2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Event matches the event objects in json/user_list_events. StartDate and
// EndDate are naive provider-local timestamps ("2013-06-26 10:00:00");
// Timezone ("Europe/London") says how to read them.
type Event struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Timezone  string `json:"timezone"`
	URL       string `json:"url"`
	Venue     *Venue `json:"venue"`
}

// Order is one purchased-ticket order from json/user_list_tickets, wrapping
// the event the ticket is for.
type Order struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
	Event    Event `json:"event"`
}

// apiError is the provider's error envelope. The API reports "no results"
// through this same envelope with error_type "Not Found", so the envelope
// alone does not mean failure; noResults tells the two apart.
type apiError struct {
	Type    string `json:"error_type"`
	Message string `json:"error_message"`
}

func (e *apiError) noResults() bool {
	return e.Type == "Not Found"
}

type userResponse struct {
	User  User      `json:"user"`
	Error *apiError `json:"error"`
}

type eventWrapper struct {
	Event Event `json:"event"`
}

type eventsResponse struct {
	Events []eventWrapper `json:"events"`
	Error  *apiError      `json:"error"`
}

type orderWrapper struct {
	Order Order `json:"order"`
}

type ticketsBucket struct {
	Orders []orderWrapper `json:"orders"`
}

type ticketsResponse struct {
	UserTickets []ticketsBucket `json:"user_tickets"`
	Error       *apiError       `json:"error"`
}

// GetUser fetches the authenticated user's profile. Any failure, including
// the provider's "Not Found" envelope, is fatal here: without an identity
// there is nothing to assemble.
func (c *Client) GetUser(ctx context.Context, accessToken string) (User, error) {
	var res userResponse
	if err := c.get(ctx, "/json/user_get", nil, accessToken, &res); err != nil {
		return User{}, err
	}
	if res.Error != nil {
		return User{}, fmt.Errorf("%w: user_get: %s: %s", ErrUpstream, res.Error.Type, res.Error.Message)
	}
	return res.User, nil
}

// ListOrganizedEvents fetches the events the user organizes. A "Not Found"
// envelope means the user organizes nothing and yields an empty slice.
func (c *Client) ListOrganizedEvents(ctx context.Context, accessToken string) ([]Event, error) {
	q := url.Values{"do_not_display": {"style,tickets"}}

	var res eventsResponse
	if err := c.get(ctx, "/json/user_list_events", q, accessToken, &res); err != nil {
		return nil, err
	}
	if res.Error != nil {
		if res.Error.noResults() {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: user_list_events: %s: %s", ErrUpstream, res.Error.Type, res.Error.Message)
	}

	events := make([]Event, 0, len(res.Events))
	for _, w := range res.Events {
		events = append(events, w.Event)
	}
	return events, nil
}

// ListTickets fetches the user's purchased-ticket orders, with the same
// no-results handling as ListOrganizedEvents. The orders sit in the second
// element of the user_tickets array; the first holds summary counts.
func (c *Client) ListTickets(ctx context.Context, accessToken string) ([]Order, error) {
	q := url.Values{"type": {"all"}}

	var res ticketsResponse
	if err := c.get(ctx, "/json/user_list_tickets", q, accessToken, &res); err != nil {
		return nil, err
	}
	if res.Error != nil {
		if res.Error.noResults() {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: user_list_tickets: %s: %s", ErrUpstream, res.Error.Type, res.Error.Message)
	}

	if len(res.UserTickets) < 2 {
		return nil, nil
	}
	wrapped := res.UserTickets[1].Orders
	orders := make([]Order, 0, len(wrapped))
	for _, w := range wrapped {
		orders = append(orders, w.Order)
	}
	return orders, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, accessToken string, target any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	// The provider serves its error envelope with 200 or 404; both are
	// decoded so the caller can inspect error_type. Anything else is a
	// hard failure.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: %s: unexpected status %d", ErrUpstream, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: %s: decoding response: %v", ErrUpstream, path, err)
	}
	return nil
}
