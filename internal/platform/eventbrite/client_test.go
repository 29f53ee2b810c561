package eventbrite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notFoundEnvelope = `{"error":{"error_type":"Not Found","error_message":"No records"}}`

func newStub(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestGetUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/json/user_get", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"user":{"user_id":42,"first_name":"Frances","last_name":"Overton","email":"f@example.com"}}`))
		})

		u, err := c.GetUser(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, int64(42), u.ID)
		assert.Equal(t, "Frances", u.FirstName)
		assert.Equal(t, "f@example.com", u.Email)
	})

	t.Run("error envelope is fatal, even Not Found", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(notFoundEnvelope))
		})

		_, err := c.GetUser(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("unexpected status is fatal", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.GetUser(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrUpstream)
	})
}

func TestListOrganizedEvents(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/json/user_list_events", r.URL.Path)
			assert.Equal(t, "style,tickets", r.URL.Query().Get("do_not_display"))
			_, _ = w.Write([]byte(`{"events":[
				{"event":{"id":1,"title":"A","start_date":"2013-06-26 10:00:00","end_date":"2013-06-26 12:00:00","timezone":"Europe/London"}},
				{"event":{"id":2,"title":"B","start_date":"2013-06-27 10:00:00","end_date":"2013-06-27 12:00:00","timezone":"Europe/London"}}
			]}`))
		})

		events, err := c.ListOrganizedEvents(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "A", events[0].Title)
		assert.Equal(t, "Europe/London", events[1].Timezone)
	})

	t.Run("Not Found envelope means no events", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(notFoundEnvelope))
		})

		events, err := c.ListOrganizedEvents(context.Background(), "tok")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("Not Found with a 404 status still means no events", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(notFoundEnvelope))
		})

		events, err := c.ListOrganizedEvents(context.Background(), "tok")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("other error envelope is fatal", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":{"error_type":"Authentication Error","error_message":"bad token"}}`))
		})

		_, err := c.ListOrganizedEvents(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrUpstream)
		assert.ErrorContains(t, err, "Authentication Error")
	})

	t.Run("undecodable body is fatal", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		})

		_, err := c.ListOrganizedEvents(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrUpstream)
	})
}

func TestListTickets(t *testing.T) {
	t.Run("orders sit in the second user_tickets element", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/json/user_list_tickets", r.URL.Path)
			assert.Equal(t, "all", r.URL.Query().Get("type"))
			_, _ = w.Write([]byte(`{"user_tickets":[
				{},
				{"orders":[{"order":{"id":100,"quantity":2,"event":{"id":9,"title":"Gig","start_date":"2013-06-26 19:00:00","end_date":"2013-06-26 23:00:00","timezone":"Europe/London"}}}]}
			]}`))
		})

		orders, err := c.ListTickets(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, int64(100), orders[0].ID)
		assert.Equal(t, 2, orders[0].Quantity)
		assert.Equal(t, "Gig", orders[0].Event.Title)
	})

	t.Run("Not Found envelope means no tickets", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(notFoundEnvelope))
		})

		orders, err := c.ListTickets(context.Background(), "tok")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("truncated user_tickets array means no tickets", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"user_tickets":[{}]}`))
		})

		orders, err := c.ListTickets(context.Background(), "tok")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("transport failure is fatal", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		c := NewClient(srv.URL)

		_, err := c.ListTickets(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrUpstream)
	})
}

func TestVenueDecoding(t *testing.T) {
	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[{"event":{"id":1,"title":"A","venue":{"name":"Barbican Centre","address":"Silk Street","city":"London","postal_code":"EC2Y 8DS"}}}]}`))
	})

	events, err := c.ListOrganizedEvents(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Venue)
	assert.Equal(t, "Barbican Centre", events[0].Venue.Name)
	assert.Equal(t, "London", events[0].Venue.City)
}
