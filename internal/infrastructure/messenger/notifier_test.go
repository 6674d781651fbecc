package messenger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatewayMessage struct {
	UserID      string `json:"userId"`
	Text        string `json:"text"`
	Destination string `json:"destination"`
}

type fakeGateway struct {
	mu       sync.Mutex
	messages []gatewayMessage
	failFor  map[string]bool
}

func (g *fakeGateway) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		var msg gatewayMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		g.mu.Lock()
		g.messages = append(g.messages, msg)
		fail := g.failFor[msg.Destination]
		g.mu.Unlock()
		if fail {
			http.Error(w, "unavailable", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func (g *fakeGateway) countFor(dest string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, m := range g.messages {
		if m.Destination == dest {
			n++
		}
	}
	return n
}

type recordedFailure struct {
	target   string
	attempts int
	payload  map[string]any
}

type fakeRecorder struct {
	records []recordedFailure
}

func (r *fakeRecorder) Record(_ context.Context, target string, payload map[string]any, _ error, attempts int) error {
	r.records = append(r.records, recordedFailure{target: target, attempts: attempts, payload: payload})
	return nil
}

func bookingFixture() (domain.Inquiry, domain.Provider) {
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	inquiry := domain.Inquiry{
		ID:          "inq-1",
		Reference:   "AB12CD34",
		Type:        domain.InquiryBooking,
		ListingID:   "svc-1",
		From:        domain.Contact{Name: "Thandi", Email: "thandi@example.com"},
		Message:     "First session please",
		DesiredDate: &date,
		DesiredTime: "09:00",
	}
	provider := domain.Provider{ID: "svc-1", BusinessID: "biz-9", Name: "Priya Naidoo"}
	return inquiry, provider
}

func TestNotifier_NotifyInquiry(t *testing.T) {
	t.Run("sends to the business and to discord", func(t *testing.T) {
		gw := &fakeGateway{}
		srv := httptest.NewServer(gw.handler(t))
		defer srv.Close()

		n := NewNotifier(Config{Endpoint: srv.URL + "/", Destination: "line", DiscordDestination: "discord"})
		inquiry, provider := bookingFixture()

		require.NoError(t, n.NotifyInquiry(context.Background(), inquiry, provider))
		require.Len(t, gw.messages, 2)
		assert.Equal(t, "biz-9", gw.messages[0].UserID)
		assert.Equal(t, "line", gw.messages[0].Destination)
		assert.Contains(t, gw.messages[0].Text, "New booking request for Priya Naidoo")
		assert.Contains(t, gw.messages[0].Text, "Mon 19 Oct 2026 09:00")
		assert.Equal(t, "AB12CD34", gw.messages[1].UserID)
	})

	t.Run("falls back to slack and records when every admin channel fails", func(t *testing.T) {
		gw := &fakeGateway{failFor: map[string]bool{"discord": true, "slack": true}}
		srv := httptest.NewServer(gw.handler(t))
		defer srv.Close()

		rec := &fakeRecorder{}
		n := NewNotifier(Config{
			Endpoint:           srv.URL,
			Destination:        "line",
			DiscordDestination: "discord",
			SlackDestination:   "slack",
			Failures:           rec,
		})
		inquiry, provider := bookingFixture()

		require.NoError(t, n.NotifyInquiry(context.Background(), inquiry, provider))
		assert.Equal(t, 3, gw.countFor("discord"))
		assert.Equal(t, 1, gw.countFor("slack"))
		require.Len(t, rec.records, 1)
		assert.Equal(t, adminFailureTarget, rec.records[0].target)
		assert.Equal(t, 4, rec.records[0].attempts)
		assert.Equal(t, "AB12CD34", rec.records[0].payload["reference"])
	})

	t.Run("business failure is returned", func(t *testing.T) {
		gw := &fakeGateway{failFor: map[string]bool{"line": true}}
		srv := httptest.NewServer(gw.handler(t))
		defer srv.Close()

		rec := &fakeRecorder{}
		n := NewNotifier(Config{Endpoint: srv.URL, Destination: "line", Failures: rec})
		inquiry, provider := bookingFixture()

		err := n.NotifyInquiry(context.Background(), inquiry, provider)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status=502")
		require.Len(t, rec.records, 1)
		assert.Equal(t, businessFailureTarg, rec.records[0].target)
	})

	t.Run("provider without business id skips the business message", func(t *testing.T) {
		gw := &fakeGateway{}
		srv := httptest.NewServer(gw.handler(t))
		defer srv.Close()

		n := NewNotifier(Config{Endpoint: srv.URL, Destination: "line"})
		inquiry, provider := bookingFixture()
		provider.BusinessID = ""

		require.NoError(t, n.NotifyInquiry(context.Background(), inquiry, provider))
		assert.Empty(t, gw.messages)
	})
}

func TestBuildBusinessMessage_ContactInquiry(t *testing.T) {
	inquiry := domain.Inquiry{Type: domain.InquiryContact, Reference: "REF", From: domain.Contact{Name: "Sipho"}}
	msg := buildBusinessMessage(inquiry, domain.Provider{Name: "Mike"})

	assert.Contains(t, msg, "New inquiry for Mike")
	assert.Contains(t, msg, "> Sipho")
	assert.NotContains(t, msg, "Requested slot")
}
