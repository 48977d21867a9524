package web

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/virio-ai/go-translator/pkg/oracle"
	"github.com/virio-ai/go-translator/pkg/session"
	"github.com/virio-ai/go-translator/pkg/telephony"
	"github.com/virio-ai/go-translator/pkg/tracker"
)

func newTestServer() (*Server, *session.Store, *telephony.MockSpeaker) {
	store := session.NewStore(nil)
	speaker := telephony.NewMockSpeaker()
	tr := tracker.New(store, oracle.WithContent("hola"), speaker, nil)
	srv := NewServer(Config{Port: "0", Version: "test"}, tr, store)
	return srv, store, speaker
}

// waitFor polls cond for up to one second.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestRootAndHealth(t *testing.T) {
	srv, _, _ := newTestServer()

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "up and running") {
		t.Errorf("root body = %q", body)
	}

	resp, err = srv.App().Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var health struct {
		Status      string `json:"status"`
		Version     string `json:"version"`
		ActiveCalls int    `json:"active_calls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "ok" || health.Version != "test" {
		t.Errorf("health = %+v", health)
	}
}

func TestWebhookAcknowledgesImmediately(t *testing.T) {
	srv, store, speaker := newTestServer()

	req := httptest.NewRequest("POST", "/vapi/events",
		strings.NewReader(`{"type": "call-start", "callId": "c1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}

	// Processing happens after the ack.
	waitFor(t, func() bool {
		_, ok := store.Get("c1")
		return ok
	})
	waitFor(t, func() bool { return speaker.Count() == 1 })
}

func TestWebhookMalformedBody(t *testing.T) {
	srv, _, _ := newTestServer()

	req := httptest.NewRequest("POST", "/vapi/events", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestWebhookFullFlow(t *testing.T) {
	srv, store, speaker := newTestServer()

	post := func(body string) {
		t.Helper()
		req := httptest.NewRequest("POST", "/vapi/events", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := srv.App().Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	}

	post(`{"type": "call-start", "callId": "c1"}`)
	waitFor(t, func() bool { _, ok := store.Get("c1"); return ok })

	post(`{"type": "transcriber-response", "callId": "c1", "channel": "customer", "transcription": "Spanish"}`)
	waitFor(t, func() bool {
		s, ok := store.Get("c1")
		return ok && s.Stage == session.StageTranslation
	})

	s, _ := store.Get("c1")
	if s.CustomerLanguage != "Spanish" || s.AssistantLanguage != "English" {
		t.Errorf("pair = %q / %q", s.CustomerLanguage, s.AssistantLanguage)
	}

	post(`{"type": "transcriber-response", "callId": "c1", "channel": "customer", "transcription": "hola"}`)
	waitFor(t, func() bool {
		last := speaker.Last()
		return last != nil && last.Text == "hola" && last.Channel == telephony.ChannelAssistant
	})

	post(`{"type": "call-end", "callId": "c1"}`)
	waitFor(t, func() bool { _, ok := store.Get("c1"); return !ok })
}

func TestDebugCalls(t *testing.T) {
	srv, store, _ := newTestServer()
	store.Create("c1")
	store.Create("c2")

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/debug/calls", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var listing struct {
		ActiveCalls []session.Session `json:"activeCalls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listing.ActiveCalls) != 2 {
		t.Fatalf("active calls = %d, want 2", len(listing.ActiveCalls))
	}
	if listing.ActiveCalls[0].CallID != "c1" {
		t.Errorf("first call = %q", listing.ActiveCalls[0].CallID)
	}
}

func TestMetrics(t *testing.T) {
	srv, store, _ := newTestServer()
	store.Create("c1")

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "translator_active_calls 1") {
		t.Errorf("metrics body missing gauge:\n%s", body)
	}
	if !strings.Contains(string(body), "translator_events_total") {
		t.Errorf("metrics body missing counter:\n%s", body)
	}
}
