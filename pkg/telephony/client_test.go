package telephony

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChannelOpposite(t *testing.T) {
	if ChannelCustomer.Opposite() != ChannelAssistant {
		t.Error("customer opposite should be assistant")
	}
	if ChannelAssistant.Opposite() != ChannelCustomer {
		t.Error("assistant opposite should be customer")
	}
}

func TestClientSpeak(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/call/c1/say" {
			t.Errorf("Expected /call/c1/say, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected Bearer test-key, got %s", auth)
		}

		var req SpeakRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Channel != ChannelAssistant || req.Text != "Hello" {
			t.Errorf("unexpected request: %+v", req)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(WithBaseURL(server.URL), WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	err = client.Speak(context.Background(), "c1", SpeakRequest{
		Channel: ChannelAssistant,
		Text:    "Hello",
	})
	if err != nil {
		t.Errorf("Speak failed: %v", err)
	}
}

func TestClientSpeakAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "call not found"}`))
	}))
	defer server.Close()

	client, _ := NewClient(WithBaseURL(server.URL), WithAPIKey("test-key"))

	err := client.Speak(context.Background(), "missing", SpeakRequest{
		Channel: ChannelCustomer,
		Text:    "hi",
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != 404 || apiErr.Message != "call not found" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestConferenceCall(t *testing.T) {
	var requests []CallRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/call" {
			t.Errorf("Expected /call, got %s", r.URL.Path)
		}

		var req CallRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		requests = append(requests, req)

		call := Call{ID: "leg-1", ConferenceID: "conf-1"}
		if len(requests) == 2 {
			call = Call{ID: "leg-2", ConferenceID: req.ConferenceID}
		}
		json.NewEncoder(w).Encode(call)
	}))
	defer server.Close()

	client, _ := NewClient(
		WithBaseURL(server.URL),
		WithAPIKey("test-key"),
		WithPhoneNumberID("pn-1"),
	)

	confID, err := client.ConferenceCall(context.Background(), "+15550001111", "+15550002222")
	if err != nil {
		t.Fatalf("ConferenceCall failed: %v", err)
	}
	if confID != "conf-1" {
		t.Errorf("conference ID = %q", confID)
	}

	if len(requests) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(requests))
	}
	// Agent dialed first, customer joined to the same conference.
	if requests[0].Customer.Number != "+15550002222" || requests[0].ConferenceID != "" {
		t.Errorf("first leg = %+v", requests[0])
	}
	if requests[1].Customer.Number != "+15550001111" || requests[1].ConferenceID != "conf-1" {
		t.Errorf("second leg = %+v", requests[1])
	}
	if requests[0].PhoneNumberID != "pn-1" {
		t.Errorf("phone number ID = %q", requests[0].PhoneNumberID)
	}
}

func TestCreateCallRequiresPhoneNumberID(t *testing.T) {
	client, _ := NewClient(WithBaseURL("http://example.invalid"), WithAPIKey("test-key"))

	req := CallRequest{}
	req.Customer.Number = "+15550001111"
	if _, err := client.CreateCall(context.Background(), req); !errors.Is(err, ErrNoPhoneNumberID) {
		t.Errorf("expected ErrNoPhoneNumberID, got %v", err)
	}
}
