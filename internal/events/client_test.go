package events

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const mockDocument = `{
  "DocumentIncarnation": "3",
  "Events": [
    {
      "EventId": "602d9444-d2cd-49c7-8624-8643e7171297",
      "EventStatus": "Scheduled",
      "EventType": "Reboot",
      "ResourceType": "VirtualMachine",
      "Resources": ["FrontEnd_IN_0", "BackEnd_IN_0"],
      "NotBefore": "Mon, 19 Sep 2016 18:29:47 GMT"
    },
    {
      "EventId": "8b4e0a51-0000-4c2c-9d5d-3a2e0c6f1a11",
      "EventStatus": "Started",
      "EventType": "Freeze",
      "ResourceType": "VirtualMachine",
      "Resources": ["FrontEnd_IN_0"],
      "NotBefore": ""
    }
  ]
}`

func TestNewClient(t *testing.T) {
	client := NewClient("http://10.0.0.4:8080/metadata/latest/scheduledevents")

	if client.Endpoint != "http://10.0.0.4:8080/metadata/latest/scheduledevents" {
		t.Errorf("Endpoint = %s", client.Endpoint)
	}
	if client.HTTPClient == nil || client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("HTTPClient = %+v, want timeout %v", client.HTTPClient, DefaultTimeout)
	}

	client.SetTimeout(2 * time.Second)
	if client.HTTPClient.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", client.HTTPClient.Timeout)
	}
}

func TestGetDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Method = %s, want GET", r.Method)
		}
		if r.Header.Get("Metadata") != "true" {
			t.Errorf("Metadata header = %q, want true", r.Header.Get("Metadata"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mockDocument))
	}))
	defer server.Close()

	doc, err := NewClient(server.URL).GetDocument(context.Background())
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}

	if doc.DocumentIncarnation != "3" {
		t.Errorf("DocumentIncarnation = %s, want 3", doc.DocumentIncarnation)
	}
	if len(doc.Events) != 2 {
		t.Fatalf("Events = %d, want 2", len(doc.Events))
	}

	e := doc.Events[0]
	if e.EventID != "602d9444-d2cd-49c7-8624-8643e7171297" || e.EventType != "Reboot" {
		t.Errorf("event = %+v", e)
	}
	if len(e.Resources) != 2 || e.Resources[1] != "BackEnd_IN_0" {
		t.Errorf("Resources = %v", e.Resources)
	}
}

func TestGetDocument_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "metadata header missing", http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetDocument(context.Background())
	if !IsHTTPError(err) {
		t.Fatalf("GetDocument() error = %v, want HTTP error", err)
	}
	if StatusCode(err) != http.StatusBadRequest {
		t.Errorf("StatusCode() = %d, want 400", StatusCode(err))
	}

	apiErr := err.(*APIError)
	if !strings.Contains(apiErr.Body, "metadata header missing") {
		t.Errorf("Body = %q", apiErr.Body)
	}
}

func TestGetDocument_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"DocumentIncarnation":`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetDocument(context.Background())
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Type != ErrTypeParse {
		t.Errorf("GetDocument() error = %v, want parse error", err)
	}
}

func TestGetDocument_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).GetDocument(context.Background())
	if !IsNetworkError(err) {
		t.Errorf("GetDocument() error = %v, want network error", err)
	}
}

func TestApprove(t *testing.T) {
	var got Approval
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if r.Header.Get("Metadata") != "true" {
			t.Errorf("Metadata header = %q, want true", r.Header.Get("Metadata"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("request body %q: %v", body, err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	approval := &Approval{
		DocumentIncarnation: "3",
		StartRequests:       []StartRequest{{EventID: "602d9444-d2cd-49c7-8624-8643e7171297"}},
	}
	if err := NewClient(server.URL).Approve(context.Background(), approval); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	if got.DocumentIncarnation != "3" || len(got.StartRequests) != 1 ||
		got.StartRequests[0].EventID != "602d9444-d2cd-49c7-8624-8643e7171297" {
		t.Errorf("server received %+v", got)
	}
}

func TestApprove_WireFormat(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
	}))
	defer server.Close()

	approval := &Approval{DocumentIncarnation: "7", StartRequests: []StartRequest{{EventID: "a"}}}
	if err := NewClient(server.URL).Approve(context.Background(), approval); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	requests, ok := raw["StartRequests"].([]any)
	if !ok || len(requests) != 1 {
		t.Fatalf("StartRequests = %v", raw["StartRequests"])
	}
	if id := requests[0].(map[string]any)["EventId"]; id != "a" {
		t.Errorf("EventId = %v, want a", id)
	}
}

func TestApprove_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	err := NewClient(server.URL).Approve(context.Background(), &Approval{DocumentIncarnation: "1"})
	if StatusCode(err) != http.StatusConflict {
		t.Errorf("Approve() error = %v, want 409", err)
	}
}

func TestGetDocument_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mockDocument))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewClient(server.URL).GetDocument(ctx); !IsNetworkError(err) {
		t.Errorf("GetDocument() error = %v, want network error", err)
	}
}
