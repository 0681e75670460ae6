package events

import (
	"fmt"
	"time"
)

// Event statuses reported by the scheduled events service
const (
	StatusScheduled = "Scheduled"
	StatusStarted   = "Started"
)

// Document is the scheduled events document returned by GET.
// DocumentIncarnation changes whenever the event list changes.
type Document struct {
	DocumentIncarnation string  `json:"DocumentIncarnation"`
	Events              []Event `json:"Events"`
}

// Event is one pending maintenance operation
type Event struct {
	EventID      string   `json:"EventId"`
	EventStatus  string   `json:"EventStatus"` // Scheduled or Started
	EventType    string   `json:"EventType"`   // Freeze, Reboot, Redeploy, Preempt, Terminate
	ResourceType string   `json:"ResourceType"`
	Resources    []string `json:"Resources"`
	NotBefore    string   `json:"NotBefore"` // RFC1123, e.g. "Mon, 19 Sep 2016 18:29:47 GMT"
}

// NotBeforeTime parses NotBefore. ok is false when the field is empty or
// not an RFC1123 time.
func (e Event) NotBeforeTime() (time.Time, bool) {
	if e.NotBefore == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC1123, e.NotBefore)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Pending returns the events that have not started yet
func (d *Document) Pending() []Event {
	var out []Event
	for _, e := range d.Events {
		if e.EventStatus == StatusScheduled {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the event with the given id
func (d *Document) Find(id string) (Event, bool) {
	for _, e := range d.Events {
		if e.EventID == id {
			return e, true
		}
	}
	return Event{}, false
}

// Approval asks the service to start events ahead of their NotBefore time
type Approval struct {
	DocumentIncarnation string         `json:"DocumentIncarnation"`
	StartRequests       []StartRequest `json:"StartRequests"`
}

// StartRequest names one event to start
type StartRequest struct {
	EventID string `json:"EventId"`
}

// NewApproval approves the listed events of doc, or every event in doc when
// no ids are given. Unknown ids are an error.
func NewApproval(doc *Document, ids ...string) (*Approval, error) {
	approval := &Approval{
		DocumentIncarnation: doc.DocumentIncarnation,
		StartRequests:       []StartRequest{},
	}

	if len(ids) == 0 {
		for _, e := range doc.Events {
			approval.StartRequests = append(approval.StartRequests, StartRequest{EventID: e.EventID})
		}
		return approval, nil
	}

	for _, id := range ids {
		if _, ok := doc.Find(id); !ok {
			return nil, fmt.Errorf("event %s not found in document incarnation %s", id, doc.DocumentIncarnation)
		}
		approval.StartRequests = append(approval.StartRequests, StartRequest{EventID: id})
	}
	return approval, nil
}
