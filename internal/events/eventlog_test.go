package events

import (
	"testing"
	"time"
)

func TestAppendAndQuery(t *testing.T) {
	el := NewEventLog(nil)

	el.Append(GameEvent{ID: GenerateEventID(), Timestamp: time.Now(), Type: EventTypePlayerMoved})
	el.Append(GameEvent{ID: GenerateEventID(), Timestamp: time.Now(), Type: EventTypeCoinCollected, CellKey: "5,5"})
	el.Append(GameEvent{ID: GenerateEventID(), Timestamp: time.Now(), Type: EventTypeCoinCollected, CellKey: "4,4"})

	if len(el.Replay()) != 3 {
		t.Errorf("Expected 3 events in the log, got %d", len(el.Replay()))
	}
	if got := el.GetByType(EventTypeCoinCollected); len(got) != 2 {
		t.Errorf("Expected 2 COIN_COLLECTED events, got %d", len(got))
	}
	if got := el.GetByCell("5,5"); len(got) != 1 {
		t.Errorf("Expected 1 event for cell 5,5, got %d", len(got))
	}
}

type channelPersister struct {
	appended chan GameEvent
}

func (p *channelPersister) Append(event GameEvent) error {
	p.appended <- event
	return nil
}

func TestAppendWritesThroughToPersister(t *testing.T) {
	p := &channelPersister{appended: make(chan GameEvent, 1)}
	el := NewEventLog(p)

	el.Append(GameEvent{ID: "EVT_1", Type: EventTypeWorldSaved})

	select {
	case got := <-p.appended:
		if got.ID != "EVT_1" {
			t.Errorf("Expected persisted event EVT_1, got %s", got.ID)
		}
	case <-time.After(2 * time.Second):
		t.Errorf("Expected the persister to receive the event")
	}
}

func TestGenerateEventIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateEventID()
		if seen[id] {
			t.Fatalf("Duplicate event ID generated: %s", id)
		}
		seen[id] = true
	}
}
