package events

import (
	"sync"
	"testing"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := NewBus()

	var mu sync.Mutex
	var got []string

	b.Subscribe("thing.created", func(ev Event) {
		mu.Lock()
		got = append(got, "a:"+ev.Data["id"].(string))
		mu.Unlock()
	})
	b.Subscribe("thing.created", func(ev Event) {
		mu.Lock()
		got = append(got, "b:"+ev.Data["id"].(string))
		mu.Unlock()
	})
	b.Subscribe("thing.deleted", func(Event) {
		t.Errorf("handler for another event name must not fire")
	})

	b.Publish(Event{Name: "thing.created", Data: map[string]any{"id": "x1"}})

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Fatalf("got %d deliveries, want 2: %v", len(got), got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()

	calls := map[string]int{}
	t1 := b.Subscribe("ev", func(Event) { calls["first"]++ })
	b.Subscribe("ev", func(Event) { calls["second"]++ })

	b.Publish(Event{Name: "ev"})
	b.Unsubscribe("ev", t1)
	b.Publish(Event{Name: "ev"})

	if calls["first"] != 1 {
		t.Fatalf("unsubscribed handler fired %d times, want 1", calls["first"])
	}
	if calls["second"] != 2 {
		t.Fatalf("remaining handler fired %d times, want 2", calls["second"])
	}

	// unknown token is a no-op
	b.Unsubscribe("ev", 9999)
}

func TestSubscriberPanicDoesNotUnwind(t *testing.T) {
	b := NewBus()

	fired := false
	b.Subscribe("ev", func(Event) { panic("boom") })
	b.Subscribe("ev", func(Event) { fired = true })

	b.Publish(Event{Name: "ev"})

	if !fired {
		t.Fatalf("handler after the panicking one must still run")
	}
}

func TestNilBusIsSafe(t *testing.T) {
	var b *Bus
	if token := b.Subscribe("ev", func(Event) {}); token != -1 {
		t.Fatalf("Subscribe on nil bus = %d, want -1", token)
	}
	b.Unsubscribe("ev", 1)
	b.Publish(Event{Name: "ev"})
}
