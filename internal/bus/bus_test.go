package bus

import (
	"sync"
	"testing"
)

func TestDeliversToSubscribersInOrder(t *testing.T) {
	b := New()
	var got []string
	b.Subscribe(TopicPatternGenerated, func(ev Event) {
		got = append(got, "first:"+ev.Payload.(string))
	})
	b.Subscribe(TopicPatternGenerated, func(ev Event) {
		got = append(got, "second:"+ev.Payload.(string))
	})

	b.Publish(TopicPatternGenerated, "p-1")

	if len(got) != 2 || got[0] != "first:p-1" || got[1] != "second:p-1" {
		t.Fatalf("unexpected delivery %v", got)
	}
}

func TestTopicsAreIsolated(t *testing.T) {
	b := New()
	delivered := 0
	b.Subscribe(TopicSessionCompleted, func(Event) { delivered++ })

	b.Publish(TopicPatternGenerated, nil)
	b.Publish(TopicInsightGenerated, nil)
	if delivered != 0 {
		t.Fatalf("handler received %d events from other topics", delivered)
	}

	b.Publish(TopicSessionCompleted, nil)
	if delivered != 1 {
		t.Fatalf("expected 1 delivery, got %d", delivered)
	}
}

func TestPanickingSubscriberDoesNotStarveOthers(t *testing.T) {
	b := New()
	reached := false
	b.Subscribe(TopicActionRecorded, func(Event) { panic("bad handler") })
	b.Subscribe(TopicActionRecorded, func(Event) { reached = true })

	b.Publish(TopicActionRecorded, nil)

	if !reached {
		t.Fatal("subscriber after the panicking one never ran")
	}
}

func TestNilBusPublishIsNoOp(t *testing.T) {
	var b *Bus
	b.Publish(TopicPatternApplied, "anything") // must not panic
}

func TestNilHandlerIgnored(t *testing.T) {
	b := New()
	b.Subscribe(TopicPatternApplied, nil)
	b.Publish(TopicPatternApplied, nil) // must not panic
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	b := New()
	var mu sync.Mutex
	count := 0
	b.Subscribe(TopicPatternGenerated, func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.Publish(TopicPatternGenerated, nil)
		}()
		go func() {
			defer wg.Done()
			b.Subscribe(TopicSessionCompleted, func(Event) {})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 8 {
		t.Fatalf("expected 8 deliveries, got %d", count)
	}
}
