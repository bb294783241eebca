package eventbus

import (
	"testing"
	"time"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	b := New()
	defer b.Close()
	a := b.Subscribe()
	c := b.Subscribe()

	b.Publish("hello")

	for _, ch := range []<-chan Event{a, c} {
		select {
		case ev := <-ch:
			if ev != "hello" {
				t.Fatalf("unexpected event %v", ev)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := New()
	defer b.Close()
	_ = b.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New()
	defer b.Close()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after unsubscribe")
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	b := New()
	ch := b.Subscribe()
	b.Close()
	b.Publish("late")
	if _, ok := <-ch; ok {
		t.Fatal("no events expected after close")
	}
}
