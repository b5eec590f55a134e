package notify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/yieldvault/yieldvault/common"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()

	var got int64
	handler := func(message Message) {
		msg := message.GetData().(*StakeEventMessage)
		atomic.StoreInt64(&got, int64(msg.Amount))
	}
	bus.Subscribe(StakeDeposit, handler)

	bus.Publish(StakeDeposit, &StakeEventMessage{Staker: common.HexToAddress("0x01"), Amount: 42})

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt64(&got) != 42 {
		if time.Now().After(deadline) {
			t.Fatalf("handler not triggered, got %v", atomic.LoadInt64(&got))
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBusUnSubscribe(t *testing.T) {
	bus := NewBus()

	var calls int64
	handler := func(message Message) {
		atomic.AddInt64(&calls, 1)
	}
	bus.Subscribe(PoolPaused, handler)
	bus.UnSubscribe(PoolPaused, handler)

	bus.Publish(PoolPaused, &DummyMessage{})
	time.Sleep(50 * time.Millisecond)
	if atomic.LoadInt64(&calls) != 0 {
		t.Errorf("handler should not be called after unsubscribe, calls %v", calls)
	}
}

func TestBusPublishUnknownTopic(t *testing.T) {
	bus := NewBus()
	// should not panic
	bus.Publish("unknown_topic", &DummyMessage{})
}
