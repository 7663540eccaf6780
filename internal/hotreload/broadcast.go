package hotreload

import "sync"

// subscriberBufferSize bounds each client's outbound queue. A slow
// client doesn't block the broadcaster or other clients; it just falls
// behind and starts losing its oldest unsent messages.
const subscriberBufferSize = 64

// subscriber is one client's outbound message queue.
type subscriber struct {
	id  string
	ch  chan ServerMessage
	seq uint64
}

// Broadcaster fans a single stream of ServerMessages out to every
// subscribed client. Each subscriber gets its own buffered channel; a
// full channel drops its oldest queued message rather than blocking the
// broadcaster, so one stalled client can't stall every other client or
// the accept loop.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[string]*subscriber
	nextSeq     uint64
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[string]*subscriber)}
}

// Subscribe registers a new client and returns its receive channel.
// Unsubscribe must be called when the client disconnects.
func (b *Broadcaster) Subscribe(clientID string) <-chan ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &subscriber{id: clientID, ch: make(chan ServerMessage, subscriberBufferSize)}
	b.subscribers[clientID] = sub
	return sub.ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broadcaster) Unsubscribe(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subscribers[clientID]; ok {
		close(sub.ch)
		delete(b.subscribers, clientID)
	}
}

// Broadcast delivers msg to every current subscriber and returns the
// number of subscribers it was (attempted to be) delivered to. A
// subscriber whose channel is full has its oldest pending message
// dropped to make room — delivery is best-effort, not guaranteed.
func (b *Broadcaster) Broadcast(msg ServerMessage) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSeq++
	n := 0
	for _, sub := range b.subscribers {
		select {
		case sub.ch <- msg:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- msg:
			default:
			}
		}
		n++
	}
	return n
}

// SubscriberCount returns the current number of subscribed clients.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
