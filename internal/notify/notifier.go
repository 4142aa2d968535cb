package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Handler reacts to a "cart changed" invalidation. It receives no payload:
// observers re-read the cart to see the new state.
type Handler func(ctx context.Context)

// Publisher is the side of the bus the cart store needs.
type Publisher interface {
	Publish(ctx context.Context)
}

// Notifier is the cart-changed channel shared by every surface of one process.
type Notifier struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
	logger *zap.Logger
}

type subscription struct {
	id      uint64
	handler Handler
}

func New(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{logger: logger}
}

// Subscribe registers h and returns the function that revokes it. Calling the
// returned function more than once is harmless.
func (n *Notifier) Subscribe(h Handler) (unsubscribe func()) {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, handler: h})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every handler synchronously, in registration order. Handlers
// registered or revoked during a publish take effect on the next one.
func (n *Notifier) Publish(ctx context.Context) {
	n.mu.Lock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		n.dispatch(ctx, s)
	}
}

// Len reports the number of live subscriptions.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

func (n *Notifier) dispatch(ctx context.Context, s subscription) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("cart handler panicked",
				zap.Uint64("subscription", s.id),
				zap.Any("panic", r),
			)
		}
	}()
	s.handler(ctx)
}

var _ Publisher = (*Notifier)(nil)
