package identity

import (
	"sync"

	"innovation-hub/internal/global/metrics"
	"innovation-hub/internal/model"
)

type SessionEventKind string

const (
	SignedIn  SessionEventKind = "signed_in"
	SignedOut SessionEventKind = "signed_out"
	Expired   SessionEventKind = "expired"
)

// SessionEvent 登录状态变化，User 为变化时的用户快照
type SessionEvent struct {
	Kind SessionEventKind
	User model.User
}

// Notifier 会话变化的广播，订阅者消费过慢时丢弃事件而不阻塞发布方
type Notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan SessionEvent
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan SessionEvent)}
}

// Subscribe 返回事件通道与取消函数，取消后通道被关闭
func (n *Notifier) Subscribe(buffer int) (<-chan SessionEvent, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan SessionEvent, buffer)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
			close(ch)
		})
	}
}

// Publish 返回成功投递的订阅者数量
func (n *Notifier) Publish(evt SessionEvent) int {
	metrics.SessionEvents.WithLabelValues(string(evt.Kind)).Inc()

	n.mu.RLock()
	defer n.mu.RUnlock()
	delivered := 0
	for _, ch := range n.subs {
		select {
		case ch <- evt:
			delivered++
		default:
		}
	}
	return delivered
}
