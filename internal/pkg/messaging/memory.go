package messaging

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

const (
	memoryBuffer        = 256
	memoryMaxRedelivery = 3
)

// Memory delivers messages between goroutines of one process. Subscribers
// sharing a group split the messages; every other subscriber gets a copy.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string][]*memorySub
	closed bool
	rr     atomic.Uint64
}

var _ Messaging = (*Memory)(nil)

type memorySub struct {
	topic string
	group string
	ch    chan *memoryMessage
	done  chan struct{}
	once  sync.Once
}

func (s *memorySub) stop() {
	s.once.Do(func() { close(s.done) })
}

func NewMemory() *Memory {
	return &Memory{subs: make(map[string][]*memorySub)}
}

func (m *Memory) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	targets, err := m.targets(topic)
	if err != nil {
		return err
	}

	for _, sub := range targets {
		mm := &memoryMessage{
			topic:   topic,
			body:    append([]byte(nil), msg.Body...),
			headers: append([]Header(nil), msg.Headers...),
			sub:     sub,
		}
		select {
		case sub.ch <- mm:
		case <-sub.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// targets picks one subscriber per group plus every ungrouped subscriber.
func (m *Memory) targets(topic string) ([]*memorySub, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	var out []*memorySub
	groups := make(map[string][]*memorySub)
	var order []string
	for _, s := range m.subs[topic] {
		if s.group == "" {
			out = append(out, s)
			continue
		}
		if _, ok := groups[s.group]; !ok {
			order = append(order, s.group)
		}
		groups[s.group] = append(groups[s.group], s)
	}

	n := m.rr.Add(1)
	for _, g := range order {
		members := groups[g]
		out = append(out, members[n%uint64(len(members))])
	}
	return out, nil
}

func (m *Memory) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, topic, handler); err != nil {
		return err
	}
	co := newConsumeOptions(opts...)

	sub := &memorySub{
		topic: topic,
		group: co.group,
		ch:    make(chan *memoryMessage, memoryBuffer),
		done:  make(chan struct{}),
	}
	if err := m.add(sub); err != nil {
		return err
	}
	defer m.remove(sub)

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-sub.done:
					return
				case mm := <-sub.ch:
					_ = dispatch(ctx, "memory", handler, mm, co)
				}
			}
		})
	}

	select {
	case <-ctx.Done():
	case <-sub.done:
	}
	sub.stop()
	wg.Wait()

	return ctx.Err()
}

func (m *Memory) add(sub *memorySub) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.subs[sub.topic] = append(m.subs[sub.topic], sub)
	return nil
}

func (m *Memory) remove(sub *memorySub) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := m.subs[sub.topic]
	for i, s := range subs {
		if s == sub {
			m.subs[sub.topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Close stops every consumer.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for _, subs := range m.subs {
		for _, s := range subs {
			s.stop()
		}
	}
	return nil
}

type memoryMessage struct {
	responder
	topic    string
	body     []byte
	headers  []Header
	sub      *memorySub
	attempts int
}

func (mm *memoryMessage) Body() []byte      { return mm.body }
func (mm *memoryMessage) Headers() []Header { return mm.headers }
func (mm *memoryMessage) Topic() string     { return mm.topic }

func (mm *memoryMessage) Ack(context.Context) error {
	mm.respond()
	return nil
}

// Nack requeues the message on the same subscriber a bounded number of times.
func (mm *memoryMessage) Nack(ctx context.Context) error {
	if !mm.respond() {
		return nil
	}
	if mm.attempts+1 >= memoryMaxRedelivery {
		slog.WarnContext(ctx, "memory message dropped after redeliveries", "topic", mm.topic, "attempts", mm.attempts+1)
		return nil
	}

	next := &memoryMessage{topic: mm.topic, body: mm.body, headers: mm.headers, sub: mm.sub, attempts: mm.attempts + 1}
	select {
	case mm.sub.ch <- next:
	case <-mm.sub.done:
	default:
		slog.WarnContext(ctx, "memory message dropped, subscriber buffer full", "topic", mm.topic)
	}
	return nil
}
