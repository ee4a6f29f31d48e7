package messaging

type consumeOptions struct {
	concurrency int
	manualAck   bool
	// group is the Kafka consumer group, NSQ channel or NATS queue group.
	group       string
	maxInFlight int
}

type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	co := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	if co.concurrency < 1 {
		co.concurrency = 1
	}
	return co
}

func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithGroup shares the work of a topic between consumers of the same group.
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithManualAck leaves Ack and Nack to the handler.
func WithManualAck() ConsumeOption {
	return func(o *consumeOptions) { o.manualAck = true }
}

// WithMaxInFlight bounds unacknowledged NSQ messages.
func WithMaxInFlight(n int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = n }
}
