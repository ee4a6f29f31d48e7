// Package messaging is a small broker abstraction used for domain events.
//
// Drivers: in-memory (single process), NATS, NSQ and Kafka. Every driver
// delivers headers, acks when the handler returns nil and nacks otherwise,
// unless WithManualAck is given.
package messaging
