// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/finance-flow/internal/adapter"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
)

var (
	ErrMailQueueFull   = errors.New("mail queue is full")
	ErrMailQueueClosed = errors.New("mail queue is closed")
)

const (
	defaultMailWorkers   = 2
	defaultMailQueueSize = 64
	mailSendTimeout      = 30 * time.Second
)

// MailDispatcher queues outgoing emails and delivers them with a fixed
// pool of goroutines. It implements both [Worker] and [adapter.EmailSender],
// so services hand messages to it exactly as they would to a provider.
//
// Send never blocks: when the queue is full the message is dropped and
// [ErrMailQueueFull] is returned. Delivery errors are logged and never
// reach the caller.
type MailDispatcher struct {
	sender  adapter.EmailSender
	workers int

	mu     sync.RWMutex
	queue  chan models.EmailMessage
	closed bool

	wg     sync.WaitGroup
	logger *logger.Logger
}

func NewMailDispatcher(sender adapter.EmailSender, workers, queueSize int, log *logger.Logger) *MailDispatcher {
	if workers <= 0 {
		workers = defaultMailWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultMailQueueSize
	}

	log.Debug().Int("workers", workers).Int("queue_size", queueSize).Msg("creating mail dispatcher")
	return &MailDispatcher{
		sender:  sender,
		workers: workers,
		queue:   make(chan models.EmailMessage, queueSize),
		logger:  log,
	}
}

// Send enqueues msg for delivery.
func (d *MailDispatcher) Send(ctx context.Context, msg models.EmailMessage) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrMailQueueClosed
	}

	select {
	case d.queue <- msg:
		return nil
	default:
		logger.FromContext(ctx).Warn().
			Str("func", "*MailDispatcher.Send").
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("mail queue is full, message dropped")
		return ErrMailQueueFull
	}
}

// Run starts the delivery goroutines. Cancelling ctx has the same effect as
// Stop without the wait: the queue closes and the goroutines exit once it is
// drained.
func (d *MailDispatcher) Run(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.loop(i)
	}
	context.AfterFunc(ctx, d.closeQueue)

	d.logger.Info().Int("workers", d.workers).Msg("mail dispatcher started")
}

// Stop closes the queue and waits until every queued message has been
// handed to the sender. It is safe to call more than once.
func (d *MailDispatcher) Stop() {
	d.closeQueue()
	d.wg.Wait()
	d.logger.Info().Msg("mail dispatcher stopped")
}

func (d *MailDispatcher) closeQueue() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.closed {
		d.closed = true
		close(d.queue)
	}
}

func (d *MailDispatcher) loop(id int) {
	defer d.wg.Done()

	for msg := range d.queue {
		d.deliver(msg, id)
	}
}

func (d *MailDispatcher) deliver(msg models.EmailMessage, id int) {
	// delivery outlives the request that queued the message
	ctx, cancel := context.WithTimeout(d.logger.WithContext(context.Background()), mailSendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Err(err).
			Str("func", "*MailDispatcher.deliver").
			Int("worker", id).
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("failed to send email")
		return
	}
	d.logger.Debug().Int("worker", id).Str("to", msg.To).Msg("email delivered")
}
