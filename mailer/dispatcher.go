package mailer

import (
	"sync"

	"go.uber.org/zap"
)

// Notifier sends a rendered password-reset message to an address.
type Notifier interface {
	SendPasswordReset(toEmail, resetLink string) error
}

type resetRequest struct {
	toEmail   string
	resetLink string
}

// Dispatcher queues reset mail on a buffered channel drained by one worker.
// Handlers enqueue and move on; a delivery failure is logged, never surfaced
// to the requester, so the response cannot reveal whether an address exists.
type Dispatcher struct {
	client Notifier
	logger *zap.Logger

	queue chan resetRequest
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(client Notifier, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		client: client,
		logger: logger,
		queue:  make(chan resetRequest, 100),
	}

	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for req := range d.queue {
		if err := d.client.SendPasswordReset(req.toEmail, req.resetLink); err != nil {
			d.logger.Error("password reset mail delivery failed",
				zap.String("to", req.toEmail),
				zap.Error(err))
			continue
		}
		d.logger.Info("password reset mail sent", zap.String("to", req.toEmail))
	}
}

// SendPasswordReset enqueues the message. A full queue drops the message
// rather than blocking the request; the drop is logged.
func (d *Dispatcher) SendPasswordReset(toEmail, resetLink string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}

	select {
	case d.queue <- resetRequest{toEmail: toEmail, resetLink: resetLink}:
	default:
		d.logger.Warn("password reset mail queue full, dropping message",
			zap.String("to", toEmail))
	}
	return nil
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}
