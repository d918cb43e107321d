package arweave

import (
	"context"
	"sync"
)

// Subscription represents an active subscription that can be unsubscribed.
type Subscription interface {
	// Unsubscribe stops the subscription and releases resources.
	Unsubscribe()
}

// ConfirmationCallback is called once per monitored transaction, with the
// final status or the error that ended the wait.
type ConfirmationCallback func(id string, status *TransactionStatus, err error)

// TransactionMonitor waits for several transactions at once. Each
// transaction is polled in its own goroutine with the client's polling
// settings. Monitoring starts with the first registered callback.
type TransactionMonitor struct {
	client    *Client
	ids       []string
	waitOpts  []WaitOption
	callbacks []ConfirmationCallback
	mu        sync.RWMutex
	started   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

type callbackSubscription struct {
	cancel func()
}

func (s *callbackSubscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

// MonitorTransactions returns a monitor for the given transaction IDs. The
// wait options apply to every transaction.
func (c *Client) MonitorTransactions(ids []string, opts ...WaitOption) *TransactionMonitor {
	return &TransactionMonitor{
		client:   c,
		ids:      append([]string(nil), ids...),
		waitOpts: opts,
	}
}

// OnConfirmed registers a callback and starts monitoring if needed. The
// returned Subscription removes only this callback.
func (m *TransactionMonitor) OnConfirmed(callback ConfirmationCallback) Subscription {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1
	m.mu.Unlock()

	m.start()

	return &callbackSubscription{
		cancel: func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			// Keep indices stable.
			if index < len(m.callbacks) {
				m.callbacks[index] = nil
			}
		},
	}
}

// Unsubscribe stops all pending waits and drops every callback.
func (m *TransactionMonitor) Unsubscribe() {
	m.mu.Lock()
	cancel := m.cancel
	m.callbacks = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Wait blocks until every monitored transaction has been reported or the
// monitor is unsubscribed.
func (m *TransactionMonitor) Wait() {
	m.wg.Wait()
}

func (m *TransactionMonitor) start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.wg.Add(len(m.ids))
	m.mu.Unlock()

	for _, id := range m.ids {
		go func() {
			defer m.wg.Done()
			status, err := m.client.WaitForConfirmation(ctx, id, m.waitOpts...)
			if ctx.Err() != nil && err != nil {
				// Unsubscribed.
				return
			}
			m.emit(id, status, err)
		}()
	}
}

func (m *TransactionMonitor) emit(id string, status *TransactionStatus, err error) {
	m.mu.RLock()
	callbacks := make([]ConfirmationCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.RUnlock()

	for _, callback := range callbacks {
		if callback != nil {
			callback(id, status, err)
		}
	}
}
