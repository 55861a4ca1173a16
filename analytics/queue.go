// api/analytics/queue.go
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"res4city/api/models"
)

func (e *Engine) queueLocked() []models.AnalyticsEvent {
	raw, ok := e.storage.Get(keyEventQueue)
	if !ok {
		return nil
	}
	var queue []models.AnalyticsEvent
	if err := json.Unmarshal(raw, &queue); err != nil {
		// Unreadable queue data counts as absent.
		e.log.Warnf("Discarding unreadable event queue: %v", err)
		return nil
	}
	return queue
}

func (e *Engine) saveQueueLocked(queue []models.AnalyticsEvent) {
	raw, err := json.Marshal(queue)
	if err != nil {
		e.log.Warnf("Failed to encode event queue: %v", err)
		return
	}
	e.storage.Set(keyEventQueue, raw)
}

// enqueueLocked appends in insertion order, evicting the oldest events once
// the queue exceeds MaxQueuedEvents.
func (e *Engine) enqueueLocked(evt models.AnalyticsEvent) {
	queue := append(e.queueLocked(), evt)
	if len(queue) > MaxQueuedEvents {
		queue = queue[len(queue)-MaxQueuedEvents:]
	}
	e.saveQueueLocked(queue)
}

// Drain returns the currently queued events in insertion order.
func (e *Engine) Drain() []models.AnalyticsEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queueLocked()
}

// QueueLen returns the number of queued events.
func (e *Engine) QueueLen() int {
	return len(e.Drain())
}

// Flush delivers the whole queue to the configured endpoint as one batch.
// It returns false without touching state when no endpoint is configured,
// true immediately when the queue is empty, and otherwise true only when
// the endpoint responded with a 2xx status, in which case the delivered
// events are removed. On any failure the queue is left intact for a later
// retry. There is no partial-ack protocol: a failure after server-side
// persistence re-delivers the batch, so duplicates are possible.
func (e *Engine) Flush() bool {
	return e.FlushContext(context.Background())
}

// FlushContext is Flush with caller-controlled cancellation.
func (e *Engine) FlushContext(ctx context.Context) bool {
	e.mu.Lock()
	endpoint := e.endpointLocked()
	queue := e.queueLocked()
	e.mu.Unlock()

	if endpoint == "" {
		return false
	}
	if len(queue) == 0 {
		return true
	}

	body, err := json.Marshal(models.EventBatch{Events: queue})
	if err != nil {
		e.log.Warnf("Failed to encode analytics batch: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		e.log.Warnf("Failed to build analytics request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.Warnf("Failed to send %d analytics events: %v", len(queue), err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e.log.Warnf("Analytics endpoint returned %d, keeping %d events queued", resp.StatusCode, len(queue))
		return false
	}

	// Only the delivered prefix is removed; events tracked while the
	// request was in flight stay queued in order.
	e.mu.Lock()
	current := e.queueLocked()
	if len(current) <= len(queue) {
		e.saveQueueLocked(nil)
	} else {
		e.saveQueueLocked(current[len(queue):])
	}
	e.mu.Unlock()
	return true
}

// SetOnline records the connectivity state. An offline-to-online transition
// triggers a flush attempt when an endpoint is configured.
func (e *Engine) SetOnline(online bool) {
	e.mu.Lock()
	wasOnline := e.online
	e.online = online
	endpoint := e.endpointLocked()
	e.mu.Unlock()

	if online && !wasOnline && endpoint != "" {
		go e.Flush()
	}
}
