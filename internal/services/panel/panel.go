package panel

import (
	"context"
	"strings"
	"sync"

	"github.com/arcosplaya/concierge/internal/content"
	"github.com/arcosplaya/concierge/internal/metrics"
	"github.com/arcosplaya/concierge/internal/services/concierge"
	"github.com/rs/zerolog/log"
)

// Panel is one visitor's concierge panel.
//
// Every dispatched question gets a new request id. A settlement is applied
// only while the panel is still busy with that same id; anything else is a
// stale answer (the panel was closed, or closed and reopened and asked again)
// and is dropped. In-flight requests are never cancelled.
type Panel struct {
	mu       sync.Mutex
	asker    concierge.Asker
	state    State
	response string
	seq      uint64

	subs    map[int]chan Snapshot
	nextSub int

	inflight sync.WaitGroup
}

func New(asker concierge.Asker) *Panel {
	return &Panel{
		asker: asker,
		state: Idle,
		subs:  make(map[int]chan Snapshot),
	}
}

// Open moves a closed panel to OpenEmpty. Opening an open panel changes nothing.
func (p *Panel) Open() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Idle {
		p.state = OpenEmpty
		p.response = ""
		p.notifyLocked()
	}
	return p.snapshotLocked()
}

// Close returns the panel to Idle from any open state.
func (p *Panel) Close() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Idle {
		if p.state == OpenBusy {
			log.Debug().Uint64("request_id", p.seq).Msg("Panel closed with a question in flight")
		}
		p.state = Idle
		p.response = ""
		p.notifyLocked()
	}
	return p.snapshotLocked()
}

// Submit dispatches query to the concierge and reports whether it did.
// Blank queries, a closed panel and a busy panel are no-ops.
func (p *Panel) Submit(ctx context.Context, query string, lang content.Language) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case strings.TrimSpace(query) == "":
		metrics.PanelSubmissions.WithLabelValues("blank").Inc()
		return false
	case p.state == Idle:
		metrics.PanelSubmissions.WithLabelValues("closed").Inc()
		return false
	case p.state == OpenBusy:
		metrics.PanelSubmissions.WithLabelValues("busy").Inc()
		return false
	}

	p.seq++
	id := p.seq
	p.state = OpenBusy
	p.response = ""
	p.notifyLocked()
	metrics.PanelSubmissions.WithLabelValues("dispatched").Inc()

	// the exchange outlives the caller's request
	ctx = context.WithoutCancel(ctx)

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		p.settle(id, p.asker.GetResponse(ctx, query, lang))
	}()

	return true
}

func (p *Panel) settle(id uint64, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != OpenBusy || id != p.seq {
		metrics.PanelSettlements.WithLabelValues("stale").Inc()
		log.Debug().
			Uint64("request_id", id).
			Uint64("latest_request_id", p.seq).
			Str("state", p.state.String()).
			Msg("Discarding stale concierge answer")
		return
	}

	p.state = OpenSettled
	p.response = text
	metrics.PanelSettlements.WithLabelValues("applied").Inc()
	p.notifyLocked()
}

func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Subscribe returns a channel that receives the latest snapshot after every
// change, starting with the current one. Slow readers only see the newest
// snapshot. The returned func unsubscribes and closes the channel.
func (p *Panel) Subscribe() (<-chan Snapshot, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Snapshot, 1)
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch
	ch <- p.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if sub, ok := p.subs[id]; ok {
				delete(p.subs, id)
				close(sub)
			}
		})
	}
}

// Wait blocks until every dispatched question has settled.
func (p *Panel) Wait() {
	p.inflight.Wait()
}

// shutdown closes all subscriptions; the panel stays usable.
func (p *Panel) shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, ch := range p.subs {
		delete(p.subs, id)
		close(ch)
	}
}

func (p *Panel) snapshotLocked() Snapshot {
	return Snapshot{
		State:     p.state,
		Busy:      p.state == OpenBusy,
		Response:  p.response,
		RequestID: p.seq,
	}
}

func (p *Panel) notifyLocked() {
	snap := p.snapshotLocked()
	for _, ch := range p.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
