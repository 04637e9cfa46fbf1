package navbar

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

type Event string

const (
	EventCurrencyChange   Event = "nav.currency_change"
	EventLogoClick        Event = "nav.logo_click"
	EventHelpOpen         Event = "nav.help_open"
	EventDrawerOpen       Event = "nav.drawer_open"
	EventMobileMenuToggle Event = "nav.mobile_menu_toggle"
	EventMobileMenuClose  Event = "nav.mobile_menu_close"
	EventProfileOpen      Event = "nav.profile_open"
	EventLogout           Event = "nav.logout"
	EventSignInClick      Event = "nav.signin_click"
	EventSignUpClick      Event = "nav.signup_click"
)

type Payload map[string]string

// Tracker records analytics events. Implementations must be safe for concurrent use.
type Tracker interface {
	Track(ctx context.Context, event Event, payload Payload) error
}

type TrackerFunc func(ctx context.Context, event Event, payload Payload) error

func (f TrackerFunc) Track(ctx context.Context, event Event, payload Payload) error {
	return f(ctx, event, payload)
}

// LogTracker writes each event as a structured log line.
type LogTracker struct {
	logger *zap.Logger
}

func NewLogTracker(logger *zap.Logger) *LogTracker {
	return &LogTracker{logger: logger}
}

func (t *LogTracker) Track(_ context.Context, event Event, payload Payload) error {
	fields := make([]zap.Field, 0, len(payload)+1)
	fields = append(fields, zap.String("event", string(event)))
	for _, k := range sortedKeys(payload) {
		fields = append(fields, zap.String(k, payload[k]))
	}
	t.logger.Info("analytics", fields...)
	return nil
}

// MetricTracker counts events on an OpenTelemetry counter, labelled by event name
// and by the payload's gateway when present.
type MetricTracker struct {
	counter metric.Int64Counter
}

func NewMetricTracker(counter metric.Int64Counter) *MetricTracker {
	return &MetricTracker{counter: counter}
}

func (t *MetricTracker) Track(ctx context.Context, event Event, payload Payload) error {
	attrs := []attribute.KeyValue{attribute.String("event", string(event))}
	if gw, ok := payload["gateway"]; ok {
		attrs = append(attrs, attribute.String("gateway", gw))
	}
	t.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
	return nil
}

// MultiTracker fans an event out to every tracker. All trackers run; errors are joined.
type MultiTracker []Tracker

func (m MultiTracker) Track(ctx context.Context, event Event, payload Payload) error {
	var errs []error
	for _, t := range m {
		if err := t.Track(ctx, event, payload); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("track %s: %v", event, errs)
}

type RecordedEvent struct {
	Event   Event
	Payload Payload
}

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

func (r *Recorder) Track(_ context.Context, event Event, payload Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(Payload, len(payload))
	for k, v := range payload {
		cp[k] = v
	}
	r.events = append(r.events, RecordedEvent{Event: event, Payload: cp})
	return nil
}

func (r *Recorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns the recorded events called name, in order.
func (r *Recorder) Named(name Event) []RecordedEvent {
	var out []RecordedEvent
	for _, e := range r.Events() {
		if e.Event == name {
			out = append(out, e)
		}
	}
	return out
}

// track never lets a tracker failure or panic reach the caller.
func track(ctx context.Context, t Tracker, logger *zap.Logger, event Event, payload Payload) {
	if t == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("analytics tracker panicked", zap.String("event", string(event)), zap.Any("panic", r))
		}
	}()
	if err := t.Track(ctx, event, payload); err != nil {
		logger.Warn("analytics event dropped", zap.String("event", string(event)), zap.Error(err))
	}
}

func sortedKeys(p Payload) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
