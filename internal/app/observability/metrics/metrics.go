package metrics

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "visiventur"

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal      metric.Int64Counter
	HTTPRequestDuration    metric.Float64Histogram
	AuthRequestsTotal      metric.Int64Counter
	NavbarEventsTotal      metric.Int64Counter
	PreferenceWritesTotal  metric.Int64Counter
	PaymentIntentsTotal    metric.Int64Counter
	DBQueryDurationSeconds metric.Float64Histogram
	DBQueryErrorsTotal     metric.Int64Counter
	TemplateRenderDuration metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments from the global MeterProvider. Only the first call has an effect,
// so it must run after the provider is installed.
func InitAppMetrics() {
	once.Do(func() {
		appMetrics = New(otel.GetMeterProvider().Meter(meterName))
	})
}

// Get returns the process-wide instruments, creating them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

// New creates the instruments on meter. Instrument errors are reported to the otel error handler;
// the returned instruments are then no-ops.
func New(meter metric.Meter) *AppMetrics {
	m := &AppMetrics{}
	var err error

	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests completed"),
		metric.WithUnit("{request}"),
	)
	report(err)

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	report(err)

	m.AuthRequestsTotal, err = meter.Int64Counter(
		"auth_requests_total",
		metric.WithDescription("Total number of authentication requests"),
		metric.WithUnit("{request}"),
	)
	report(err)

	m.NavbarEventsTotal, err = meter.Int64Counter(
		"navbar_events_total",
		metric.WithDescription("Navbar analytics events by name"),
		metric.WithUnit("{event}"),
	)
	report(err)

	m.PreferenceWritesTotal, err = meter.Int64Counter(
		"preference_writes_total",
		metric.WithDescription("Remote currency preference writes by outcome"),
		metric.WithUnit("{write}"),
	)
	report(err)

	m.PaymentIntentsTotal, err = meter.Int64Counter(
		"payment_intents_total",
		metric.WithDescription("Payment intents created by gateway and outcome"),
		metric.WithUnit("{intent}"),
	)
	report(err)

	m.DBQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	)
	report(err)

	m.DBQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	)
	report(err)

	m.TemplateRenderDuration, err = meter.Float64Histogram(
		"template_render_duration_seconds",
		metric.WithDescription("Duration of template rendering in seconds"),
		metric.WithUnit("s"),
	)
	report(err)

	return m
}

func report(err error) {
	if err != nil {
		otel.Handle(err)
	}
}
