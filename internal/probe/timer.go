package probe

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pageloadtime/internal/domain"
	"github.com/hamed0406/pageloadtime/internal/metrics"
)

const (
	DefaultScheme = "https://"
	separator     = "&"
)

type Timer struct {
	Client  *http.Client
	Scheme  string // prepended to every identifier
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Diagnose classifies the host after a failed request; nil skips it.
	Diagnose func(ctx context.Context, host string) DNSStatus
}

func NewTimer(timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *Timer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Timer{
		Client:   &http.Client{Timeout: timeout},
		Scheme:   DefaultScheme,
		Logger:   logger,
		Metrics:  m,
		Diagnose: CheckDNS,
	}
}

// SplitIdentifiers splits on every "&" when present, otherwise on whitespace.
// Segments are kept as-is, so "a&&b" yields an empty middle identifier.
func SplitIdentifiers(input string) []string {
	if strings.Contains(input, separator) {
		return strings.Split(input, separator)
	}
	return strings.Fields(input)
}

// RoundSeconds converts d to seconds rounded to 3 decimal places.
func RoundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}

// Measure times each identifier in input order, one request at a time.
// The first failure aborts the batch.
func (t *Timer) Measure(ctx context.Context, input string) ([]domain.Measurement, error) {
	ids := SplitIdentifiers(input)
	out := make([]domain.Measurement, 0, len(ids))
	for _, id := range ids {
		m, err := t.Time(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Time issues one GET for identifier and reports how long the response took to arrive.
// Any HTTP status counts as a measurement; only transport failures are errors.
func (t *Timer) Time(ctx context.Context, identifier string) (domain.Measurement, error) {
	target := t.scheme() + identifier
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.Measurement{}, t.fail(ctx, identifier, target, 0, err)
	}

	start := time.Now()
	resp, err := t.client().Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return domain.Measurement{}, t.fail(ctx, identifier, target, elapsed, err)
	}
	resp.Body.Close()

	m := domain.Measurement{
		Identifier: identifier,
		Seconds:    RoundSeconds(elapsed),
		StatusCode: resp.StatusCode,
	}
	t.Metrics.ObserveFetch(elapsed.Seconds(), false, "")
	t.logger().Info("page_timed",
		zap.String("identifier", identifier),
		zap.Int("status", resp.StatusCode),
		zap.Float64("seconds", m.Seconds),
	)
	return m, nil
}

func (t *Timer) fail(ctx context.Context, identifier, target string, elapsed time.Duration, err error) error {
	nerr := &NetworkError{Identifier: identifier, URL: target, Err: err}
	if t.Diagnose != nil {
		// the request context may already be spent, the diagnosis has its own deadline
		dns := t.Diagnose(context.WithoutCancel(ctx), hostOf(target, identifier))
		nerr.DNSClass = dns.Class
	}
	t.Metrics.ObserveFetch(elapsed.Seconds(), true, nerr.DNSClass)
	t.logger().Warn("page_time_failed",
		zap.String("identifier", identifier),
		zap.String("url", target),
		zap.String("dns_class", nerr.DNSClass),
		zap.Bool("timeout", nerr.Timeout()),
		zap.Error(err),
	)
	return nerr
}

func (t *Timer) scheme() string {
	if t.Scheme == "" {
		return DefaultScheme
	}
	return t.Scheme
}

func (t *Timer) client() *http.Client {
	if t.Client == nil {
		return http.DefaultClient
	}
	return t.Client
}

func (t *Timer) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

func hostOf(target, fallback string) string {
	u, err := url.Parse(target)
	if err != nil || u.Hostname() == "" {
		return fallback
	}
	return u.Hostname()
}
