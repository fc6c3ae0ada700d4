package app

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// newHTTPClient builds one adapter's client. Requests become client spans
// under the usecase span that issued them; without Uptrace the global
// provider is a no-op.
func newHTTPClient(timeout time.Duration, opts ...otelhttp.Option) *http.Client {
	opts = append([]otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Host
		}),
	}, opts...)
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport, opts...),
	}
}
