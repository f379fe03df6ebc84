package fetch

import "time"

const (
	DefaultTTL        = 5 * time.Minute
	DefaultRetries    = 3
	DefaultRetryDelay = time.Second
)

// Options tune one fetch. Zero values fall back to the fetcher defaults.
type Options struct {
	// TTL is how long a cached result stays fresh.
	TTL time.Duration

	// Retries is how many times a failed producer is re-run. The producer
	// runs at most Retries+1 times. Negative means no retries; zero means
	// the fetcher default.
	Retries int

	// RetryDelay is the base backoff; attempt n waits RetryDelay * 2^n.
	RetryDelay time.Duration
}

func (o Options) merged(defaults Options) Options {
	if o.TTL == 0 {
		o.TTL = defaults.TTL
	}
	if o.Retries == 0 {
		o.Retries = defaults.Retries
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.RetryDelay == 0 {
		o.RetryDelay = defaults.RetryDelay
	}
	return o
}

func Defaults() Options {
	return Options{
		TTL:        DefaultTTL,
		Retries:    DefaultRetries,
		RetryDelay: DefaultRetryDelay,
	}
}
