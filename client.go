package streamready

import (
	"log/slog"

	"github.com/riverline-io/streamready-go/clock"
	kinesisimpl "github.com/riverline-io/streamready-go/internal/kinesis"
	"github.com/riverline-io/streamready-go/provision"
)

// NewClient creates a client that provisions streams against the given
// stream-management API. The API is usually a [kinesis.Client], already
// configured and authorized to describe and create streams.
//
// Example:
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//		return err
//	}
//
//	client := streamready.NewClient(kinesis.NewFromConfig(cfg))
//	err = client.EnsureStreamReady(ctx, "orders", 2)
func NewClient(api provision.StreamAPI, opts ...ClientOption) provision.Client {
	options := &clientOptions{}
	for _, o := range opts {
		o(options)
	}

	if options.logger == nil {
		options.logger = slog.Default()
	}

	if options.clock == nil {
		options.clock = clock.System()
	}

	return kinesisimpl.New(api, options.logger, options.clock)
}

type clientOptions struct {
	logger *slog.Logger
	clock  clock.Clock
}

// ClientOption is an option to configure the client.
type ClientOption func(*clientOptions)

// WithLogger sets the logger used by the client. Defaults to
// [slog.Default].
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithClock sets the clock that drives deadlines and waits. Defaults to the
// system clock, tests can pass a [clock.ManagedClock] to avoid real waits.
func WithClock(clk clock.Clock) ClientOption {
	return func(o *clientOptions) {
		o.clock = clk
	}
}
