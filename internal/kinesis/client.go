package kinesis

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/riverline-io/streamready-go/clock"
	"github.com/riverline-io/streamready-go/provision"
)

type Client struct {
	api    provision.StreamAPI
	logger *slog.Logger
	tracer trace.Tracer
	// clock drives deadlines and the waits between state checks, it is
	// replaced with a managed clock in tests.
	clock clock.Clock
}

func New(api provision.StreamAPI, logger *slog.Logger, clk clock.Clock) *Client {
	tracer := otel.Tracer("streamready-go/provision")

	return &Client{
		api:    api,
		logger: logger,
		tracer: tracer,
		clock:  clk,
	}
}

var _ provision.Client = (*Client)(nil)
