package kinesis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/riverline-io/streamready-go/delays"
	"github.com/riverline-io/streamready-go/provision"
)

func (c *Client) EnsureStreamReady(ctx context.Context, name string, shardCount int32, opts ...provision.Option) error {
	resolvedOpts := &provision.Options{}
	for _, opt := range opts {
		if err := opt(resolvedOpts); err != nil {
			return err
		}
	}

	if strings.TrimSpace(name) == "" {
		return provision.ErrNameRequired
	}

	if shardCount < 1 {
		return provision.ErrShardCountInvalid
	}

	if resolvedOpts.Timeout == 0 {
		resolvedOpts.Timeout = provision.DefaultTimeout
	}

	if resolvedOpts.PollDelay == nil {
		resolvedOpts.PollDelay = delays.Constant(provision.DefaultPollInterval)
	}

	if resolvedOpts.CreateBackoff == nil {
		resolvedOpts.CreateBackoff = &backoff.StopBackOff{}
	}

	return c.ensureStreamReady(ctx, name, shardCount, resolvedOpts)
}

func (c *Client) ensureStreamReady(ctx context.Context, name string, shardCount int32, opts *provision.Options) error {
	ctx, span := c.tracer.Start(
		ctx,
		"streamready.EnsureStreamReady",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.MessagingSystemKey.String("aws_kinesis"),
			attribute.String("stream", name),
			attribute.Int("shards", int(shardCount)),
		),
	)
	defer span.End()

	// The deadline is absolute, every wait below is checked against it.
	deadline := c.clock.Now().Add(opts.Timeout)

	status, exists, err := c.streamStatus(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not determine stream state")
		return &provision.LookupError{Stream: name, Err: err}
	}

	if exists {
		switch status {
		case types.StreamStatusActive:
			c.logger.Info("Stream already exists", slog.String("stream", name))
			return nil
		case types.StreamStatusUpdating:
			if !opts.RequireActive {
				c.logger.Info("Stream is being updated", slog.String("stream", name))
				return nil
			}

			c.logger.Info("Stream is being updated, waiting for it to become active", slog.String("stream", name))
		case types.StreamStatusCreating:
			// Creation is already underway, do not issue another create.
			c.logger.Info("Stream is being created", slog.String("stream", name))
		case types.StreamStatusDeleting:
			c.logger.Info("Stream is being deleted, waiting before recreating it", slog.String("stream", name))

			if err := c.waitWhileDeleting(ctx, name, deadline, opts); err != nil {
				span.SetStatus(codes.Unset, "context canceled")
				return err
			}

			_, exists, err = c.streamStatus(ctx, name)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "could not determine stream state")
				return &provision.LookupError{Stream: name, Err: err}
			}

			if exists {
				span.SetStatus(codes.Error, "stream deletion timed out")
				return &provision.DeleteTimeoutError{Stream: name, Timeout: opts.Timeout}
			}

			if err := c.createStream(ctx, name, shardCount, opts); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to create stream")
				return err
			}
		default:
			span.SetStatus(codes.Error, "unsupported stream state")
			return &provision.InvalidStateError{Stream: name, Status: status}
		}
	} else {
		if err := c.createStream(ctx, name, shardCount, opts); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to create stream")
			return err
		}
	}

	if err := c.waitForActive(ctx, name, deadline, opts); err != nil {
		span.SetStatus(codes.Unset, "context canceled")
		return err
	}

	status, exists, err = c.streamStatus(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not determine stream state")
		return &provision.LookupError{Stream: name, Err: err}
	}

	if !exists || status != types.StreamStatusActive {
		span.SetStatus(codes.Error, "stream activation timed out")
		return &provision.ActivationTimeoutError{Stream: name, Timeout: opts.Timeout}
	}

	c.logger.Info("Stream is active", slog.String("stream", name))
	return nil
}

// waitForActive checks the stream on the configured cadence until it is
// reported active or the deadline passes. Failed lookups during the wait
// leave the state unknown for that attempt and the wait continues, the
// caller makes the definitive check afterwards.
func (c *Client) waitForActive(ctx context.Context, name string, deadline time.Time, opts *provision.Options) error {
	attempt := uint(1)
	startTime := c.clock.Now()
	for c.clock.Now().Before(deadline) {
		delay := opts.PollDelay(attempt, startTime)
		if delay == delays.Stop {
			return nil
		}

		if err := c.clock.Sleep(ctx, delay); err != nil {
			return fmt.Errorf("canceled while waiting for stream %s to become active: %w", name, err)
		}

		attempt++

		status, exists, err := c.streamStatus(ctx, name)
		if err != nil {
			c.logger.Debug(
				"Could not check stream state, will retry",
				slog.String("stream", name),
				slog.Any("error", err),
			)
			continue
		}

		if exists && status == types.StreamStatusActive {
			return nil
		}
	}

	return nil
}

// waitWhileDeleting checks the stream on the configured cadence until it no
// longer exists or the deadline passes.
func (c *Client) waitWhileDeleting(ctx context.Context, name string, deadline time.Time, opts *provision.Options) error {
	attempt := uint(1)
	startTime := c.clock.Now()
	for c.clock.Now().Before(deadline) {
		delay := opts.PollDelay(attempt, startTime)
		if delay == delays.Stop {
			return nil
		}

		if err := c.clock.Sleep(ctx, delay); err != nil {
			return fmt.Errorf("canceled while waiting for stream %s to delete: %w", name, err)
		}

		attempt++

		_, exists, err := c.streamStatus(ctx, name)
		if err != nil {
			c.logger.Debug(
				"Could not check stream state, will retry",
				slog.String("stream", name),
				slog.Any("error", err),
			)
			continue
		}

		if !exists {
			return nil
		}
	}

	return nil
}

func (c *Client) createStream(ctx context.Context, name string, shardCount int32, opts *provision.Options) error {
	op := func() error {
		_, err := c.api.CreateStream(ctx, &kinesis.CreateStreamInput{
			StreamName: aws.String(name),
			ShardCount: aws.Int32(shardCount),
		})
		if err == nil {
			return nil
		}

		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			// Another caller created the stream between our describe and
			// create, the wait for active takes over from here.
			c.logger.Debug("Stream creation already underway", slog.String("stream", name))
			return nil
		}

		var throttled *types.LimitExceededException
		if errors.As(err, &throttled) {
			return err
		}

		return backoff.Permanent(err)
	}

	err := backoff.Retry(op, backoff.WithContext(opts.CreateBackoff, ctx))
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", name, err)
	}

	c.logger.Info(
		"Stream is being created",
		slog.String("stream", name),
		slog.Int("shards", int(shardCount)),
	)
	return nil
}

// streamStatus reports the current lifecycle state of a stream, with a
// stream that does not exist reported separately from any state.
func (c *Client) streamStatus(ctx context.Context, name string) (types.StreamStatus, bool, error) {
	out, err := c.api.DescribeStreamSummary(ctx, &kinesis.DescribeStreamSummaryInput{
		StreamName: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", false, nil
		}

		return "", false, err
	}

	return out.StreamDescriptionSummary.StreamStatus, true, nil
}
