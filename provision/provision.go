package provision

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
)

// Client is used to provision streams and wait for them to become usable.
type Client interface {
	// EnsureStreamReady makes sure that a stream with the given name exists
	// and has reached an operational state, creating it with the given shard
	// count if it is absent.
	//
	// Streams already reported as active are accepted without any further
	// requests, which makes the call safe to repeat. A stream that is being
	// created is waited on instead of being created a second time, and a
	// stream that is being deleted is waited on until the deletion finishes
	// before a fresh stream is created in its place.
	//
	// The call blocks until the stream is ready, the configured timeout
	// elapses or the context is canceled. Waiting is bounded by
	// [DefaultTimeout] unless [WithTimeout] is used, with the stream state
	// checked on a fixed cadence that can be tuned via [WithPollInterval]
	// or [WithPollDelay].
	//
	// Failures are typed so that callers can tell an unrecognized stream
	// state ([InvalidStateError]) apart from a deletion that did not finish
	// in time ([DeleteTimeoutError]) or a stream that never became active
	// ([ActivationTimeoutError]).
	EnsureStreamReady(ctx context.Context, name string, shardCount int32, opts ...Option) error
}

// StreamAPI is the subset of the Kinesis client needed to manage streams.
// It is satisfied by [kinesis.Client] and small enough to fake in tests.
//
// Deletion is deliberately absent: a stream observed in the deleting state
// is waited on, never deleted by this library.
type StreamAPI interface {
	DescribeStreamSummary(ctx context.Context, params *kinesis.DescribeStreamSummaryInput, optFns ...func(*kinesis.Options)) (*kinesis.DescribeStreamSummaryOutput, error)
	CreateStream(ctx context.Context, params *kinesis.CreateStreamInput, optFns ...func(*kinesis.Options)) (*kinesis.CreateStreamOutput, error)
}
