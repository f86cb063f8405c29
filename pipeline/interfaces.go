package pipeline

import "context"

// Source should be implemented by types that feed payloads into a Pipeline.
type Source interface {
	// Next loads the next available payload from the source and returns true.
	// When no more payloads are available or an error occurs, calls to Next
	// return false.
	Next(context.Context) bool

	// Payload returns the payload loaded by the last call to Next.
	Payload() Payload

	// Error returns the last error encountered by the source.
	Error() error
}

// Payload should be implemented by types that travel through a pipeline.
type Payload interface {
	// MarkAsProcessed is invoked once the payload either reaches the sink
	// or gets discarded by one of the stages.
	MarkAsProcessed()
}

// Processor should be implemented by types that process payloads for a
// pipeline stage. Returning a nil payload drops it: it is marked as processed
// and never reaches the next stage.
type Processor interface {
	Process(context.Context, Payload) (Payload, error)
}

// ProcessorFunc is an adapter that allows the use of plain functions as
// Processor instances.
type ProcessorFunc func(context.Context, Payload) (Payload, error)

// Process calls f(ctx, p).
func (f ProcessorFunc) Process(ctx context.Context, p Payload) (Payload, error) {
	return f(ctx, p)
}

// StageRunner should be implemented by types that can be strung together to
// form a multi-stage pipeline.
type StageRunner interface {
	// Run blocks until the stage input channel is closed, the context
	// expires or an error occurs while processing payloads.
	Run(context.Context, StageParams)
}

// StageParams encapsulates the channels and position of a single stage.
type StageParams interface {
	// StageIndex returns the position of this stage in the pipeline.
	StageIndex() int

	// Input returns the channel the stage reads payloads from.
	Input() <-chan Payload

	// Output returns the channel the stage writes processed payloads to.
	Output() chan<- Payload

	// Error returns the channel the stage reports errors to.
	Error() chan<- error
}

// Sink should be implemented by types that consume the payloads emitted by
// the last stage of a pipeline.
type Sink interface {
	Consume(context.Context, Payload) error
}
