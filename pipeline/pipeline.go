/*
	pipeline package wires a Source, a chain of processing stages and a Sink
	together. Every stage runs in its own goroutine and hands payloads to the
	next stage over an unbuffered channel; Execute exposes the whole thing
	through a synchronous API.
*/

package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Pipeline is a modular, multi-stage payload processor built out of zero or
// more stage runners.
type Pipeline struct {
	stages []StageRunner
}

// New returns a pipeline that sends payloads through stages in order.
func New(stages ...StageRunner) *Pipeline {
	return &Pipeline{stages}
}

// Execute reads all payloads from src, sends them through the pipeline stages
// and hands the results to sink.
//
// Calls to Execute block until:
//   - every payload of src has been consumed by sink or discarded.
//   - any component (source, stage or sink) reports an error.
//   - ctx is cancelled.
//
// Errors from all components are accumulated and returned together. Execute
// may be called concurrently with different sources and sinks.
func (p *Pipeline) Execute(ctx context.Context, src Source, sink Sink) error {
	var wg sync.WaitGroup
	executionCtx, cancel := context.WithCancel(ctx)

	// Channel i feeds stage i; the extra channel connects the last stage
	// (or the source, when there are no stages) to the sink.
	stageChans := make([]chan Payload, len(p.stages)+1)
	for i := 0; i < len(stageChans); i++ {
		stageChans[i] = make(chan Payload)
	}

	// Room for one error per stage plus the source and sink.
	errChan := make(chan error, len(p.stages)+2)

	for i := 0; i < len(p.stages); i++ {
		wg.Add(1)

		go func(index int) {
			defer wg.Done()

			p.stages[index].Run(executionCtx, &stageParams{
				stage:   index,
				inChan:  stageChans[index],
				outChan: stageChans[index+1],
				errChan: errChan,
			})

			// Signal the next stage that no more payloads are coming.
			close(stageChans[index+1])
		}(i)
	}

	wg.Add(2)

	go func() {
		defer wg.Done()

		sourceWorker(executionCtx, src, stageChans[0], errChan)
		close(stageChans[0])
	}()

	go func() {
		defer wg.Done()

		sinkWorker(executionCtx, sink, stageChans[len(stageChans)-1], errChan)
	}()

	go func() {
		wg.Wait()

		close(errChan)
		cancel()
	}()

	var err error
	for stageErr := range errChan {
		err = multierror.Append(err, stageErr)

		// Any error shuts the whole pipeline down.
		cancel()
	}

	return err
}

func sourceWorker(
	ctx context.Context, src Source,
	outChan chan<- Payload, errChan chan<- error,
) {

	for src.Next(ctx) {
		payload := src.Payload()

		select {
		case <-ctx.Done():
			return
		case outChan <- payload:
		}
	}

	if err := src.Error(); err != nil {
		mayEmitError(fmt.Errorf("pipeline source: %w", err), errChan)
	}
}

func sinkWorker(
	ctx context.Context, sink Sink,
	inChan <-chan Payload, errChan chan<- error,
) {

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-inChan:
			if !ok {
				return
			}

			if err := sink.Consume(ctx, payload); err != nil {
				mayEmitError(fmt.Errorf("pipeline sink: %w", err), errChan)

				return
			}

			payload.MarkAsProcessed()
		}
	}
}

// mayEmitError attempts to queue err and drops it if the error channel is
// already full.
func mayEmitError(err error, errChan chan<- error) {
	select {
	case errChan <- err:
	default:
	}
}
