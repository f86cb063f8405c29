package pipeline_test

import (
	"context"
	"errors"
	"time"

	check "gopkg.in/check.v1"

	"github.com/mycok/uRank/pipeline"
)

var _ = check.Suite(new(stageRunnerTestSuite))

type stageRunnerTestSuite struct{}

func (s *stageRunnerTestSuite) TestFIFO(c *check.C) {
	stages := make([]pipeline.StageRunner, 10)
	for i := 0; i < len(stages); i++ {
		stages[i] = pipeline.NewFIFO(passThroughProcessor())
	}

	src := &sourceStub{data: generatePagePayloads(3)}
	sink := new(sinkStub)

	err := pipeline.New(stages...).Execute(context.TODO(), src, sink)
	c.Assert(err, check.IsNil)
	c.Assert(sink.data, check.DeepEquals, src.data)
	assertAllPayloadsProcessed(c, src.data...)
}

func (s *stageRunnerTestSuite) TestFIFOProcessorError(c *check.C) {
	proc := pipeline.ProcessorFunc(
		func(context.Context, pipeline.Payload) (pipeline.Payload, error) {
			return nil, errors.New("unreadable page")
		})

	src := &sourceStub{data: generatePagePayloads(3)}

	err := pipeline.New(pipeline.NewFIFO(proc)).Execute(context.TODO(), src, new(sinkStub))
	c.Assert(err, check.ErrorMatches, "(?s).*pipeline stage 0: unreadable page.*")
}

func (s *stageRunnerTestSuite) TestFixedWorkerPool(c *check.C) {
	numOfWorkers := 10
	syncChan := make(chan struct{})
	rendezvousChan := make(chan struct{})
	doneChan := make(chan struct{})

	// Block every worker until all of them hold a payload, then drop it.
	proc := pipeline.ProcessorFunc(
		func(context.Context, pipeline.Payload) (pipeline.Payload, error) {
			syncChan <- struct{}{}
			<-rendezvousChan

			return nil, nil
		})

	src := &sourceStub{data: generatePagePayloads(numOfWorkers)}
	p := pipeline.New(pipeline.NewFixedWorkerPool(proc, numOfWorkers))

	go func() {
		err := p.Execute(context.TODO(), src, new(sinkStub))
		c.Check(err, check.IsNil)

		close(doneChan)
	}()

	for i := 0; i < numOfWorkers; i++ {
		select {
		case <-syncChan:
		case <-time.After(10 * time.Second):
			c.Fatalf("timed out waiting for worker %d to reach sync point", i)
		}
	}

	close(rendezvousChan)

	select {
	case <-doneChan:
	case <-time.After(10 * time.Second):
		c.Fatal("timed out waiting for pipeline to complete")
	}

	assertAllPayloadsProcessed(c, src.data...)
}

func (s *stageRunnerTestSuite) TestFixedWorkerPoolPanicsWithoutWorkers(c *check.C) {
	c.Assert(func() {
		pipeline.NewFixedWorkerPool(passThroughProcessor(), 0)
	}, check.PanicMatches, "FixedWorkerPool: numOfWorkers must be > 0")
}

func passThroughProcessor() pipeline.Processor {
	return pipeline.ProcessorFunc(
		func(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
			return p, nil
		})
}
