package handlers

import (
	"context"
	"sync"

	effectmodel "github.com/on-the-ground/fracdiff/effects/internal/model"
)

// WorkerDispatcher routes a message to the channel of the worker that owns it.
type WorkerDispatcher[T any] interface {
	GetChannelOf(msg T) chan T
	// Done is closed once the workers have been told to stop.
	Done() <-chan struct{}
	// Wait blocks until every worker has drained its queue and exited.
	Wait()
}

// --- single queue ---

type singleQueue[T any] struct {
	effectCh chan T
	done     <-chan struct{}
	exited   *sync.WaitGroup
}

func (q singleQueue[T]) GetChannelOf(_ T) chan T {
	return q.effectCh
}

func (q singleQueue[T]) Done() <-chan struct{} {
	return q.done
}

func (q singleQueue[T]) Wait() {
	q.exited.Wait()
}

// NewSingleQueue starts one worker draining a buffered channel until ctx is done.
func NewSingleQueue[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	ready := sync.WaitGroup{}
	exited := &sync.WaitGroup{}
	ready.Add(1)
	exited.Add(1)
	ch := make(chan T, bufferSize)
	go serve(ctx, ch, handleFn, &ready, exited)
	ready.Wait()
	return singleQueue[T]{effectCh: ch, done: ctx.Done(), exited: exited}
}

// --- partitioned queue ---

type partitionedQueue[T effectmodel.Partitionable] struct {
	effectChs []chan T
	done      <-chan struct{}
	exited    *sync.WaitGroup
}

func (pq partitionedQueue[T]) GetChannelOf(msg T) chan T {
	return pq.effectChs[getIndexByHash(msg, len(pq.effectChs))]
}

func (pq partitionedQueue[T]) Done() <-chan struct{} {
	return pq.done
}

func (pq partitionedQueue[T]) Wait() {
	pq.exited.Wait()
}

// NewPartitionedQueue starts numWorkers workers. Messages with the same
// PartitionKey always reach the same worker, so they are handled in order.
func NewPartitionedQueue[T effectmodel.Partitionable](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	channels := make([]chan T, numWorkers)
	ready := sync.WaitGroup{}
	exited := &sync.WaitGroup{}
	for i := range channels {
		ready.Add(1)
		exited.Add(1)
		channels[i] = make(chan T, bufferSize)
		go serve(ctx, channels[i], handleFn, &ready, exited)
	}
	ready.Wait()
	return partitionedQueue[T]{effectChs: channels, done: ctx.Done(), exited: exited}
}

// serve is the worker loop. Once ctx is done the worker handles whatever is
// still buffered and returns. ch is never closed: senders own it and stop
// sending once Done is closed.
func serve[T any](
	ctx context.Context,
	ch chan T,
	handleFn func(context.Context, T),
	ready, exited *sync.WaitGroup,
) {
	defer exited.Done()
	ready.Done()
	for {
		select {
		case msg := <-ch:
			handleFn(ctx, msg)
		case <-ctx.Done():
			for {
				select {
				case msg := <-ch:
					handleFn(ctx, msg)
				default:
					return
				}
			}
		}
	}
}
