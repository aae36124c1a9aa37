package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/21f1001434/Agentic-AI/internal/models"
)

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

type workRequest[T any] struct {
	fn  Work[T]
	c   chan models.Result[T]
	ctx context.Context
}

type worker struct {
	done chan any
	wg   *sync.WaitGroup
}

func work[T any](w worker, r workRequest[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			r.c <- models.Result[T]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
		w.done <- struct{}{}
		w.wg.Done()
	}()

	v, err := r.fn(r.ctx)
	r.c <- models.Result[T]{Data: v, Err: err}
}

// Scheduler runs submitted work on a fixed number of workers. Work beyond the
// worker count waits in a FIFO queue.
type Scheduler[T any] struct {
	workers    *queue[worker]
	workQueue  *queue[workRequest[T]]
	close      chan any
	done       chan any
	stopped    chan any
	work       chan workRequest[T]
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewScheduler[T any](nbWorkers int) *Scheduler[T] {
	if nbWorkers < 1 {
		nbWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler[T]{
		workers:    &queue[worker]{},
		workQueue:  &queue[workRequest[T]]{},
		close:      make(chan any),
		done:       make(chan any, nbWorkers),
		stopped:    make(chan any),
		work:       make(chan workRequest[T]),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range nbWorkers {
		s.workers.Push(worker{done: s.done, wg: &s.wg})
	}
	go s.run()
	return s
}

// AddWork queues w and returns a future for its result. Once the scheduler is
// closed the future resolves immediately with context.Canceled.
func (s *Scheduler[T]) AddWork(w Work[T]) *models.Future[models.Result[T]] {
	c := make(chan models.Result[T], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	select {
	case <-s.mainCtx.Done():
		c <- models.Result[T]{Err: context.Canceled}
	case s.work <- workRequest[T]{w, c, ctx}:
	}

	return models.NewFuture(c, cancel)
}

// Close cancels running work, fails queued work and waits for workers to return.
func (s *Scheduler[T]) Close() {
	s.once.Do(func() {
		s.mainCancel()
		s.close <- struct{}{}
		<-s.stopped
	})
}

func (s *Scheduler[T]) run() {
	defer close(s.stopped)
	for {
		select {
		case w := <-s.work:
			s.workQueue.Push(w)
			s.dispatch()
		case <-s.done:
			s.workers.Push(worker{done: s.done, wg: &s.wg})
			s.dispatch()
		case <-s.close:
			for s.workQueue.Len() > 0 {
				r := s.workQueue.Pop()
				r.c <- models.Result[T]{Err: context.Canceled}
			}
			s.wg.Wait()
			return
		}
	}
}

// dispatch drains the workQueue as much as possible
// based on available workers. Requests canceled while queued are resolved
// without taking a worker.
func (s *Scheduler[T]) dispatch() {
	for s.workers.Len() > 0 && s.workQueue.Len() > 0 {
		r := s.workQueue.Pop()
		if err := r.ctx.Err(); err != nil {
			r.c <- models.Result[T]{Err: err}
			continue
		}
		w := s.workers.Pop()
		s.wg.Add(1)
		go work(w, r)
	}
}
