// Package scheduler implements a bounded worker pool that returns typed futures.
//
// The HTTP handlers submit one pipeline run per request; the pool caps how many
// runs execute at once. A run itself is never split across workers.
//
// # Architecture Overview
//
//	AddWork(fn) ──► work chan ──► run() event loop
//	                                 │
//	                   ┌─────────────┴─────────────┐
//	                   │   FIFO work queue         │
//	                   └─────────────┬─────────────┘
//	                           dispatch()
//	         ┌───────────────────────┼───────────────────────┐
//	         ▼                       ▼                       ▼
//	     worker 1                worker 2                worker N
//	         │                       │                       │
//	         └──── done chan ────────┴──── returns to pool ──┘
//
// # Types
//
//	┌──────────────────────────┬──────────────────────────────────────────┐
//	│ Type                     │ Role                                     │
//	├──────────────────────────┼──────────────────────────────────────────┤
//	│ Scheduler[T]             │ pool of N workers, queue, event loop     │
//	│ Work[T]                  │ func(ctx) (T, error)                     │
//	│ models.Future[Result[T]] │ result channel plus cancel               │
//	│ models.Result[T]         │ Data T, Err error                        │
//	└──────────────────────────┴──────────────────────────────────────────┘
//
// # Cancellation
//
// Every request gets a context derived from the scheduler's main context.
// Future.Stop and Future.Wait both cancel that context: Wait releases it once
// the result arrives and cancels the work when the caller's context ends
// first. A request canceled while still queued is resolved
// with the context error without occupying a worker.
//
// Panics inside work are recovered and delivered as errors.
//
// # Shutdown
//
// Close is idempotent:
//
//  1. cancels the main context (running work sees ctx.Done())
//  2. resolves queued requests with context.Canceled
//  3. waits for running workers to return
//
// AddWork after Close returns a future already resolved with context.Canceled.
//
// # Usage
//
//	s := scheduler.NewScheduler[*models.PipelineResult](cfg.Server.NumWorkers)
//	defer s.Close()
//
//	future := s.AddWork(func(ctx context.Context) (*models.PipelineResult, error) {
//	    return pipeline.Run(ctx, req)
//	})
//	result, err := future.Wait(c.Request.Context())
package scheduler
