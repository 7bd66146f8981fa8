// Package scheduler implements a worker pool for executing async work with futures.
//
// The migrator uses it to fetch attachment metadata for test cases, test steps
// and test executions concurrently, then joins the three results with WaitAll.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                           Scheduler                                 │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   Worker 1   │      │   Worker 2   │      │   Worker N   │       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲                     ▲                     ▲               │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                        ┌──────┴──────┐                              │
//	│                        │  dispatch() │                              │
//	│                        └──────┬──────┘                              │
//	│  ┌────────────────────────────┴────────────────────────────┐        │
//	│  │                       workQueue                         │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                        AddWork(fn)                                  │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Work Execution Flow
//
//  1. AddWork(fn) wraps fn with a result channel (buffered, size 1) and a
//     context derived from the scheduler context, and hands it to the loop.
//  2. run() pushes the request on the workQueue and calls dispatch(), which
//     pairs available workers with queued requests.
//  3. A worker runs fn(ctx), sends Result{Data, Err} on the channel and
//     signals run() through the done channel so a new worker is
//     pushed back to the pool.
//  4. The caller receives the result via future.C().
//
// Panics inside fn are recovered and delivered as an error result.
//
// # Joining futures
//
// WaitAll blocks until every future delivered a result. The data is returned
// in submission order. The first error stops every future and is returned
// alone:
//
//	cases := s.AddWork(fetchCases)
//	steps := s.AddWork(fetchSteps)
//	execs := s.AddWork(fetchExecutions)
//
//	out, err := scheduler.WaitAll(ctx, cases, steps, execs)
//	if err != nil {
//	    return err // nothing is exported
//	}
//
// # Cancellation
//
//   - future.Stop() cancels the context of a single work
//   - scheduler.Close() cancels every context, waits for in-flight work and
//     makes later AddWork calls resolve with context.Canceled
package scheduler
