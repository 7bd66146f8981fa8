package scheduler_test

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/squad-to-scale-migrator/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("AddWork", func() {
		It("should add work and return a future", func() {
			s = scheduler.NewScheduler(1)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})
			Expect(future).NotTo(BeNil())

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
		})

		It("should report a panicking work as an error", func() {
			s = scheduler.NewScheduler(1)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				panic("boom")
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(ContainSubstring("worker panicked: boom")))
		})
	})

	Describe("Run work", func() {
		It("should execute more work items than workers", func() {
			s = scheduler.NewScheduler(2)

			results := make(chan int, 5)
			for i := range 5 {
				s.AddWork(func(ctx context.Context) (any, error) {
					results <- i
					return i, nil
				})
			}

			Eventually(func() int {
				return len(results)
			}, 2*time.Second, 50*time.Millisecond).Should(Equal(5))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			future := s.AddWork(func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			})

			time.Sleep(50 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when AddWork is called after Close", func() {
			s = scheduler.NewScheduler(1)
			s.Close()

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			s = scheduler.NewScheduler(4)

			for range 100 {
				s.AddWork(func(ctx context.Context) (any, error) {
					<-ctx.Done()
					return nil, ctx.Err()
				})
			}

			time.Sleep(50 * time.Millisecond)
			s.Close()
			s = nil

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})

	Describe("WaitAll", func() {
		// Given three successful works
		// When we wait for all of them
		// Then the data should come back in submission order
		It("should return all results in submission order", func() {
			// Arrange
			s = scheduler.NewScheduler(3)
			slow := s.AddWork(func(ctx context.Context) (any, error) {
				time.Sleep(50 * time.Millisecond)
				return "cases", nil
			})
			mid := s.AddWork(func(ctx context.Context) (any, error) {
				return "steps", nil
			})
			fast := s.AddWork(func(ctx context.Context) (any, error) {
				return "executions", nil
			})

			// Act
			out, err := scheduler.WaitAll(context.Background(), slow, mid, fast)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]any{"cases", "steps", "executions"}))
		})

		// Given one failing work and one long running work
		// When we wait for all of them
		// Then the error should be returned and the long running work cancelled
		It("should fail fast and cancel the remaining work", func() {
			// Arrange
			s = scheduler.NewScheduler(2)
			cancelled := make(chan bool, 1)
			long := s.AddWork(func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "late", nil
				}
			})
			failing := s.AddWork(func(ctx context.Context) (any, error) {
				return nil, errors.New("fetch failed")
			})

			// Act
			out, err := scheduler.WaitAll(context.Background(), long, failing)

			// Assert
			Expect(err).To(MatchError("fetch failed"))
			Expect(out).To(BeNil())
			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		// Given three workers
		// When three blocking works are joined
		// Then they should all be running at the same time
		It("should run one work per worker concurrently", func() {
			s = scheduler.NewScheduler(3)

			var running, peak atomic.Int32
			work := func(ctx context.Context) (any, error) {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				deadline := time.Now().Add(time.Second)
				for peak.Load() < 3 && time.Now().Before(deadline) {
					time.Sleep(5 * time.Millisecond)
				}
				running.Add(-1)
				return n, nil
			}

			out, err := scheduler.WaitAll(context.Background(), s.AddWork(work), s.AddWork(work), s.AddWork(work))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HaveLen(3))
			Expect(peak.Load()).To(Equal(int32(3)))
		})
	})
})
