package scheduler

import "context"

type indexed struct {
	i int
	r Result[any]
}

// WaitAll waits for every future and returns their data in submission order.
// The first error stops the remaining futures and is returned without partial data.
// Every future is stopped on return.
func WaitAll(ctx context.Context, futures ...*Future[Result[any]]) ([]any, error) {
	results := make(chan indexed, len(futures))
	for i, f := range futures {
		go func() {
			results <- indexed{i: i, r: <-f.C()}
		}()
	}

	stopAll := func() {
		for _, f := range futures {
			f.Stop()
		}
	}
	defer stopAll()

	out := make([]any, len(futures))
	for range futures {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-results:
			data, err := res.r.Unwrap()
			if err != nil {
				return nil, err
			}
			out[res.i] = data
		}
	}
	return out, nil
}
