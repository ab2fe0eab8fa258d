package pipeline

import (
	"fmt"
	"runtime"
	"sync"
)

// Sink is one independent output of a finished run.
type Sink struct {
	Name  string
	Write func() error
}

// Emit runs every sink on a bounded worker pool and collects the failures.
// Sinks share no state, so their order is irrelevant.
func Emit(sinks []Sink, workers int) []error {
	if len(sinks) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	jobs := make(chan Sink)
	errs := make(chan error, len(sinks))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				if err := s.Write(); err != nil {
					errs <- fmt.Errorf("%s: %w", s.Name, err)
				}
			}
		}()
	}

	for _, s := range sinks {
		jobs <- s
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}
