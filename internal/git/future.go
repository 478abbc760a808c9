package git

// Future is the handle of a result computed on another goroutine.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Async starts fn on a new goroutine and returns a handle to its result.
func Async[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// Resolved returns a future that has already completed.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value, err: err}
	close(f.done)
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available and returns it.
// It may be called any number of times from any goroutine.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}
