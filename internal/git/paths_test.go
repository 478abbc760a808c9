package git

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func showArgs(sha string) []string {
	return []string{"show", "-m", "--no-color", "--name-only", "--pretty=format:", sha, "--"}
}

func TestPathResolver_ChangedPaths(t *testing.T) {
	t.Run("single parent", func(t *testing.T) {
		cmd := NewMockCommander().On("\nsrc/a.go\ndocs/readme.md\n", showArgs("abc1234")...)

		paths, err := NewPathResolver(cmd, 2).ChangedPaths(context.Background(), "abc1234").Wait()
		if err != nil {
			t.Fatalf("ChangedPaths: %v", err)
		}
		want := []string{"src/a.go", "docs/readme.md"}
		if !reflect.DeepEqual(paths, want) {
			t.Fatalf("ChangedPaths = %q, want %q", paths, want)
		}
	})

	t.Run("merge commit unions every parent", func(t *testing.T) {
		// One name list per parent: x.txt differs from the first parent,
		// y.txt only from the second.
		out := "x.txt\nshared.txt\n\ny.txt\nshared.txt\n"
		cmd := NewMockCommander().On(out, showArgs("m3rge00")...)

		paths, err := NewPathResolver(cmd, 2).ChangedPaths(context.Background(), "m3rge00").Wait()
		if err != nil {
			t.Fatalf("ChangedPaths: %v", err)
		}
		want := []string{"x.txt", "shared.txt", "y.txt"}
		if !reflect.DeepEqual(paths, want) {
			t.Fatalf("ChangedPaths = %q, want %q", paths, want)
		}
	})

	t.Run("empty commit", func(t *testing.T) {
		cmd := NewMockCommander().On("", showArgs("e000000")...)

		paths, err := NewPathResolver(cmd, 2).ChangedPaths(context.Background(), "e000000").Wait()
		if err != nil {
			t.Fatalf("ChangedPaths: %v", err)
		}
		if len(paths) != 0 {
			t.Fatalf("ChangedPaths = %q, want none", paths)
		}
	})

	t.Run("unknown sha", func(t *testing.T) {
		cmd := NewMockCommander().Fail(&CommandError{ExitCode: 128, Stderr: "fatal: bad object nope"}, showArgs("nope")...)

		_, err := NewPathResolver(cmd, 2).ChangedPaths(context.Background(), "nope").Wait()
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("ChangedPaths error = %v, want CommandError", err)
		}
	})

	t.Run("option-like sha", func(t *testing.T) {
		cmd := NewMockCommander()

		f := NewPathResolver(cmd, 2).ChangedPaths(context.Background(), "--output=x")
		select {
		case <-f.Done():
		default:
			t.Fatal("expected an already resolved future")
		}
		if _, err := f.Wait(); !errors.Is(err, ErrInvalidReference) {
			t.Fatalf("ChangedPaths error = %v, want ErrInvalidReference", err)
		}
	})
}

func TestPathResolver_ResolveAll(t *testing.T) {
	cmd := NewMockCommander()
	shas := make([]string, 10)
	for i := range shas {
		shas[i] = fmt.Sprintf("%07d", i)
		cmd.On(fmt.Sprintf("file%d.go", i), showArgs(shas[i])...)
	}

	results, err := NewPathResolver(cmd, 3).ResolveAll(context.Background(), shas)
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	if len(results) != len(shas) {
		t.Fatalf("results = %d, want %d", len(results), len(shas))
	}
	for i, sha := range shas {
		want := []string{fmt.Sprintf("file%d.go", i)}
		if !reflect.DeepEqual(results[sha], want) {
			t.Errorf("results[%s] = %q, want %q", sha, results[sha], want)
		}
	}
}

func TestPathResolver_ResolveAll_Error(t *testing.T) {
	cmd := NewMockCommander().
		On("a.go", showArgs("0000001")...).
		Fail(&CommandError{ExitCode: 128, Stderr: "fatal: bad object"}, showArgs("0000002")...)

	_, err := NewPathResolver(cmd, 2).ResolveAll(context.Background(), []string{"0000001", "0000002"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// blockingCommander records how many invocations run at once.
type blockingCommander struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	release  chan struct{}
	started  sync.WaitGroup
}

func (b *blockingCommander) Run(ctx context.Context, args ...string) (string, error) {
	n := b.inFlight.Add(1)
	defer b.inFlight.Add(-1)
	for {
		m := b.maxSeen.Load()
		if n <= m || b.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	b.started.Done()
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "path.go", nil
}

func TestPathResolver_BoundsConcurrency(t *testing.T) {
	const limit = 2
	b := &blockingCommander{release: make(chan struct{})}
	b.started.Add(limit)

	resolver := NewPathResolver(b, limit)
	futures := make([]*Future[[]string], 6)
	for i := range futures {
		futures[i] = resolver.ChangedPaths(context.Background(), fmt.Sprintf("%07d", i))
	}

	// ChangedPaths must not block the caller; wait until the limit is saturated.
	b.started.Wait()
	time.Sleep(20 * time.Millisecond)
	if got := b.inFlight.Load(); got != limit {
		t.Fatalf("in flight = %d, want %d", got, limit)
	}

	b.started.Add(len(futures) - limit)
	close(b.release)
	for i, f := range futures {
		if _, err := f.Wait(); err != nil {
			t.Fatalf("future %d: %v", i, err)
		}
	}
	if got := b.maxSeen.Load(); got > limit {
		t.Fatalf("max in flight = %d, want <= %d", got, limit)
	}
}
