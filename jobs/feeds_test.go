package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeImporter struct {
	mu      sync.Mutex
	results map[string]int
	calls   []string
	block   chan struct{}
}

func (f *fakeImporter) Import(_ context.Context, url string) (int, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	n, ok := f.results[url]
	if !ok {
		return 0, errors.New("feed unavailable")
	}
	return n, nil
}

func TestRunOnce(t *testing.T) {
	tests := []struct {
		name    string
		urls    []string
		want    int
		wantErr bool
	}{
		{name: "all succeed", urls: []string{"a", "b"}, want: 5},
		{name: "partial failure", urls: []string{"a", "missing"}, want: 2},
		{name: "all fail", urls: []string{"x", "y"}, want: 0, wantErr: true},
		{name: "no feeds", urls: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := &fakeImporter{results: map[string]int{"a": 2, "b": 3}}
			got, err := NewFeedScheduler(imp, tt.urls).RunOnce(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("imported = %d, want %d", got, tt.want)
			}
			if len(imp.calls) != len(tt.urls) {
				t.Errorf("calls = %v", imp.calls)
			}
		})
	}
}

func TestRunOnceRejectsOverlap(t *testing.T) {
	imp := &fakeImporter{results: map[string]int{"a": 1}, block: make(chan struct{})}
	s := NewFeedScheduler(imp, []string{"a"})

	go s.RunOnce(context.Background())

	deadline := time.Now().Add(time.Second)
	for {
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if running || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := s.RunOnce(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	close(imp.block)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewFeedScheduler(&fakeImporter{}, nil)
	if err := s.Start("not a schedule"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
	if err := s.Start("@hourly"); err != nil {
		t.Fatalf("Start(@hourly): %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestStopWaitsForRunningImport(t *testing.T) {
	imp := &fakeImporter{results: map[string]int{"a": 1}, block: make(chan struct{})}
	s := NewFeedScheduler(imp, []string{"a"})
	if err := s.Start("@every 1s"); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if running {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("cron never started an import")
		}
		time.Sleep(10 * time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := s.Stop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Stop during import: got %v, want deadline exceeded", err)
	}

	close(imp.block)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop after import: %v", err)
	}
}
