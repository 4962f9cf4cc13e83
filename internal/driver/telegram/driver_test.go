package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func rawUpdates(count int) <-chan RawUpdate {
	updates := make(chan RawUpdate, count)
	for index := 0; index < count; index++ {
		updates <- RawUpdate{Sequence: index, Data: []byte(`{}`)}
	}
	close(updates)

	return updates
}

func TestDriverStartBatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		count     int
		batchSize int
		want      []int
	}{
		{name: "exact batches", count: 4, batchSize: 2, want: []int{2, 2}},
		{name: "partial tail", count: 5, batchSize: 2, want: []int{2, 2, 1}},
		{name: "single batch", count: 3, batchSize: 10, want: []int{3}},
		{name: "empty input", count: 0, batchSize: 10, want: nil},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			driver, err := NewDriver(ChannelSource{Updates: rawUpdates(testCase.count)}, WithBatchSize(testCase.batchSize))
			if err != nil {
				t.Fatalf("NewDriver failed: %v", err)
			}

			var sizes []int
			next := 0
			err = driver.Start(context.Background(), func(_ context.Context, batch []RawUpdate) error {
				sizes = append(sizes, len(batch))
				for _, update := range batch {
					if update.Sequence != next {
						t.Fatalf("sequence = %d, want %d", update.Sequence, next)
					}
					next++
				}
				return nil
			})
			if err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			if len(sizes) != len(testCase.want) {
				t.Fatalf("batches = %v, want %v", sizes, testCase.want)
			}
			for index := range sizes {
				if sizes[index] != testCase.want[index] {
					t.Fatalf("batches = %v, want %v", sizes, testCase.want)
				}
			}
		})
	}
}

func TestDriverStartHandlerFailure(t *testing.T) {
	t.Parallel()

	var reported []error
	driver, err := NewDriver(
		ChannelSource{Updates: rawUpdates(3)},
		WithName("input"),
		WithBatchSize(1),
		WithErrorHandler(func(_ context.Context, err error) { reported = append(reported, err) }),
	)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	sentinel := errors.New("sink down")
	err = driver.Start(context.Background(), func(context.Context, []RawUpdate) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("error = %v, want %v", err, sentinel)
	}
	if !strings.Contains(err.Error(), "start input driver") {
		t.Fatalf("error = %v, want driver name", err)
	}
	if len(reported) != 1 {
		t.Fatalf("reported = %d, want 1", len(reported))
	}
}

func TestDriverStartRecoversPanic(t *testing.T) {
	t.Parallel()

	driver, err := NewDriver(ChannelSource{Updates: rawUpdates(1)})
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	err = driver.Start(context.Background(), func(context.Context, []RawUpdate) error { panic("boom") })
	if err == nil || !strings.Contains(err.Error(), "panic: boom") {
		t.Fatalf("error = %v, want recovered panic", err)
	}
}

func TestDriverStartCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver, err := NewDriver(ChannelSource{Updates: make(chan RawUpdate)})
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	called := false
	if err := driver.Start(ctx, func(context.Context, []RawUpdate) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("Start error = %v, want nil on cancellation", err)
	}
	if called {
		t.Fatal("handler called after cancellation")
	}
}

func TestNewDriverValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewDriver(nil); err == nil {
		t.Fatal("expected nil source error")
	}

	driver, err := NewDriver(ChannelSource{Updates: rawUpdates(0)}, WithBatchSize(-3))
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	if driver.BatchSize() != defaultBatchSize || driver.Name() != DriverType {
		t.Fatalf("driver = (%s,%d), want defaults", driver.Name(), driver.BatchSize())
	}
	if err := driver.Start(context.Background(), nil); err == nil {
		t.Fatal("expected nil handler error")
	}
}
