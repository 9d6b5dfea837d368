package sqlite_test

import (
	"context"
	"sync"
	"testing"

	"github.com/example/hive/internal/adapters/sqlite"
)

func TestSequenceRepository_Next(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSequenceRepository(db)
	ctx := context.Background()

	t.Run("starts at one and increments", func(t *testing.T) {
		for want := int64(1); want <= 3; want++ {
			got, err := repo.Next(ctx, "MSG-M")
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if got != want {
				t.Errorf("Next = %d, want %d", got, want)
			}
		}
	})

	t.Run("counters are independent per name", func(t *testing.T) {
		got, err := repo.Next(ctx, "MSG-C")
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if got != 1 {
			t.Errorf("Next(MSG-C) = %d, want 1 (MSG-M increments must not leak)", got)
		}

		got, err = repo.Next(ctx, "CONV")
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if got != 1 {
			t.Errorf("Next(CONV) = %d, want 1", got)
		}
	})
}

func TestSequenceRepository_Current(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSequenceRepository(db)
	ctx := context.Background()

	t.Run("zero for an unused counter", func(t *testing.T) {
		got, err := repo.Current(ctx, "DISC")
		if err != nil {
			t.Fatalf("Current failed: %v", err)
		}
		if got != 0 {
			t.Errorf("Current = %d, want 0", got)
		}
	})

	t.Run("reflects allocations without consuming", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			if _, err := repo.Next(ctx, "DISC"); err != nil {
				t.Fatalf("Next failed: %v", err)
			}
		}
		for i := 0; i < 2; i++ {
			got, err := repo.Current(ctx, "DISC")
			if err != nil {
				t.Fatalf("Current failed: %v", err)
			}
			if got != 4 {
				t.Errorf("Current = %d, want 4", got)
			}
		}
	})
}

func TestSequenceRepository_ConcurrentAllocations(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSequenceRepository(db)
	ctx := context.Background()

	const workers = 8
	const perWorker = 5

	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				value, err := repo.Next(ctx, "MSG-H")
				if err != nil {
					t.Errorf("Next failed: %v", err)
					return
				}
				mu.Lock()
				if seen[value] {
					t.Errorf("value %d allocated twice", value)
				}
				seen[value] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("allocated %d distinct values, want %d", len(seen), workers*perWorker)
	}
	current, err := repo.Current(ctx, "MSG-H")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current != int64(workers*perWorker) {
		t.Errorf("Current = %d, want %d", current, workers*perWorker)
	}
}
