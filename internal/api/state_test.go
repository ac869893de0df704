package api

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"rentdash/internal/engine"
	"rentdash/internal/models"
)

func newTable(t *testing.T, n int) *engine.Table {
	t.Helper()
	records := make([]models.Record, n)
	for i := range records {
		records[i] = models.Record{
			Geography:      "Toronto, Census metropolitan area (CMA)",
			Province:       "Ontario",
			RentalUnitType: []string{"Room", "Apartment - 1 bedroom", "Apartment - 2 bedrooms"}[i%3],
			Columns:        []string{"Geography", "Province", "Rental unit type", "Q1 2021"},
			Cells:          map[string]string{"Q1 2021": "950"},
		}
	}
	table, err := engine.NewTable(records)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestStoreNotLoaded(t *testing.T) {
	store := NewStore(nil)
	if _, _, err := store.Table(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded, got %v", err)
	}
	if _, err := store.Reload(context.Background()); err == nil {
		t.Error("Expected error without a loader")
	}
}

func TestStoreSetData(t *testing.T) {
	store := NewStore(nil)
	table := newTable(t, 2)

	gen := store.SetData(table)
	got, current, err := store.Table()
	if err != nil {
		t.Fatal(err)
	}
	if got != table || current != gen {
		t.Errorf("Expected generation %d, got %d", gen, current)
	}
}

func TestStorePublishRejectsOlder(t *testing.T) {
	store := NewStore(nil)
	older, newer := newTable(t, 1), newTable(t, 2)

	if !store.publish(2, newer) {
		t.Fatal("Expected generation 2 to publish")
	}
	if store.publish(1, older) {
		t.Error("Expected generation 1 to be rejected")
	}
	got, gen, _ := store.Table()
	if got != newer || gen != 2 {
		t.Errorf("Expected newer table at generation 2, got generation %d", gen)
	}
}

func TestStoreReloadLatestWins(t *testing.T) {
	slow, fast := newTable(t, 1), newTable(t, 3)

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	store := NewStore(func(ctx context.Context) (*engine.Table, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return slow, nil
		}
		return fast, nil
	})

	done := make(chan uint64)
	go func() {
		gen, _ := store.Reload(context.Background())
		done <- gen
	}()
	<-started

	gen2, err := store.Reload(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	close(release)
	gen1 := <-done

	if gen1 != 1 || gen2 != 2 {
		t.Errorf("Expected tickets 1 and 2, got %d and %d", gen1, gen2)
	}
	got, gen, _ := store.Table()
	if got != fast || gen != 2 {
		t.Errorf("Expected the second load to stay published, got generation %d (%d records)", gen, got.Len())
	}
}

func TestStoreReloadError(t *testing.T) {
	boom := errors.New("boom")
	store := NewStore(func(ctx context.Context) (*engine.Table, error) { return nil, boom })
	store.SetData(newTable(t, 1))

	if _, err := store.Reload(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
	if got, _, err := store.Table(); err != nil || got.Len() != 1 {
		t.Error("A failed reload should keep the previous table")
	}
}
