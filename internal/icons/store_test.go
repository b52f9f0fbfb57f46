package icons_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"emblem/internal/icons"
	"emblem/internal/testsupport"
)

func TestAddAndListRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record, err := store.Add(ctx, testsupport.Assets(t), "team logo")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if record.ID == "" {
		t.Fatal("expected a synthesized id")
	}
	if record.CreatedAt.IsZero() {
		t.Fatal("expected a timestamp")
	}

	state, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(state.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(state.Records))
	}
	got := state.Records[0]
	if got.ID != record.ID || got.Name != "team logo" {
		t.Fatalf("unexpected record: %#v", got)
	}
	if err := icons.CheckSizes(got.Sizes); err != nil {
		t.Fatalf("persisted record has incomplete sizes: %v", err)
	}
	if state.Active != icons.DefaultSelection {
		t.Fatalf("fresh store should have default selection, got %q", state.Active)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		if _, err := store.Add(ctx, testsupport.Assets(t), name); err != nil {
			t.Fatalf("Add %q failed: %v", name, err)
		}
	}

	state, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i, name := range names {
		if state.Records[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, state.Records[i].Name)
		}
	}
}

func TestAddEnforcesCapacity(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMaxIcons(10))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := store.Add(ctx, testsupport.Assets(t), fmt.Sprintf("icon-%d", i)); err != nil {
			t.Fatalf("Add %d failed: %v", i, err)
		}
	}

	_, err := store.Add(ctx, testsupport.Assets(t), "one too many")
	var capErr *icons.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}

	state, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(state.Records) != 10 {
		t.Fatalf("collection should remain at 10, got %d", len(state.Records))
	}
}

func TestAddRejectsIncompleteSizes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	assets := testsupport.Assets(t)
	delete(assets.Sizes, 48)

	if _, err := store.Add(ctx, assets, "partial"); err == nil {
		t.Fatal("expected incomplete size set to be rejected")
	}

	state, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(state.Records) != 0 {
		t.Fatal("rejected add must not persist anything")
	}
}

func TestSetActiveAndBack(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record, err := store.Add(ctx, testsupport.Assets(t), "logo")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.SetActive(ctx, record.ID); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	state, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if state.Active != record.ID {
		t.Fatalf("expected active %q, got %q", record.ID, state.Active)
	}
	if state.ActiveRecord() == nil {
		t.Fatal("ActiveRecord should resolve the selected record")
	}

	if err := store.SetActive(ctx, icons.DefaultSelection); err != nil {
		t.Fatalf("SetActive(default) failed: %v", err)
	}
	state, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if state.Active != icons.DefaultSelection {
		t.Fatalf("expected default selection, got %q", state.Active)
	}
}

func TestSetActiveUnknownID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.SetActive(context.Background(), "no-such-id")
	var notFound *icons.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSetActiveIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record, err := store.Add(ctx, testsupport.Assets(t), "logo")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.SetActive(ctx, record.ID); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	before, err := store.Revision(ctx)
	if err != nil {
		t.Fatalf("Revision failed: %v", err)
	}

	if err := store.SetActive(ctx, record.ID); err != nil {
		t.Fatalf("repeated SetActive failed: %v", err)
	}

	after, err := store.Revision(ctx)
	if err != nil {
		t.Fatalf("Revision failed: %v", err)
	}
	if before != after {
		t.Fatalf("idempotent SetActive must not change the revision: %d -> %d", before, after)
	}
}

func TestRemoveActiveResetsSelection(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record, err := store.Add(ctx, testsupport.Assets(t), "logo")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.SetActive(ctx, record.ID); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	if err := store.Remove(ctx, record.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	state, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(state.Records) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(state.Records))
	}
	if state.Active != icons.DefaultSelection {
		t.Fatalf("removing the active icon must reset the selection, got %q", state.Active)
	}
}

func TestRemoveUnknownID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.Remove(context.Background(), "missing")
	var notFound *icons.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestConcurrentAddAndRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	active, err := store.Add(ctx, testsupport.Assets(t), "active")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.SetActive(ctx, active.ID); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs <- store.Remove(ctx, active.ID)
	}()
	go func() {
		defer wg.Done()
		_, err := store.Add(ctx, testsupport.Assets(t), "new icon")
		errs <- err
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent mutation failed: %v", err)
		}
	}

	state, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(state.Records) != 1 {
		t.Fatalf("expected exactly the added record to remain, got %d", len(state.Records))
	}
	if state.Records[0].Name != "new icon" {
		t.Fatalf("unexpected surviving record: %#v", state.Records[0])
	}
	if state.Active != icons.DefaultSelection {
		t.Fatalf("active selection must not dangle, got %q", state.Active)
	}
}

type recordingNotifier struct {
	mu     sync.Mutex
	states []icons.CollectionState
}

func (n *recordingNotifier) Publish(state icons.CollectionState) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.states = append(n.states, state)
}

func (n *recordingNotifier) snapshot() []icons.CollectionState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]icons.CollectionState{}, n.states...)
}

func TestMutationsPublishMonotonicRevisions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	notifier := &recordingNotifier{}
	store.SetNotifier(notifier)
	ctx := context.Background()

	record, err := store.Add(ctx, testsupport.Assets(t), "logo")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.SetActive(ctx, record.ID); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if err := store.Remove(ctx, record.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	states := notifier.snapshot()
	if len(states) != 3 {
		t.Fatalf("expected 3 published states, got %d", len(states))
	}
	for i := 1; i < len(states); i++ {
		if states[i].Revision <= states[i-1].Revision {
			t.Fatalf("revisions must increase: %d then %d", states[i-1].Revision, states[i].Revision)
		}
	}
	final := states[len(states)-1]
	if len(final.Records) != 0 || final.Active != icons.DefaultSelection {
		t.Fatalf("unexpected final state: %#v", final)
	}
}

type recordingApplier struct {
	mu      sync.Mutex
	applied []string
}

func (a *recordingApplier) Apply(_ context.Context, record *icons.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if record == nil {
		a.applied = append(a.applied, icons.DefaultSelection)
	} else {
		a.applied = append(a.applied, record.ID)
	}
	return nil
}

func TestApplierDrivenBySelectionChanges(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	applier := &recordingApplier{}
	store.SetApplier(applier)
	ctx := context.Background()

	record, err := store.Add(ctx, testsupport.Assets(t), "logo")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(applier.applied) != 0 {
		t.Fatal("Add must not touch the applier")
	}

	if err := store.SetActive(ctx, record.ID); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if err := store.Remove(ctx, record.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	want := []string{record.ID, icons.DefaultSelection}
	if len(applier.applied) != len(want) {
		t.Fatalf("expected applies %v, got %v", want, applier.applied)
	}
	for i := range want {
		if applier.applied[i] != want[i] {
			t.Fatalf("apply %d: expected %q, got %q", i, want[i], applier.applied[i])
		}
	}
}
