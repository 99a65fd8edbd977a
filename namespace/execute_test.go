package namespace_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/namespace"
	"github.com/mwantia/ossfm/store/ephemeral"
)

var errInjected = errors.New("injected failure")

// faultyStore fails the configured operation and records the context of every call.
type faultyStore struct {
	*ephemeral.EphemeralBackend

	failOn    namespace.Op
	cancel    context.CancelFunc
	contexts  []context.Context
	callOrder []namespace.Op
}

func (fs *faultyStore) record(ctx context.Context, op namespace.Op) error {
	fs.contexts = append(fs.contexts, ctx)
	fs.callOrder = append(fs.callOrder, op)

	// Cancel the caller context once the first step ran
	if fs.cancel != nil {
		fs.cancel()
	}
	if fs.failOn == op {
		return errInjected
	}
	return nil
}

func (fs *faultyStore) Copy(ctx context.Context, dst, src string) error {
	if err := fs.record(ctx, namespace.OpCopy); err != nil {
		return err
	}
	return fs.EphemeralBackend.Copy(context.WithoutCancel(ctx), dst, src)
}

func (fs *faultyStore) Delete(ctx context.Context, key string) error {
	if err := fs.record(ctx, namespace.OpDelete); err != nil {
		return err
	}
	return fs.EphemeralBackend.Delete(ctx, key)
}

type recordingObserver struct {
	plans    map[namespace.Kind]int
	failures int
	steps    map[namespace.Op]int
	partial  int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		plans: make(map[namespace.Kind]int),
		steps: make(map[namespace.Op]int),
	}
}

func (ro *recordingObserver) ObservePlan(kind namespace.Kind, err error) {
	ro.plans[kind]++
	if err != nil {
		ro.failures++
	}
}

func (ro *recordingObserver) ObserveStep(op namespace.Op, err error) {
	ro.steps[op]++
}

func (ro *recordingObserver) ObservePartialMutation(kind namespace.Kind) {
	ro.partial++
}

func TestExecute_Rename(t *testing.T) {
	ctx := t.Context()
	eb := ephemeral.NewEphemeralBackend()

	if err := eb.Put(ctx, "docs/old.txt", []byte("content")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	plan, err := namespace.PlanRename("docs/old.txt", "new.txt")
	if err != nil {
		t.Fatalf("PlanRename failed: %v", err)
	}

	observer := newRecordingObserver()
	if err := namespace.NewExecutor(eb, observer).Execute(ctx, plan); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if _, err := eb.Get(ctx, "docs/old.txt"); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected source to be gone, got %v", err)
	}
	if got, err := eb.Get(ctx, "docs/new.txt"); err != nil || string(got) != "content" {
		t.Errorf("Expected destination content, got %q (%v)", got, err)
	}

	if observer.plans[namespace.KindRename] != 1 || observer.steps[namespace.OpCopy] != 1 || observer.steps[namespace.OpDelete] != 1 {
		t.Errorf("Unexpected observations: %+v", observer)
	}
}

func TestExecute_EmptyPlan(t *testing.T) {
	observer := newRecordingObserver()
	plan, _ := namespace.PlanRename("a.txt", "a.txt")

	if err := namespace.NewExecutor(ephemeral.NewEphemeralBackend(), observer).Execute(t.Context(), plan); err != nil {
		t.Fatalf("Expected no error for empty plan, got %v", err)
	}
	if len(observer.plans) != 0 {
		t.Errorf("Expected empty plan not to be observed")
	}
}

func TestExecute_CopyFailure(t *testing.T) {
	ctx := t.Context()
	fs := &faultyStore{EphemeralBackend: ephemeral.NewEphemeralBackend(), failOn: namespace.OpCopy}

	plan, _ := namespace.PlanMove("a/b.txt", "c/")
	err := namespace.Execute(ctx, fs, plan)
	if !errors.Is(err, errInjected) {
		t.Fatalf("Expected injected error, got %v", err)
	}
	if errors.Is(err, data.ErrPartialMutation) {
		t.Errorf("Copy failure must not be reported as partial mutation")
	}

	// Delete never issued after a failed copy
	if len(fs.callOrder) != 1 {
		t.Errorf("Expected a single call, got %v", fs.callOrder)
	}
}

func TestExecute_PartialMutation(t *testing.T) {
	ctx := t.Context()
	fs := &faultyStore{EphemeralBackend: ephemeral.NewEphemeralBackend(), failOn: namespace.OpDelete}

	if err := fs.Put(ctx, "data/a.txt", []byte("a")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	plan, _ := namespace.PlanSoftDelete("data/a.txt", "data/", "trash/")
	observer := newRecordingObserver()

	err := namespace.NewExecutor(fs, observer).Execute(ctx, plan)

	var partial *namespace.PartialMutationError
	if !errors.As(err, &partial) {
		t.Fatalf("Expected PartialMutationError, got %v", err)
	}
	if !errors.Is(err, data.ErrPartialMutation) || !errors.Is(err, errInjected) {
		t.Errorf("Expected both sentinel and cause in chain, got %v", err)
	}
	if partial.Source != "data/a.txt" || partial.Destination != "trash/a.txt" {
		t.Errorf("Unexpected keys in error: %s", partial)
	}

	// Duplicate exists at both keys
	for _, key := range []string{"data/a.txt", "trash/a.txt"} {
		if _, err := fs.Get(ctx, key); err != nil {
			t.Errorf("Expected '%s' to exist, got %v", key, err)
		}
	}

	if observer.partial != 1 || observer.failures != 1 {
		t.Errorf("Unexpected observations: %+v", observer)
	}
}

func TestExecute_IgnoresCancelAfterFirstStep(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	fs := &faultyStore{EphemeralBackend: ephemeral.NewEphemeralBackend(), cancel: cancel}
	if err := fs.Put(ctx, "a/b.txt", []byte("b")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	plan, _ := namespace.PlanMove("a/b.txt", "c/")
	if err := namespace.Execute(ctx, fs, plan); err != nil {
		t.Fatalf("Expected plan to complete after cancellation, got %v", err)
	}

	if len(fs.contexts) != 2 {
		t.Fatalf("Expected 2 calls, got %d", len(fs.contexts))
	}
	if fs.contexts[1].Err() != nil {
		t.Errorf("Expected second step to run on an uncancellable context")
	}

	if _, err := fs.Get(context.Background(), "a/b.txt"); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected source to be deleted, got %v", err)
	}
}

func TestExecute_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	fs := &faultyStore{EphemeralBackend: ephemeral.NewEphemeralBackend()}
	plan, _ := namespace.PlanMove("a/b.txt", "c/")

	if err := namespace.Execute(ctx, fs, plan); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(fs.callOrder) != 0 {
		t.Errorf("Expected no store calls, got %v", fs.callOrder)
	}
}

func TestExecute_CreateFolder(t *testing.T) {
	ctx := t.Context()
	eb := ephemeral.NewEphemeralBackend()

	plan, _ := namespace.PlanCreateFolder("docs/", "new")
	if err := namespace.Execute(ctx, eb, plan); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	got, err := eb.Get(ctx, "docs/new/")
	if err != nil {
		t.Fatalf("Expected folder marker, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty marker, got %d bytes", len(got))
	}
}

func ExamplePlanSoftDelete() {
	plan, _ := namespace.PlanSoftDelete("data/sub/a.txt", "data/", "trash/")
	for _, step := range plan.Steps {
		fmt.Println(step)
	}
	// Output:
	// copy data/sub/a.txt -> trash/sub/a.txt
	// delete data/sub/a.txt
}
