package appcore

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"cmsblog/internal/cms"
)

func TestNewContextFailsWhenFirstBuildFails(t *testing.T) {
	errBuild := errors.New("cms unreachable")

	_, err := NewContext(func(uint64) (*State, error) {
		return nil, errBuild
	})
	if err == nil {
		t.Fatal("expected startup error when the first build fails")
	}
	if !errors.Is(err, errBuild) {
		t.Fatalf("expected build error identity preserved, got %v", err)
	}
}

func TestReinitSwapsSnapshotAndBumpsGeneration(t *testing.T) {
	appCtx, err := NewContext(func(generation uint64) (*State, error) {
		return &State{Generation: generation, BuiltAt: time.Now()}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := appCtx.State()
	if first.Generation != 1 {
		t.Fatalf("expected first snapshot generation 1, got %d", first.Generation)
	}

	next, err := appCtx.Reinit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Generation != 2 {
		t.Fatalf("expected second snapshot generation 2, got %d", next.Generation)
	}
	if appCtx.State() != next {
		t.Fatal("expected the new snapshot to be served after reinit")
	}
}

func TestReinitKeepsOldSnapshotOnFailure(t *testing.T) {
	builds := 0
	appCtx, err := NewContext(func(generation uint64) (*State, error) {
		builds++
		if builds > 1 {
			return nil, fmt.Errorf("build %d failed", builds)
		}
		return &State{Generation: generation}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := appCtx.State()
	if _, err := appCtx.Reinit(); err == nil {
		t.Fatal("expected reinit error")
	}
	if appCtx.State() != before {
		t.Fatal("expected the previous snapshot to keep serving after a failed rebuild")
	}
}

func TestIsNotFoundErrorMatchesWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("get post %q: %w", "missing", cms.ErrNotFound)
	if !IsNotFoundError(wrapped) {
		t.Fatal("expected wrapped sentinel to classify as not found")
	}
	if IsNotFoundError(errors.New("boom")) {
		t.Fatal("did not expect unrelated error to classify as not found")
	}
}
