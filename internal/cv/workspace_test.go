package cv

import (
	"errors"
	"sync"
	"testing"
)

func TestWorkspaceStartsEmpty(t *testing.T) {
	ws := NewWorkspace()
	r := ws.Get("s1")
	if r.Skills == nil || len(r.Skills) != 0 {
		t.Fatalf("expected empty non-nil skills, got %#v", r.Skills)
	}
}

func TestWorkspaceUpdateKeepsRecordOnError(t *testing.T) {
	ws := NewWorkspace()
	name := "Ana"
	if _, err := ws.Update("s1", func(r Record) (Record, error) {
		return r.UpdatePersonal(PersonalPatch{FullName: &name}), nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	boom := errors.New("boom")
	if _, err := ws.Update("s1", func(r Record) (Record, error) {
		r.PersonalInfo.FullName = "changed"
		return r, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got := ws.Get("s1").PersonalInfo.FullName; got != "Ana" {
		t.Fatalf("record changed on failed update: %q", got)
	}
}

func TestWorkspaceSupersededUpload(t *testing.T) {
	ws := NewWorkspace()
	first := ws.BeginUpload("s1")
	second := ws.BeginUpload("s1")

	if _, err := ws.CommitUpload("s1", second, "data:image/png;base64,second"); err != nil {
		t.Fatalf("commit second: %v", err)
	}
	if _, err := ws.CommitUpload("s1", first, "data:image/png;base64,first"); !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	img := ws.Get("s1").PersonalInfo.ProfileImage
	if img == nil || *img != "data:image/png;base64,second" {
		t.Fatalf("unexpected profile image %v", img)
	}
}

func TestWorkspaceUploadsAreIsolatedPerSession(t *testing.T) {
	ws := NewWorkspace()
	a := ws.BeginUpload("a")
	_ = ws.BeginUpload("b")
	if _, err := ws.CommitUpload("a", a, "data:a"); err != nil {
		t.Fatalf("commit a: %v", err)
	}
}

func TestWorkspaceAbortUpload(t *testing.T) {
	ws := NewWorkspace()
	tok := ws.BeginUpload("s1")
	ws.AbortUpload("s1", tok)
	if _, err := ws.CommitUpload("s1", tok, "data:x"); !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected aborted token to be rejected, got %v", err)
	}
}

func TestWorkspaceConcurrentUpdates(t *testing.T) {
	ws := NewWorkspace()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ws.Update("s1", func(r Record) (Record, error) {
				r.Skills = append(r.Skills, Skill{ID: NewID()})
				return r, nil
			})
		}()
	}
	wg.Wait()
	if got := len(ws.Get("s1").Skills); got != 50 {
		t.Fatalf("expected 50 skills, got %d", got)
	}
}
