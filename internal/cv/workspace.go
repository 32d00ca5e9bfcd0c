package cv

import (
	"errors"
	"sync"
)

// ErrSuperseded is returned when a photo upload finished after a newer one had started.
var ErrSuperseded = errors.New("upload superseded by a newer one")

// UploadToken identifies one in-flight photo upload of a session.
type UploadToken uint64

type slot struct {
	record  Record
	pending UploadToken
}

// Workspace holds the working record of every editing session.
// Every mutation replaces the session's record wholesale.
type Workspace struct {
	mu       sync.Mutex
	sessions map[string]*slot
	next     UploadToken
}

func NewWorkspace() *Workspace {
	return &Workspace{sessions: make(map[string]*slot)}
}

// lock held
func (w *Workspace) slotFor(sessionID string) *slot {
	s, ok := w.sessions[sessionID]
	if !ok {
		s = &slot{record: Empty()}
		w.sessions[sessionID] = s
	}
	return s
}

// Get returns a copy of the session's working record; unknown sessions start empty.
func (w *Workspace) Get(sessionID string) Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slotFor(sessionID).record.Clone()
}

// Replace swaps the whole working record, as a load does.
func (w *Workspace) Replace(sessionID string, r Record) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.slotFor(sessionID).record = r.Clone()
}

// Update applies fn to the current record and stores the result if fn succeeds.
func (w *Workspace) Update(sessionID string, fn func(Record) (Record, error)) (Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.slotFor(sessionID)
	next, err := fn(s.record.Clone())
	if err != nil {
		return s.record.Clone(), err
	}
	s.record = next.Clone()
	return next, nil
}

// BeginUpload marks a new photo upload as the only one whose result may land in the record.
// Any upload begun earlier for the same session becomes superseded.
func (w *Workspace) BeginUpload(sessionID string) UploadToken {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next++
	w.slotFor(sessionID).pending = w.next
	return w.next
}

// CommitUpload stores the normalized photo if token is still the latest upload of the session.
func (w *Workspace) CommitUpload(sessionID string, token UploadToken, dataURI string) (Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.slotFor(sessionID)
	if s.pending != token {
		return s.record.Clone(), ErrSuperseded
	}
	s.pending = 0
	s.record = s.record.SetProfileImage(&dataURI)
	return s.record.Clone(), nil
}

// AbortUpload releases token after a failed upload so a later commit check stays accurate.
func (w *Workspace) AbortUpload(sessionID string, token UploadToken) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s := w.slotFor(sessionID); s.pending == token {
		s.pending = 0
	}
}

// Drop forgets a session.
func (w *Workspace) Drop(sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessions, sessionID)
}
