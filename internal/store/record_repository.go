package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cvBuilder/internal/cv"
)

// RecordKey is the fixed key the record is saved under, namespaced per session.
const RecordKey = "cvData"

// ErrNothingToLoad 表示该会话从未保存过简历，不视为错误情形。
var ErrNothingToLoad = errors.New("no saved CV found")

// RecordRepository saves and loads the whole record as one JSON value.
type RecordRepository struct {
	store Store
}

func NewRecordRepository(s Store) *RecordRepository {
	return &RecordRepository{store: s}
}

func recordKey(sessionID string) string {
	return RecordKey + ":" + sessionID
}

// Save overwrites any previously saved record of the session.
func (r *RecordRepository) Save(ctx context.Context, sessionID string, record cv.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return r.store.Put(ctx, recordKey(sessionID), raw)
}

// Load returns the saved record verbatim, or ErrNothingToLoad.
func (r *RecordRepository) Load(ctx context.Context, sessionID string) (cv.Record, error) {
	raw, err := r.store.Get(ctx, recordKey(sessionID))
	if errors.Is(err, ErrNotFound) {
		return cv.Record{}, ErrNothingToLoad
	}
	if err != nil {
		return cv.Record{}, err
	}
	var record cv.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return cv.Record{}, fmt.Errorf("decode saved record: %w", err)
	}
	return record, nil
}
