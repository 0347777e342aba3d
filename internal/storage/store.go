// Package storage provides the durable blob store backing the records
// ledger. The core analytics never touch storage directly; they take the
// previous ledger as a parameter and return a new one, and callers persist
// through this package.
package storage

import (
	"encoding/json"

	"github.com/halloran-travel/salesdash-tui/internal/logger"
	"github.com/halloran-travel/salesdash-tui/internal/models"
)

// RecordsKey is the blob key the records ledger is persisted under.
const RecordsKey = "agent_records"

// Store is an opaque key-to-blob abstraction.
type Store interface {
	// Get returns the blob for key; found is false when the key is absent.
	Get(key string) (value []byte, found bool, err error)
	// Set writes the blob for key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// LoadRecords reads the persisted ledger. A missing key or a corrupt blob
// degrades to a fresh empty ledger; the analytics core only ever sees a
// valid AllRecords.
func LoadRecords(s Store) *models.AllRecords {
	blob, found, err := s.Get(RecordsKey)
	if err != nil {
		logger.Error("failed to read records ledger", "error", err)
		return models.NewAllRecords()
	}
	if !found {
		return models.NewAllRecords()
	}

	var ledger models.AllRecords
	if err := json.Unmarshal(blob, &ledger); err != nil {
		logger.Warn("records ledger is corrupt, starting fresh", "error", err)
		return models.NewAllRecords()
	}
	if ledger.Agents == nil {
		ledger.Agents = make(map[string]*models.AgentRecords)
	}
	return &ledger
}

// SaveRecords persists the ledger wholesale as one JSON blob.
func SaveRecords(s Store, ledger *models.AllRecords) error {
	blob, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	return s.Set(RecordsKey, blob)
}
