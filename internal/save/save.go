// Package save persists the player's records between runs.
package save

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	recordsObject   = "records"
	recordsProperty = "scores"
)

type Records struct {
	BestScore   int `yaml:"bestScore"`
	GamesPlayed int `yaml:"gamesPlayed"`
	LastScore   int `yaml:"lastScore"`
}

// Store keeps Records in a gdata Manager. A nil manager degrades to an
// in-memory store that never fails.
type Store struct {
	manager *gdata.Manager
	records Records
}

// Open opens the per-user data directory for appName. If that fails the
// store still works, in memory only.
func Open(appName string) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Save] Warning: data directory unavailable: %v (scores will not persist)", err)
		manager = nil
	}
	return NewStore(manager)
}

// NewStore wraps manager and loads any saved records.
func NewStore(manager *gdata.Manager) *Store {
	s := &Store{manager: manager}
	if err := s.Load(); err != nil {
		log.Printf("[Save] Warning: %v (starting fresh)", err)
	}
	return s
}

func (s *Store) Load() error {
	s.records = Records{}
	if s.manager == nil || !s.manager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	var loaded Records
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshal records: %w", err)
	}
	s.records = loaded
	return nil
}

func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := s.manager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

func (s *Store) Records() Records {
	return s.records
}

// Persistent reports whether records survive a restart.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// RecordGame counts a finished game and returns the best score so far.
// Save errors are logged; the in-memory records are updated regardless.
func (s *Store) RecordGame(score int) int {
	s.records.GamesPlayed++
	s.records.LastScore = score
	if score > s.records.BestScore {
		s.records.BestScore = score
	}
	if err := s.Save(); err != nil {
		log.Printf("[Save] Warning: %v", err)
	}
	return s.records.BestScore
}
