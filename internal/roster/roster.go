// Package roster implements the persisted map of tracked players. The store
// is the single owner of the roster document: load once at startup, save
// after every mutation, one writer at a time.
package roster

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/castlegate/riftwatch/internal/riot"
)

var (
	// ErrNotTracked is returned when removing a display name that was never
	// added. No write happens in that case.
	ErrNotTracked = errors.New("display name is not tracked")
	ErrLoad       = errors.New("failed to load roster document")
	// ErrPersist surfaces storage write failures to the operator; the
	// in-memory roster keeps the new state so the mutation can be retried.
	ErrPersist = errors.New("failed to persist roster document")
)

// Player is one tracked roster entry. The puuid is cached on first successful
// resolution and only ever replaced when the operator re-sets the record.
type Player struct {
	RiotID string `json:"riot_id"`
	PUUID  string `json:"puuid,omitempty"`
}

// Record pairs a player with its display name key for ordered listings.
type Record struct {
	Name string
	Player
}

type document struct {
	Players map[string]Player `json:"players"`
}

// Store owns the roster document. Mutations hold a single write lock around
// both the in-memory map and the file write; snapshot reads take a
// point-in-time copy and never block each other.
type Store struct {
	path    string
	mu      sync.Mutex
	players map[string]Player
}

func NewStore(path string) *Store {
	return &Store{path: path, players: map[string]Player{}}
}

// Load reads the document from disk. A missing file is an empty roster on
// first run, not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, errRead := os.ReadFile(s.path)
	if errRead != nil {
		if errors.Is(errRead, os.ErrNotExist) {
			s.players = map[string]Player{}

			return nil
		}

		return errors.Join(errRead, ErrLoad)
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return errors.Join(err, ErrLoad)
	}

	if doc.Players == nil {
		doc.Players = map[string]Player{}
	}

	s.players = doc.Players

	return nil
}

// Set adds or overwrites a tracked player and persists the document. Callers
// resolve the puuid before calling so a failed resolution leaves the store
// untouched.
func (s *Store) Set(name string, player Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[riot.Sanitize(name)] = player

	return s.save()
}

// Remove deletes a tracked player and persists the document. An unknown name
// reports ErrNotTracked without touching the file.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := riot.Sanitize(name)
	if _, found := s.players[key]; !found {
		return ErrNotTracked
	}

	delete(s.players, key)

	return s.save()
}

// Get returns the player for a display name.
func (s *Store) Get(name string) (Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, found := s.players[riot.Sanitize(name)]

	return player, found
}

// Players returns a point-in-time copy of the roster in display name order.
// The ordering doubles as the deterministic tie break for equal leaderboard
// scores.
func (s *Store) Players() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]Record, 0, len(s.players))
	for name, player := range s.players {
		records = append(records, Record{Name: name, Player: player})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	return records
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.players)
}

// save writes the document through a temp file + rename so a failed write
// can never truncate the previous document. Callers must hold the lock.
func (s *Store) save() error {
	body, errMarshal := json.MarshalIndent(document{Players: s.players}, "", "  ")
	if errMarshal != nil {
		return errors.Join(errMarshal, ErrPersist)
	}

	tmp, errTmp := os.CreateTemp(filepath.Dir(s.path), ".roster-*")
	if errTmp != nil {
		return errors.Join(errTmp, ErrPersist)
	}

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return errors.Join(err, ErrPersist)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return errors.Join(err, ErrPersist)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())

		return errors.Join(err, ErrPersist)
	}

	return nil
}
