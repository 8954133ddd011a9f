package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/muurk/geoadmin/internal/model"
)

var (
	// ErrNotFound is returned for an unknown id
	ErrNotFound = errors.New("not found")

	// ErrInUse is returned when deleting a country that still has states
	ErrInUse = errors.New("country still has states")

	// ErrUnknownCountry is returned when a state references a missing country
	ErrUnknownCountry = errors.New("unknown country")

	// ErrBlankName is returned for an empty or whitespace-only name
	ErrBlankName = errors.New("name is required")
)

// Store holds countries and states in memory. Ids are assigned from one
// counter per entity and never reused.
type Store struct {
	mu        sync.RWMutex
	countries map[int64]string
	states    map[int64]stateRow
	nextCID   int64
	nextSID   int64
}

type stateRow struct {
	name      string
	countryID int64
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		countries: make(map[int64]string),
		states:    make(map[int64]stateRow),
		nextCID:   1,
		nextSID:   1,
	}
}

// Counts returns the number of countries and states
func (s *Store) Counts() (countries, states int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.countries), len(s.states)
}

// Countries returns every country ordered by id
func (s *Store) Countries() []model.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Country, 0, len(s.countries))
	for _, id := range sortedKeys(s.countries) {
		out = append(out, model.Country{ID: id, Name: s.countries[id]})
	}
	return out
}

// CountryPage returns page pageNo of countries and the page count
func (s *Store) CountryPage(pageNo, pageSize int) ([]model.Country, int) {
	all := s.Countries()
	return paginate(all, pageNo, pageSize), totalPages(len(all), pageSize)
}

// CreateCountry adds a country
func (s *Store) CreateCountry(name string) (model.Country, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.Country{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextCID
	s.nextCID++
	s.countries[id] = name
	return model.Country{ID: id, Name: name}, nil
}

// UpdateCountry renames a country
func (s *Store) UpdateCountry(id int64, name string) (model.Country, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.Country{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.countries[id]; !ok {
		return model.Country{}, ErrNotFound
	}
	s.countries[id] = name
	return model.Country{ID: id, Name: name}, nil
}

// DeleteCountry removes a country that no state references
func (s *Store) DeleteCountry(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.countries[id]; !ok {
		return ErrNotFound
	}
	for _, row := range s.states {
		if row.countryID == id {
			return ErrInUse
		}
	}
	delete(s.countries, id)
	return nil
}

// States returns every state ordered by id, with its country embedded
func (s *Store) States() []model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.State, 0, len(s.states))
	for _, id := range sortedKeys(s.states) {
		out = append(out, s.stateLocked(id))
	}
	return out
}

// StatePage returns page pageNo of states and the page count
func (s *Store) StatePage(pageNo, pageSize int) ([]model.State, int) {
	all := s.States()
	return paginate(all, pageNo, pageSize), totalPages(len(all), pageSize)
}

// CreateState adds a state under an existing country
func (s *Store) CreateState(name string, countryID int64) (model.State, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.countries[countryID]; !ok {
		return model.State{}, ErrUnknownCountry
	}
	id := s.nextSID
	s.nextSID++
	s.states[id] = stateRow{name: name, countryID: countryID}
	return s.stateLocked(id), nil
}

// UpdateState replaces a state's name and country
func (s *Store) UpdateState(id int64, name string, countryID int64) (model.State, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[id]; !ok {
		return model.State{}, ErrNotFound
	}
	if _, ok := s.countries[countryID]; !ok {
		return model.State{}, ErrUnknownCountry
	}
	s.states[id] = stateRow{name: name, countryID: countryID}
	return s.stateLocked(id), nil
}

// DeleteState removes a state
func (s *Store) DeleteState(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[id]; !ok {
		return ErrNotFound
	}
	delete(s.states, id)
	return nil
}

// stateLocked builds the read-side state. Caller holds mu.
func (s *Store) stateLocked(id int64) model.State {
	row := s.states[id]
	state := model.State{ID: id, Name: row.name, CountryID: row.countryID}
	if name, ok := s.countries[row.countryID]; ok {
		state.Country = &model.Country{ID: row.countryID, Name: name}
	}
	return state
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrBlankName
	}
	return name, nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// paginate returns the pageNo-th slice of size pageSize; past the end it
// is empty, never nil.
func paginate[T any](all []T, pageNo, pageSize int) []T {
	start := pageNo * pageSize
	if pageSize <= 0 || start >= len(all) {
		return []T{}
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
