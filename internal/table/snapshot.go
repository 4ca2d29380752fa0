package table

import (
	"strings"
	"time"
)

// Match is one search or peer result.
type Match struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Snapshot is an immutable view of the entity table at one point in time.
type Snapshot struct {
	entities []*Entity
	bySymbol map[string]*Entity
	byTicker map[string]*Entity // valid_yahoo_ticker lookup
	columns  []string
	modTime  time.Time
}

// ModTime returns the modification time of the source file this
// snapshot was loaded from.
func (s *Snapshot) ModTime() time.Time { return s.modTime }

// Len returns the number of entities.
func (s *Snapshot) Len() int { return len(s.entities) }

// Columns returns the table's column names in file order.
func (s *Snapshot) Columns() []string { return s.columns }

// Entities returns all rows in file order.
func (s *Snapshot) Entities() []*Entity { return s.entities }

// Lookup finds an entity by symbol, falling back to the resolved
// upstream ticker column.
func (s *Snapshot) Lookup(symbol string) (*Entity, bool) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if e, ok := s.bySymbol[sym]; ok {
		return e, true
	}
	if e, ok := s.byTicker[sym]; ok {
		return e, true
	}
	return nil, false
}

// Search returns up to limit entities whose symbol or name contains the
// query, case-insensitively. An empty query matches nothing.
func (s *Snapshot) Search(query string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Match
	for _, e := range s.entities {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(e.Symbol()), q) ||
			strings.Contains(strings.ToLower(e.Name()), q) {
			out = append(out, Match{Symbol: e.Symbol(), Name: e.Name()})
		}
	}
	return out
}

// Peers returns the sector of the given symbol and every other entity
// in the same sector.
func (s *Snapshot) Peers(symbol string) (sector string, peers []Match) {
	e, ok := s.Lookup(symbol)
	if !ok {
		return "", nil
	}
	sector = e.Sector()
	if sector == "" {
		return "", nil
	}
	for _, p := range s.entities {
		if p.Symbol() == e.Symbol() {
			continue
		}
		if p.Sector() == sector {
			peers = append(peers, Match{Symbol: p.Symbol(), Name: p.Name()})
		}
	}
	return sector, peers
}

// newSnapshot indexes parsed rows into a snapshot.
func newSnapshot(entities []*Entity, columns []string, modTime time.Time) *Snapshot {
	s := &Snapshot{
		entities: entities,
		bySymbol: make(map[string]*Entity, len(entities)),
		byTicker: make(map[string]*Entity, len(entities)),
		columns:  columns,
		modTime:  modTime,
	}
	for _, e := range entities {
		if e.symbol != "" {
			if _, dup := s.bySymbol[e.symbol]; !dup {
				s.bySymbol[e.symbol] = e
			}
		}
		if t, ok := e.Field("valid_yahoo_ticker"); ok {
			t = strings.ToUpper(strings.TrimSpace(t))
			if _, dup := s.byTicker[t]; !dup {
				s.byTicker[t] = e
			}
		}
	}
	return s
}
