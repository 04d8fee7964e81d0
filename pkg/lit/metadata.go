package lit

import "sync"

// Well-known metadata keys
const (
	// ParamTypesKey holds the ordered constructor dependencies of a class
	ParamTypesKey = "design:paramtypes"

	PathKey     = "path"
	ImportsKey  = "imports"
	ExportsKey  = "exports"
	MethodKey   = "method"
	ProducesKey = "produces"
)

type recordKey struct {
	target *Class
	member string
}

// Store holds metadata records keyed by (class, member). An empty member
// addresses the class itself.
type Store struct {
	mu      sync.RWMutex
	records map[recordKey]map[string]interface{}
}

// NewStore creates an empty metadata store
func NewStore() *Store {
	return &Store{records: make(map[recordKey]map[string]interface{})}
}

func memberOf(member []string) string {
	if len(member) > 0 {
		return member[0]
	}
	return ""
}

// Set stores every entry of values under (target, member), overwriting
// existing keys
func (s *Store) Set(target *Class, values map[string]interface{}, member ...string) {
	if len(values) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{target: target, member: memberOf(member)}
	record, ok := s.records[key]
	if !ok {
		record = make(map[string]interface{}, len(values))
		s.records[key] = record
	}
	for k, v := range values {
		record[k] = v
	}
}

// Get returns the value stored under key, or def when none was recorded
func (s *Store) Get(target *Class, key string, def interface{}, member ...string) interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.records[recordKey{target: target, member: memberOf(member)}][key]; ok {
		return v
	}
	return def
}

// Has reports whether key was recorded under (target, member)
func (s *Store) Has(target *Class, key string, member ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[recordKey{target: target, member: memberOf(member)}][key]
	return ok
}

// GetAll returns a copy of every key recorded under (target, member)
func (s *Store) GetAll(target *Class, member string) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record := s.records[recordKey{target: target, member: member}]
	out := make(map[string]interface{}, len(record))
	for k, v := range record {
		out[k] = v
	}
	return out
}

// Params returns the declared dependency classes of a constructor (empty
// member) or method
func (s *Store) Params(target *Class, member string) []*Class {
	return s.GetClasses(target, ParamTypesKey, member)
}

// GetString returns a string value, or def when absent or not a string
func (s *Store) GetString(target *Class, key, def string, member ...string) string {
	if v, ok := s.Get(target, key, nil, member...).(string); ok {
		return v
	}
	return def
}

// GetClasses returns a class list value, or nil when absent or mistyped
func (s *Store) GetClasses(target *Class, key string, member ...string) []*Class {
	if v, ok := s.Get(target, key, nil, member...).([]*Class); ok {
		out := make([]*Class, len(v))
		copy(out, v)
		return out
	}
	return nil
}
