package proptree

// NamedEntry pairs a property name with one of its entries, in on-disk
// order.
type NamedEntry struct {
	Name  string
	Entry Entry
}

// Set is an ordered mapping from property name to a sequence of entries.
// A name that appears once has a one-element sequence; a name repeated
// in the source stream (an "indexed" property) extends the sequence
// under its first-appearance position, per the format's own duplicate-name
// rule. A plain unique-key map cannot represent this and must not be used.
type Set struct {
	order   []string
	entries map[string][]Entry
}

// NewSet returns an empty property set.
func NewSet() *Set {
	return &Set{entries: make(map[string][]Entry)}
}

// Add appends an entry under name, registering name in first-appearance
// order if it hasn't been seen before.
func (s *Set) Add(name string, e Entry) {
	if _, ok := s.entries[name]; !ok {
		s.order = append(s.order, name)
	}
	s.entries[name] = append(s.entries[name], e)
}

// Names returns property names in first-appearance order.
func (s *Set) Names() []string {
	return s.order
}

// Entries returns the sequence of entries recorded under name.
func (s *Set) Entries(name string) []Entry {
	return s.entries[name]
}

// First returns the first entry recorded under name, if any.
func (s *Set) First(name string) (Entry, bool) {
	es := s.entries[name]
	if len(es) == 0 {
		return nil, false
	}
	return es[0], true
}

// Len returns the number of distinct names in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// All returns every (name, entry) pair in on-disk order: names in
// first-appearance order, and within a name, entries in parse order.
func (s *Set) All() []NamedEntry {
	out := make([]NamedEntry, 0, len(s.order))
	for _, name := range s.order {
		for _, e := range s.entries[name] {
			out = append(out, NamedEntry{Name: name, Entry: e})
		}
	}
	return out
}
