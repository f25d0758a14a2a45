// Copyright 2020, Square, Inc.

package keypath

// A Store is a nested map of attributes addressed by key paths. Paths passed
// to a Store are anything Parse accepts.
type Store interface {
	// Fetch returns the value at path, or the submap if path names an
	// intermediate level. It returns a PathNotFound error if any segment
	// of path is absent.
	Fetch(path interface{}) (interface{}, error)

	// Get is Fetch without the error: it returns nil if path is absent.
	Get(path interface{}) interface{}

	// Set writes value at path, creating missing intermediate maps. Whatever
	// was at path is replaced, map or not.
	Set(path interface{}, value interface{}) error

	// Merge returns a new Store with other deep-merged over this one.
	Merge(other interface{}) (Store, error)

	// MergeInPlace deep-merges other into this Store.
	MergeInPlace(other interface{}) error

	// Filter returns a new Store containing only the subtrees at paths. It
	// returns a PathNotFound error if any path is absent.
	Filter(paths ...interface{}) (Store, error)

	// ToMap returns a deep copy of the Store as plain maps, for handing to
	// serializers.
	ToMap() map[string]interface{}

	// Len returns the number of top-level keys.
	Len() int
}

// A Factory makes a Store from an initial mapping. It must return a TypeError
// if v is not a mapping; nil is an empty mapping.
type Factory func(v interface{}) (Store, error)

var _ Factory = NewStore

// NewStore is the default Factory. It returns a Hash.
func NewStore(v interface{}) (Store, error) {
	return New(v)
}

// Hash is the default Store.
type Hash struct {
	data map[string]interface{}
}

var _ Store = &Hash{}

// New returns a Hash holding a canonical copy of v, which must be a mapping,
// a Store, or nil.
func New(v interface{}) (*Hash, error) {
	m, err := toMap(v)
	if err != nil {
		return nil, err
	}
	return &Hash{data: m}, nil
}

func (h *Hash) Fetch(path interface{}) (interface{}, error) {
	v, err := h.lookup(Parse(path))
	if err != nil {
		return nil, err
	}
	return Stringify(v), nil
}

func (h *Hash) Get(path interface{}) interface{} {
	v, err := h.Fetch(path)
	if err != nil {
		return nil
	}
	return v
}

func (h *Hash) Set(path interface{}, value interface{}) error {
	p := Parse(path)
	if len(p) == 0 {
		return ErrEmptyPath
	}
	m := h.data
	for _, seg := range p[:len(p)-1] {
		next, ok := m[seg].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			m[seg] = next
		}
		m = next
	}
	m[p[len(p)-1]] = Stringify(value)
	return nil
}

func (h *Hash) Merge(other interface{}) (Store, error) {
	src, err := toMap(other)
	if err != nil {
		return nil, err
	}
	out := &Hash{data: h.ToMap()}
	deepMerge(out.data, src)
	return out, nil
}

func (h *Hash) MergeInPlace(other interface{}) error {
	src, err := toMap(other)
	if err != nil {
		return err
	}
	deepMerge(h.data, src)
	return nil
}

func (h *Hash) Filter(paths ...interface{}) (Store, error) {
	out := &Hash{data: map[string]interface{}{}}
	for _, path := range paths {
		p := Parse(path)
		v, err := h.lookup(p)
		if err != nil {
			return nil, err
		}
		// Overlapping paths ("a" and "a.b") merge instead of clobbering.
		deepMerge(out.data, nest(p, Stringify(v)))
	}
	return out, nil
}

func (h *Hash) ToMap() map[string]interface{} {
	return Stringify(h.data).(map[string]interface{})
}

func (h *Hash) Len() int {
	return len(h.data)
}

// --------------------------------------------------------------------------

// lookup walks p without copying the result.
func (h *Hash) lookup(p Path) (interface{}, error) {
	var cur interface{} = h.data
	for i, seg := range p {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, PathNotFound{Path: p, Missing: p[:i+1]}
		}
		if cur, ok = m[seg]; !ok {
			return nil, PathNotFound{Path: p, Missing: p[:i+1]}
		}
	}
	return cur, nil
}

// toMap returns a canonical copy of v that no caller holds a reference to.
func toMap(v interface{}) (map[string]interface{}, error) {
	if v == nil {
		return map[string]interface{}{}, nil
	}
	if s, ok := v.(Store); ok {
		return s.ToMap(), nil
	}
	m, ok := Stringify(v).(map[string]interface{})
	if !ok {
		return nil, TypeError{Value: v}
	}
	return m, nil
}
