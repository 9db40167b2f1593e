package raw

import "errors"

// Handle identifies an indirect object in a Store. It is a non-owning
// (index, generation) pair: deleting an object bumps the slot generation,
// so stale handles are detected instead of resolving to a recycled object.
type Handle struct {
	Index int
	Gen   int
}

// Zero reports whether h is the zero handle, which never resolves.
func (h Handle) Zero() bool { return h.Index == 0 && h.Gen == 0 }

var (
	// ErrStaleHandle is returned when a handle's generation does not match
	// the slot it points at (the object was deleted or never existed).
	ErrStaleHandle = errors.New("raw: stale or invalid handle")

	// ErrNotDict is returned by dictionary-entry operations on handles that
	// do not resolve to a dictionary or stream.
	ErrNotDict = errors.New("raw: object is not a dictionary")
)

type slot struct {
	obj  Object
	gen  int
	live bool
}

// Store is an arena of indirect objects. All mutating operations require the
// caller to serialize access; the Store itself performs no locking.
type Store struct {
	slots []slot
}

// NewStore returns an empty object store. Slot 0 is reserved so that the
// zero Handle never resolves.
func NewStore() *Store {
	return &Store{slots: make([]slot, 1)}
}

// Alloc places obj in a fresh slot and returns its handle.
func (s *Store) Alloc(obj Object) Handle {
	s.slots = append(s.slots, slot{obj: obj, gen: 1, live: true})
	return Handle{Index: len(s.slots) - 1, Gen: 1}
}

// Get resolves a handle to its object.
func (s *Store) Get(h Handle) (Object, error) {
	if h.Index <= 0 || h.Index >= len(s.slots) {
		return nil, ErrStaleHandle
	}
	sl := s.slots[h.Index]
	if !sl.live || sl.gen != h.Gen {
		return nil, ErrStaleHandle
	}
	return sl.obj, nil
}

// Set replaces the object a handle points at.
func (s *Store) Set(h Handle, obj Object) error {
	if _, err := s.Get(h); err != nil {
		return err
	}
	s.slots[h.Index].obj = obj
	return nil
}

// Delete removes the object and invalidates every outstanding handle to it.
func (s *Store) Delete(h Handle) error {
	if _, err := s.Get(h); err != nil {
		return err
	}
	s.slots[h.Index] = slot{gen: s.slots[h.Index].gen + 1}
	return nil
}

// Live reports whether a handle still resolves.
func (s *Store) Live(h Handle) bool {
	_, err := s.Get(h)
	return err == nil
}

// Count returns the number of live objects in the store.
func (s *Store) Count() int {
	n := 0
	for _, sl := range s.slots {
		if sl.live {
			n++
		}
	}
	return n
}

// Dict resolves a handle to a dictionary. Stream objects resolve to their
// stream dictionary, matching the PDF convention that a stream is usable
// wherever its dictionary is.
func (s *Store) Dict(h Handle) (*DictObj, error) {
	obj, err := s.Get(h)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *DictObj:
		return o, nil
	case *StreamObj:
		return o.Dict, nil
	default:
		return nil, ErrNotDict
	}
}

// GetEntry reads one entry from a dictionary object.
func (s *Store) GetEntry(h Handle, key string) (Object, error) {
	d, err := s.Dict(h)
	if err != nil {
		return nil, err
	}
	o, ok := d.Get(key)
	if !ok {
		return nil, nil
	}
	return o, nil
}

// SetEntry writes one entry of a dictionary object.
func (s *Store) SetEntry(h Handle, key string, value Object) error {
	d, err := s.Dict(h)
	if err != nil {
		return err
	}
	d.Set(key, value)
	return nil
}

// DeleteEntry removes one entry from a dictionary object. Removing an
// absent entry is a no-op.
func (s *Store) DeleteEntry(h Handle, key string) error {
	d, err := s.Dict(h)
	if err != nil {
		return err
	}
	d.Delete(key)
	return nil
}

// Resolve follows a reference object to its target, returning non-reference
// objects unchanged.
func (s *Store) Resolve(obj Object) (Object, error) {
	if ref, ok := obj.(RefObj); ok {
		return s.Get(ref.H)
	}
	return obj, nil
}
