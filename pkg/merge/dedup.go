package merge

// dedupSet deduplicates categories or licenses by content across merge
// inputs, keeping first-seen order and assigning a stable id per
// distinct content. The content key deliberately excludes the id, so
// two records that differ only by id collapse into one.
type dedupSet[E interface {
	Key() string
	EntityID() int
}] struct {
	byKey   map[string]int // content key -> assigned id
	ordered []E
	alloc   *idAllocator[int]
	withID  func(E, int) E
}

func newDedupSet[E interface {
	Key() string
	EntityID() int
}](withID func(E, int) E) *dedupSet[E] {
	return &dedupSet[E]{
		byKey:  make(map[string]int),
		alloc:  newIDAllocator[int](),
		withID: withID,
	}
}

// add folds e into the set and returns the id its content resolves to.
// Matching content reuses the earlier id. New content keeps its own id
// unless that id is already taken, in which case a fresh one is
// assigned.
func (s *dedupSet[E]) add(e E) int {
	key := e.Key()
	if id, ok := s.byKey[key]; ok {
		return id
	}

	id := e.EntityID()
	if s.alloc.has(id) {
		id = s.alloc.allocate()
	} else {
		s.alloc.claim(id)
	}
	s.byKey[key] = id
	// withID deep copies, detaching the stored record from the input.
	s.ordered = append(s.ordered, s.withID(e, id))
	return id
}

// entries returns the distinct records in first-seen order.
func (s *dedupSet[E]) entries() []E {
	return s.ordered
}
