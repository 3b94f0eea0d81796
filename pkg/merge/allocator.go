package merge

// idAllocator hands out ids that are unique across everything it has
// seen. Claimed ids push the high-water mark past them, so allocated
// ids never collide with explicit ones.
type idAllocator[T ~int | ~int64] struct {
	next T
	seen map[T]struct{}
}

func newIDAllocator[T ~int | ~int64]() *idAllocator[T] {
	return &idAllocator[T]{seen: make(map[T]struct{})}
}

// has reports whether id was claimed or allocated before.
func (a *idAllocator[T]) has(id T) bool {
	_, ok := a.seen[id]
	return ok
}

// claim records an explicitly chosen id and advances the high-water
// mark past it.
func (a *idAllocator[T]) claim(id T) {
	a.seen[id] = struct{}{}
	if id >= a.next {
		a.next = id + 1
	}
}

// allocate returns the next fresh id.
func (a *idAllocator[T]) allocate() T {
	id := a.next
	a.next++
	a.seen[id] = struct{}{}
	return id
}
