package sync

// OfferSet is an insertion-ordered set of marketplace offer ids. The stock
// builder consumes matched ids from it so each offer contributes at most one
// entry, and the zero-fill pass walks the leftovers in their original order.
type OfferSet struct {
	order   []string
	present map[string]struct{}
}

// NewOfferSet builds a set from the listed offer ids, keeping first-seen
// order and dropping duplicates.
func NewOfferSet(offerIDs []string) *OfferSet {
	s := &OfferSet{present: make(map[string]struct{}, len(offerIDs))}
	for _, id := range offerIDs {
		if _, ok := s.present[id]; ok {
			continue
		}
		s.present[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return s
}

// Contains reports whether id is still in the set.
func (s *OfferSet) Contains(id string) bool {
	_, ok := s.present[id]
	return ok
}

// Remove takes id out of the set. Removing an absent id is a no-op.
func (s *OfferSet) Remove(id string) {
	delete(s.present, id)
}

// Remaining returns the ids not yet removed, in insertion order.
func (s *OfferSet) Remaining() []string {
	remaining := make([]string, 0, len(s.present))
	for _, id := range s.order {
		if _, ok := s.present[id]; ok {
			remaining = append(remaining, id)
		}
	}
	return remaining
}

// Len is the number of ids not yet removed.
func (s *OfferSet) Len() int {
	return len(s.present)
}
