package core

import "sync"

// FilteredSubscriber decorates a Subscriber with an ordered, mutable set of
// Filters. A message is forwarded only when every filter matches; with no
// filters configured, everything is forwarded. Suppressed messages are not
// an error.
//
// Filters can be added and removed while the subscriber is registered;
// changes apply to messages not yet offered to this wrapper.
type FilteredSubscriber struct {
	next Subscriber

	mu      sync.RWMutex
	filters []filterEntry
	nextID  int
}

type filterEntry struct {
	id     int
	filter Filter
}

// NewFilteredSubscriber wraps next with the given initial filters.
func NewFilteredSubscriber(next Subscriber, filters ...Filter) *FilteredSubscriber {
	s := &FilteredSubscriber{next: next}
	for _, f := range filters {
		s.AddFilter(f)
	}
	return s
}

// AddFilter appends a filter and returns a handle for RemoveFilter.
func (s *FilteredSubscriber) AddFilter(f Filter) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.filters = append(s.filters, filterEntry{id: s.nextID, filter: f})
	return s.nextID
}

// RemoveFilter drops the filter identified by handle. It is a no-op
// returning false when the handle is unknown.
func (s *FilteredSubscriber) RemoveFilter(handle int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.filters {
		if e.id == handle {
			s.filters = append(s.filters[:i], s.filters[i+1:]...)
			return true
		}
	}
	return false
}

// OnMessage evaluates all filters with logical AND and forwards to the
// wrapped Subscriber only when they all match.
func (s *FilteredSubscriber) OnMessage(topic string, msg *Message) error {
	s.mu.RLock()
	filters := make([]filterEntry, len(s.filters))
	copy(filters, s.filters)
	s.mu.RUnlock()

	for _, e := range filters {
		if !e.filter.Matches(msg) {
			return nil
		}
	}
	return s.next.OnMessage(topic, msg)
}
