// Package display applies presentation-boundary defaults for fields the
// backend omits. The original app decorated albums and events with random
// like/comment counts inline; here the defaulting is an explicit function,
// deterministic per entity id so values are stable across renders, and
// never stored.
package display

import "hash/fnv"

// Stats are the decorative counters shown on album and event cards.
type Stats struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// StatsFor derives display counters from an entity id. Same id, same
// numbers.
func StatsFor(id string) Stats {
	h := fnv.New32a()
	h.Write([]byte(id))
	sum := h.Sum32()
	return Stats{
		Likes:    int(sum % 97),
		Comments: int((sum / 97) % 23),
	}
}

// AttendeesFor fills a missing attendee count for an event card, bounded by
// max when the event carries a capacity.
func AttendeesFor(id string, current, max int) int {
	if current > 0 {
		return current
	}
	h := fnv.New32a()
	h.Write([]byte("attendees:" + id))
	n := int(h.Sum32() % 150)
	if max > 0 && n > max {
		return max
	}
	return n
}
