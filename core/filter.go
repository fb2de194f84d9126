package core

import "strings"

// Filter is a predicate over a Message. Filters are pure: they inspect the
// message and their own configuration, nothing else. A FilteredSubscriber
// combines them with logical AND.
type Filter interface {
	Matches(msg *Message) bool
}

// FilterFunc adapts a plain predicate to the Filter interface.
type FilterFunc func(msg *Message) bool

func (f FilterFunc) Matches(msg *Message) bool { return f(msg) }

// HeaderEquals matches messages whose header value for key equals value
// exactly. A missing header never matches.
func HeaderEquals(key, value string) Filter {
	return FilterFunc(func(msg *Message) bool {
		v, ok := msg.headers[key]
		return ok && v == value
	})
}

// HeaderPattern matches a dotted header value against a pattern with
// single-segment (*) and multi-segment (#) wildcards.
//
// Examples:
//
//	HeaderPattern("event", "orders.created") matches "orders.created"
//	HeaderPattern("event", "orders.*")       matches "orders.created"
//	HeaderPattern("event", "orders.*")       does NOT match "orders.us.created"
//	HeaderPattern("event", "payments.#")     matches "payments.us.created"
func HeaderPattern(key, pattern string) Filter {
	patParts := strings.Split(pattern, ".")
	return FilterFunc(func(msg *Message) bool {
		v, ok := msg.headers[key]
		if !ok {
			return false
		}
		return matchSegments(patParts, 0, strings.Split(v, "."), 0)
	})
}

func matchSegments(pat []string, pi int, val []string, vi int) bool {
	for pi < len(pat) && vi < len(val) {
		switch pat[pi] {
		case "#":
			// # at the end matches all remaining segments
			if pi == len(pat)-1 {
				return true
			}
			// # in the middle: try all remaining positions
			pi++
			for vi <= len(val) {
				if matchSegments(pat, pi, val, vi) {
					return true
				}
				vi++
			}
			return false
		case "*":
			// matches exactly one segment, just advance both
			pi++
			vi++
		default:
			if pat[pi] != val[vi] {
				return false
			}
			pi++
			vi++
		}
	}

	// Both must be fully consumed
	return pi == len(pat) && vi == len(val)
}
