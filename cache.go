package strand

import "github.com/dshills/strand/enc"

// Cache ring: every string built by a public constructor is the designated
// head of a (possibly empty) ring of alternate representations — the same
// logical text in other encodings, native copies, or materialized foreign
// views. Ring links form a single cycle through the head. Only the head's
// next pointer is ever contended: insertion CASes it, and every other link
// is written once at entry creation and never changes afterwards.

// cacheEquivalent reports whether two entries occupy the same ring slot:
// same encoding, same native/managed-ness, same foreign-view-ness.
func cacheEquivalent(a, b *String) bool {
	return a.encID == b.encID &&
		a.IsNative() == b.IsNative() &&
		a.IsForeignView() == b.IsForeignView()
}

// ringHead finds the designated head of the ring s belongs to. A string
// built by a constructor is its own head; a derived representation reaches
// the head by walking its ring.
func ringHead(s *String) *String {
	if s.flags&flagCacheHead != 0 {
		return s
	}
	for cur := s.next.Load(); cur != nil && cur != s; cur = cur.next.Load() {
		if cur.flags&flagCacheHead != 0 {
			return cur
		}
	}
	return s
}

// cacheInsert links entry into head's ring unless an equivalent entry
// already exists, in which case the existing entry is returned. Lock-free:
// scan from the currently published first entry, then CAS the head's next
// pointer; a lost race rescans, so a winning duplicate is always found.
func cacheInsert(head, entry *String) *String {
	for {
		first := head.next.Load()
		for cur := first; cur != nil && cur != head; cur = cur.next.Load() {
			if cacheEquivalent(cur, entry) {
				return cur
			}
		}
		if first == nil {
			// First insertion closes the cycle through the head.
			entry.next.Store(head)
		} else {
			entry.next.Store(first)
		}
		if head.next.CompareAndSwap(first, entry) {
			if debugChecks {
				checkRing(head)
			}
			return entry
		}
	}
}

// cacheLookup returns the ring entry matching the encoding and nativeness,
// or nil. The head itself participates in matching.
func cacheLookup(head *String, id enc.ID, native bool) *String {
	if head.encID == id && head.IsNative() == native && !head.IsForeignView() {
		return head
	}
	for cur := head.next.Load(); cur != nil && cur != head; cur = cur.next.Load() {
		if cur.encID == id && cur.IsNative() == native && !cur.IsForeignView() {
			return cur
		}
	}
	return nil
}
