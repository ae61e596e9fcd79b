package ingester

import "slices"

// Cursor is the scheduler's position. Next only moves forward; Pending holds
// heights below Next that failed and are retried on later iterations.
type Cursor struct {
	Next    uint64
	Pending []uint64
}

// withPending returns a copy with heights merged into the pending set, kept
// sorted and unique. When the set exceeds limit the lowest heights are kept
// and the rest are returned as dropped.
func (c Cursor) withPending(limit int, heights ...uint64) (Cursor, []uint64) {
	if len(heights) == 0 {
		return c, nil
	}
	merged := make([]uint64, 0, len(c.Pending)+len(heights))
	merged = append(merged, c.Pending...)
	merged = append(merged, heights...)
	slices.Sort(merged)
	merged = slices.Compact(merged)
	var dropped []uint64
	if limit > 0 && len(merged) > limit {
		dropped = slices.Clone(merged[limit:])
		merged = merged[:limit]
	}
	return Cursor{Next: c.Next, Pending: merged}, dropped
}

// batch plans the inclusive range [Next, min(Next+size, head)].
// ok is false when the cursor has caught up with head.
func (c Cursor) batch(head, size uint64) (heights []uint64, ok bool) {
	if c.Next >= head {
		return nil, false
	}
	end := head
	if size < head-c.Next {
		end = c.Next + size
	}
	heights = make([]uint64, 0, end-c.Next+1)
	for h := c.Next; h <= end; h++ {
		heights = append(heights, h)
	}
	return heights, true
}
