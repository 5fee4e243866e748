package domain

import "time"

// DedupWindow is how long a grouped-post id keeps suppressing repeats.
const DedupWindow = 10 * time.Minute

// ShouldSuppress reports whether a post carrying groupID is a repeat of the
// last grouped post seen on this channel within window. Standalone posts
// (empty groupID) are never suppressed.
func (c *Channel) ShouldSuppress(groupID string, now time.Time, window time.Duration) bool {
	if groupID == "" || groupID != c.LastGroupID {
		return false
	}
	return now.UnixMilli()-c.LastGroupTimestamp < window.Milliseconds()
}

// ObserveGroup records groupID as the latest grouped post. The timestamp
// never moves backwards.
func (c *Channel) ObserveGroup(groupID string, now time.Time) {
	if groupID == "" {
		return
	}
	c.LastGroupID = groupID
	if ts := now.UnixMilli(); ts > c.LastGroupTimestamp {
		c.LastGroupTimestamp = ts
	}
}

// Admit runs the dedup gate for one event: it returns true when the event is
// a duplicate and otherwise records the group as seen.
func (c *Channel) Admit(groupID string, now time.Time, window time.Duration) (suppressed bool) {
	if c.ShouldSuppress(groupID, now, window) {
		return true
	}
	c.ObserveGroup(groupID, now)
	return false
}
