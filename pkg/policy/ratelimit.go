package policy

import (
	"sync"
	"time"
)

// slidingWindow is a bucketed sliding-window counter. Old buckets outside
// the window are pruned on every operation, which avoids the reset spike of
// fixed windows.
type slidingWindow struct {
	window     time.Duration
	bucketSize time.Duration
	buckets    []windowBucket
}

type windowBucket struct {
	timestamp time.Time
	count     int64
}

func newSlidingWindow(window, bucketSize time.Duration) *slidingWindow {
	n := int(window / bucketSize)
	if n == 0 {
		n = 1
	}
	return &slidingWindow{
		window:     window,
		bucketSize: bucketSize,
		buckets:    make([]windowBucket, n),
	}
}

// add increments the bucket for now. Caller must hold the owning lock.
func (sw *slidingWindow) add(now time.Time) {
	sw.prune(now)
	bucketTime := now.Truncate(sw.bucketSize)

	for i := range sw.buckets {
		if sw.buckets[i].timestamp.Equal(bucketTime) {
			sw.buckets[i].count++
			return
		}
	}

	// Reuse an empty slot, else overwrite the oldest.
	target := -1
	for i := range sw.buckets {
		if sw.buckets[i].timestamp.IsZero() {
			target = i
			break
		}
	}
	if target == -1 {
		target = 0
		for i := 1; i < len(sw.buckets); i++ {
			if sw.buckets[i].timestamp.Before(sw.buckets[target].timestamp) {
				target = i
			}
		}
	}
	sw.buckets[target] = windowBucket{timestamp: bucketTime, count: 1}
}

// sum returns the total count inside the window. Caller must hold the
// owning lock.
func (sw *slidingWindow) sum(now time.Time) int64 {
	sw.prune(now)
	var total int64
	for i := range sw.buckets {
		if !sw.buckets[i].timestamp.IsZero() {
			total += sw.buckets[i].count
		}
	}
	return total
}

func (sw *slidingWindow) prune(now time.Time) {
	cutoff := now.Add(-sw.window)
	for i := range sw.buckets {
		if !sw.buckets[i].timestamp.IsZero() && sw.buckets[i].timestamp.Before(cutoff) {
			sw.buckets[i] = windowBucket{}
		}
	}
}

// userWindows pairs the two per-user windows.
type userWindows struct {
	day    *slidingWindow
	minute *slidingWindow
}

// RateLimiter enforces per-user search limits over sliding 24-hour and
// 60-second windows. Counters are incremented only after a successful
// external retrieval; cache hits never count.
type RateLimiter struct {
	mu        sync.Mutex
	users     map[string]*userWindows
	perDay    int
	perMinute int
}

// NewRateLimiter creates a limiter with the given per-user caps.
func NewRateLimiter(perDay, perMinute int) *RateLimiter {
	return &RateLimiter{
		users:     make(map[string]*userWindows),
		perDay:    perDay,
		perMinute: perMinute,
	}
}

// Allow reports whether the user is under both limits, and which limit
// tripped when not. Anonymous users (empty ID) are never limited here;
// callers may map them to a shared identity first.
func (rl *RateLimiter) Allow(userID string) (bool, string) {
	if userID == "" {
		return true, ""
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	uw := rl.windowsLocked(userID)
	now := time.Now()

	if uw.minute.sum(now) >= int64(rl.perMinute) {
		return false, "per-minute search limit reached"
	}
	if uw.day.sum(now) >= int64(rl.perDay) {
		return false, "daily search limit reached"
	}
	return true, ""
}

// Record counts one successful external retrieval against the user.
func (rl *RateLimiter) Record(userID string) {
	if userID == "" {
		return
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	uw := rl.windowsLocked(userID)
	now := time.Now()
	uw.day.add(now)
	uw.minute.add(now)
}

// Usage returns the user's current counts in the daily and minute windows.
func (rl *RateLimiter) Usage(userID string) (day, minute int64) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	uw, ok := rl.users[userID]
	if !ok {
		return 0, 0
	}
	now := time.Now()
	return uw.day.sum(now), uw.minute.sum(now)
}

func (rl *RateLimiter) windowsLocked(userID string) *userWindows {
	uw, ok := rl.users[userID]
	if !ok {
		uw = &userWindows{
			day:    newSlidingWindow(24*time.Hour, 30*time.Minute),
			minute: newSlidingWindow(time.Minute, time.Second),
		}
		rl.users[userID] = uw
	}
	return uw
}
