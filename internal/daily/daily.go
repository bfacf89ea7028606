// Package daily derives per-day values for the board and keeps the daily
// completion leaderboard.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// RingRotation returns how many slots the letter ring is turned on the given
// day: HMAC(salt, YYYY-MM-DD) % letters. Everyone sees the same ring on the
// same day.
func RingRotation(date time.Time, salt string, letters int) int {
	if letters <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(letters))
}
