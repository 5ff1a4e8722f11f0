package domain

import (
    "strconv"
    "sync"
    "time"
)

var (
    idMu   sync.Mutex
    lastID int64
)

// NewID returns a millisecond-timestamp identifier, bumped when two calls
// land in the same millisecond so IDs stay unique within the process.
func NewID() string {
    idMu.Lock()
    defer idMu.Unlock()

    now := time.Now().UnixMilli()
    if now <= lastID {
        now = lastID + 1
    }
    lastID = now
    return strconv.FormatInt(now, 10)
}
