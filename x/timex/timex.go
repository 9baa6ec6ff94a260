package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Ms converts a millisecond count from configuration to a Duration.
func Ms(ms uint32) time.Duration { return time.Duration(ms) * time.Millisecond }
