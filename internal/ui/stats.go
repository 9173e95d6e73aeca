package ui

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Stats counts what an export produced.
type Stats struct {
	TotalChapters atomic.Int64
	TotalDetails  atomic.Int64
	TotalImages   atomic.Int64
	Failed        atomic.Int64

	Started time.Time
}

func NewStats() *Stats {
	return &Stats{Started: time.Now()}
}

func (s *Stats) Summary() string {
	return fmt.Sprintf("%d chapters, %d details, %d page images, %d failed in %s",
		s.TotalChapters.Load(),
		s.TotalDetails.Load(),
		s.TotalImages.Load(),
		s.Failed.Load(),
		time.Since(s.Started).Round(time.Millisecond),
	)
}
