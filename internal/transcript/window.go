package transcript

import (
	"fmt"
	"math"
	"sort"
)

// GroupIntoWindows partitions segments into fixed-duration windows of
// chunkMinutes (coerced to at least one minute). A segment belongs to
// window floor(start / windowSeconds). Only windows with at least one
// segment are emitted, in ascending index order. Pure and idempotent.
func GroupIntoWindows(segments []Segment, chunkMinutes int) []Window {
	if chunkMinutes < 1 {
		chunkMinutes = 1
	}
	windowSeconds := chunkMinutes * 60

	buckets := make(map[int][]Segment)
	for _, seg := range segments {
		index := int(math.Floor(seg.Start / float64(windowSeconds)))
		buckets[index] = append(buckets[index], seg)
	}

	if len(buckets) == 0 {
		return nil
	}

	indices := make([]int, 0, len(buckets))
	for index := range buckets {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	windows := make([]Window, 0, len(indices))
	for _, index := range indices {
		start := float64(index * windowSeconds)
		end := float64((index + 1) * windowSeconds)
		windows = append(windows, Window{
			Index: index,
			Range: fmt.Sprintf("%s-%s",
				FormatTimestamp(start, false),
				FormatTimestamp(end, false)),
			Segments: buckets[index],
		})
	}

	return windows
}
