// services/availability/ranges.go
package availability

import (
	"fmt"
	"sort"
	"strings"
)

// Range is a half-open [Start, End) span of slot start times.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ExpandRange lists every slot start t with start <= t < end, stepping by stepMinutes.
func ExpandRange(start, end string, stepMinutes int) ([]string, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: step must be positive", ErrInvalidRange)
	}
	a, err := ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	b, err := parseRangeEnd(end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if a >= b {
		return nil, fmt.Errorf("%w: %s is not before %s", ErrInvalidRange, start, end)
	}

	out := make([]string, 0, (b-a+stepMinutes-1)/stepMinutes)
	for t := a; t < b; t += stepMinutes {
		out = append(out, FormatClock(t))
	}
	return out, nil
}

// parseRangeEnd also accepts "24:00", the exclusive end of a day's last slot.
func parseRangeEnd(s string) (int, error) {
	if s == "24:00" {
		return minutesPerDay, nil
	}
	return ParseClock(s)
}

// CompressToRanges folds a set of slots into maximal runs of consecutive
// slots, each run reported with an exclusive end one step past its last slot.
// Malformed entries are skipped.
func CompressToRanges(slots []string, stepMinutes int) []Range {
	if stepMinutes <= 0 {
		return []Range{}
	}
	mins := make([]int, 0, len(slots))
	seen := make(map[int]struct{}, len(slots))
	for _, s := range slots {
		m, err := ParseClock(s)
		if err != nil {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		mins = append(mins, m)
	}
	sort.Ints(mins)

	ranges := []Range{}
	for i := 0; i < len(mins); {
		start := mins[i]
		end := start + stepMinutes
		j := i + 1
		for j < len(mins) && mins[j] == end {
			end += stepMinutes
			j++
		}
		ranges = append(ranges, Range{Start: FormatClock(start), End: FormatClock(end)})
		i = j
	}
	return ranges
}

// ParseRanges reads a comma separated list of "HH:MM-HH:MM" tokens and
// returns the sorted union of their expansions. Tokens that are not a valid
// range are dropped.
func ParseRanges(input string, stepMinutes int) []string {
	var slots []string
	for _, tok := range strings.Split(input, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.Split(tok, "-")
		if len(parts) != 2 {
			continue
		}
		expanded, err := ExpandRange(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), stepMinutes)
		if err != nil {
			continue
		}
		slots = append(slots, expanded...)
	}
	return NormalizeSlots(slots)
}

// NormalizeSlots dedupes and sorts slot strings. Fixed-width HH:MM sorts
// lexically in time order.
func NormalizeSlots(slots []string) []string {
	seen := make(map[string]struct{}, len(slots))
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
