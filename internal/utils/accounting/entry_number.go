package accounting

import (
	"fmt"
	"strconv"
)

// SeedEntryNumber is the first entry number allocated for a company with no
// existing entries.
const SeedEntryNumber = "JE-0001"

// NextEntryNumber allocates the next number in a company-scoped sequence:
// the trailing numeric suffix of the current maximum is parsed, incremented
// and re-padded to the same width. A current value without a numeric suffix
// falls back to the seed.
func NextEntryNumber(current string) string {
	if current == "" {
		return SeedEntryNumber
	}
	start := len(current)
	for start > 0 && current[start-1] >= '0' && current[start-1] <= '9' {
		start--
	}
	suffix := current[start:]
	if suffix == "" {
		return SeedEntryNumber
	}
	n, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return SeedEntryNumber
	}
	return current[:start] + fmt.Sprintf("%0*d", len(suffix), n+1)
}
