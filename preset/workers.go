package preset

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseWorkers reads the number of parallel sample decoders: an integer
// >= 1, or "auto" which returns 0 (one decoder per CPU).
func ParseWorkers(raw string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return 0, fmt.Errorf("empty decoder count (want a positive integer or 'auto')")
	}
	if v == "auto" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("decoder count %q is not a number or 'auto'", raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("decoder count %d must be at least 1", n)
	}
	return n, nil
}
