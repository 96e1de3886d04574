package device

import (
	"regexp"
	"strconv"
)

// zoneIDPattern matches composite zone ids: a 36-character host id in
// 8-4-4-4-12 hex groups (group hyphens optional), a literal hyphen, then
// the zone index digits. Case-insensitive.
var zoneIDPattern = regexp.MustCompile(`(?i)^([0-9a-f]{8}-?(?:[0-9a-f]{4}-?){3}[0-9a-f]{12})-([0-9]+)$`)

// ClassifyID decides whether id denotes a zone of a multi-zone host.
//
// On match it returns the host id prefix and the parsed zone index with
// ok=true. Any other string is a plain id: ok=false and the inputs are
// returned untouched. The function is total; non-matching input is a valid
// outcome, not an error.
func ClassifyID(id string) (hostID string, zoneIndex int, ok bool) {
	m := zoneIDPattern.FindStringSubmatch(id)
	if m == nil {
		return "", 0, false
	}

	index, err := strconv.Atoi(m[2])
	if err != nil {
		// Digits-only by the pattern; only overflow can land here.
		return "", 0, false
	}
	return m[1], index, true
}
