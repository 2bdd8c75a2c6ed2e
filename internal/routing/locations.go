package routing

import (
	"strconv"
	"strings"
)

// ParseLocationGID extracts the numeric id from a global id such as
// "gid://shopify/Location/99997811016".
func ParseLocationGID(gid string) (uint64, bool) {
	i := strings.LastIndexByte(gid, '/')
	return parseID(gid[i+1:])
}

// parseID parses a decimal location id. One leading '+' is accepted, as the
// platform's hook runtime does.
func parseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// locationIndex maps numeric location ids to handles. A handle that is itself
// numeric also maps to itself.
func locationIndex(locations []Location) map[uint64]string {
	index := make(map[uint64]string, len(locations))

	for _, loc := range locations {
		if id, ok := ParseLocationGID(loc.ID); ok {
			index[id] = loc.Handle
		}
		if id, ok := parseID(loc.Handle); ok {
			index[id] = loc.Handle
		}
	}

	return index
}
