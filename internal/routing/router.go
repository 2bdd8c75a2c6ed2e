package routing

import (
	"sort"

	"github.com/prebuy-ai/order-routing/internal/domain"
)

const (
	RankPreferred = 0
	RankOther     = 1
)

// Router resolves the location property of cart lines against the shop's
// locations.
type Router struct {
	key string
}

// NewRouter returns a Router reading the given attribute key. An empty key
// selects domain.LocationPropertyKey.
func NewRouter(key string) *Router {
	if key == "" {
		key = domain.LocationPropertyKey
	}
	return &Router{key: key}
}

func (r *Router) Key() string {
	return r.key
}

// RankLocations emits one ranking per fulfillment group. The first line with a
// resolvable location picks the preferred handle: it ranks 0 and every other
// handle ranks 1. Groups without a preference rank all handles 0.
func (r *Router) RankLocations(input RankingInput) RankingResult {
	index := locationIndex(input.Locations)
	ops := make([]RankingOperation, 0, len(input.FulfillmentGroups))

	for _, group := range input.FulfillmentGroups {
		preferred, hasPreference := "", false
		for _, line := range group.Lines {
			if handle, ok := r.resolve(line, index); ok {
				preferred, hasPreference = handle, true
				break
			}
		}

		rankings := make([]RankedLocation, 0, len(group.InventoryLocationHandles))
		for _, handle := range group.InventoryLocationHandles {
			rank := RankPreferred
			if hasPreference && handle != preferred {
				rank = RankOther
			}
			rankings = append(rankings, RankedLocation{LocationHandle: handle, Rank: rank})
		}

		ops = append(ops, RankingOperation{
			FulfillmentGroupHandle: group.Handle,
			Rankings:               rankings,
		})
	}

	return RankingResult{Operations: ops}
}

// SameLocationConstraints groups deliverable lines by their resolved location
// and requires each group to ship from a single location. Operations are
// ordered by location handle.
func (r *Router) SameLocationConstraints(input ConstraintInput) ConstraintResult {
	index := locationIndex(input.Locations)
	groups := map[string][]string{}

	for _, line := range input.Cart.DeliverableLines {
		if handle, ok := r.resolve(line, index); ok {
			groups[handle] = append(groups[handle], line.ID)
		}
	}

	handles := make([]string, 0, len(groups))
	for h := range groups {
		handles = append(handles, h)
	}
	sort.Strings(handles)

	ops := make([]SameLocationConstraint, 0, len(handles))
	for _, h := range handles {
		ops = append(ops, SameLocationConstraint{DeliverableLineIDs: groups[h]})
	}

	return ConstraintResult{Operations: ops}
}

func (r *Router) resolve(line Line, index map[uint64]string) (string, bool) {
	attr := line.Attribute
	if attr == nil || attr.Key != r.key || attr.Value == nil {
		return "", false
	}

	id, ok := parseID(*attr.Value)
	if !ok {
		return "", false
	}

	handle, ok := index[id]
	return handle, ok
}
