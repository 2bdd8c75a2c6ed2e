package routing_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prebuy-ai/order-routing/internal/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoLocations = `[
	{"handle": "location_handle_1", "id": "gid://shopify/Location/99997811016"},
	{"handle": "location_handle_2", "id": "gid://shopify/Location/99997811017"}
]`

func TestRankLocations(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		groups string
		want   []routing.RankingOperation
	}{
		{
			name: "no location preference",
			groups: `[{
				"handle": "123",
				"inventoryLocationHandles": ["location_handle_1", "location_handle_2"],
				"lines": [{"id": "gid://shopify/CartLine/1", "attribute": null}]
			}]`,
			want: []routing.RankingOperation{{
				FulfillmentGroupHandle: "123",
				Rankings: []routing.RankedLocation{
					{LocationHandle: "location_handle_1", Rank: 0},
					{LocationHandle: "location_handle_2", Rank: 0},
				},
			}},
		},
		{
			name: "preference from line item property",
			groups: `[{
				"handle": "123",
				"inventoryLocationHandles": ["location_handle_1", "location_handle_2"],
				"lines": [{"id": "gid://shopify/CartLine/1", "attribute": {"key": "_locationId", "value": "99997811016"}}]
			}]`,
			want: []routing.RankingOperation{{
				FulfillmentGroupHandle: "123",
				Rankings: []routing.RankedLocation{
					{LocationHandle: "location_handle_1", Rank: 0},
					{LocationHandle: "location_handle_2", Rank: 1},
				},
			}},
		},
		{
			name: "custom attribute key",
			key:  "_Location ID",
			groups: `[{
				"handle": "123",
				"inventoryLocationHandles": ["location_handle_1", "location_handle_2"],
				"lines": [{"id": "gid://shopify/CartLine/1", "attribute": {"key": "_Location ID", "value": "99997811017"}}]
			}]`,
			want: []routing.RankingOperation{{
				FulfillmentGroupHandle: "123",
				Rankings: []routing.RankedLocation{
					{LocationHandle: "location_handle_1", Rank: 1},
					{LocationHandle: "location_handle_2", Rank: 0},
				},
			}},
		},
		{
			name: "first resolvable line wins",
			groups: `[{
				"handle": "g1",
				"inventoryLocationHandles": ["location_handle_1", "location_handle_2"],
				"lines": [
					{"id": "gid://shopify/CartLine/1", "attribute": {"key": "_locationId", "value": "not-a-number"}},
					{"id": "gid://shopify/CartLine/2", "attribute": {"key": "_locationId", "value": "1"}},
					{"id": "gid://shopify/CartLine/3", "attribute": {"key": "_locationId", "value": "99997811017"}},
					{"id": "gid://shopify/CartLine/4", "attribute": {"key": "_locationId", "value": "99997811016"}}
				]
			}]`,
			want: []routing.RankingOperation{{
				FulfillmentGroupHandle: "g1",
				Rankings: []routing.RankedLocation{
					{LocationHandle: "location_handle_1", Rank: 1},
					{LocationHandle: "location_handle_2", Rank: 0},
				},
			}},
		},
		{
			name: "value with leading plus sign",
			groups: `[{
				"handle": "g1",
				"inventoryLocationHandles": ["location_handle_1", "location_handle_2"],
				"lines": [{"id": "gid://shopify/CartLine/1", "attribute": {"key": "_locationId", "value": "+99997811017"}}]
			}]`,
			want: []routing.RankingOperation{{
				FulfillmentGroupHandle: "g1",
				Rankings: []routing.RankedLocation{
					{LocationHandle: "location_handle_1", Rank: 1},
					{LocationHandle: "location_handle_2", Rank: 0},
				},
			}},
		},
		{
			name: "other key is ignored",
			groups: `[{
				"handle": "g1",
				"inventoryLocationHandles": ["location_handle_1", "location_handle_2"],
				"lines": [{"id": "gid://shopify/CartLine/1", "attribute": {"key": "_Location ID", "value": "99997811017"}}]
			}]`,
			want: []routing.RankingOperation{{
				FulfillmentGroupHandle: "g1",
				Rankings: []routing.RankedLocation{
					{LocationHandle: "location_handle_1", Rank: 0},
					{LocationHandle: "location_handle_2", Rank: 0},
				},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input routing.RankingInput
			require.NoError(t, json.Unmarshal([]byte(`{"fulfillmentGroups":`+tt.groups+`,"locations":`+twoLocations+`}`), &input))

			got := routing.NewRouter(tt.key).RankLocations(input)
			assert.Empty(t, cmp.Diff(tt.want, got.Operations))
		})
	}
}

func TestSameLocationConstraints(t *testing.T) {
	locations := `[
		{"handle": "108050547019", "id": "gid://shopify/Location/108050547019"},
		{"handle": "108050645323", "id": "gid://shopify/Location/108050645323"}
	]`

	tests := []struct {
		name  string
		lines string
		want  []routing.SameLocationConstraint
	}{
		{
			name: "no location properties",
			lines: `[
				{"id": "gid://shopify/CartLine/1", "attribute": null},
				{"id": "gid://shopify/CartLine/2", "attribute": null}
			]`,
			want: []routing.SameLocationConstraint{},
		},
		{
			name: "lines sharing a location",
			lines: `[
				{"id": "gid://shopify/CartLine/1", "attribute": {"key": "_locationId", "value": "108050547019"}},
				{"id": "gid://shopify/CartLine/2", "attribute": {"key": "_locationId", "value": "108050547019"}}
			]`,
			want: []routing.SameLocationConstraint{
				{DeliverableLineIDs: []string{"gid://shopify/CartLine/1", "gid://shopify/CartLine/2"}},
			},
		},
		{
			name: "two locations and an unknown one",
			lines: `[
				{"id": "gid://shopify/CartLine/1", "attribute": {"key": "_locationId", "value": "108050645323"}},
				{"id": "gid://shopify/CartLine/2", "attribute": {"key": "_locationId", "value": "108050547019"}},
				{"id": "gid://shopify/CartLine/3", "attribute": {"key": "_locationId", "value": "42"}},
				{"id": "gid://shopify/CartLine/4", "attribute": {"key": "_locationId", "value": null}}
			]`,
			want: []routing.SameLocationConstraint{
				{DeliverableLineIDs: []string{"gid://shopify/CartLine/2"}},
				{DeliverableLineIDs: []string{"gid://shopify/CartLine/1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input routing.ConstraintInput
			require.NoError(t, json.Unmarshal([]byte(`{"cart":{"deliverableLines":`+tt.lines+`},"locations":`+locations+`}`), &input))

			got := routing.NewRouter("").SameLocationConstraints(input)
			assert.Empty(t, cmp.Diff(tt.want, got.Operations))
		})
	}
}

func TestParseLocationGID(t *testing.T) {
	tests := []struct {
		gid    string
		want   uint64
		wantOK bool
	}{
		{gid: "gid://shopify/Location/99997811016", want: 99997811016, wantOK: true},
		{gid: "gid://shopify/Location/123", want: 123, wantOK: true},
		{gid: "gid://shopify/Location/+99997811016", want: 99997811016, wantOK: true},
		{gid: "gid://shopify/Location/++1"},
		{gid: "gid://shopify/Location/-1"},
		{gid: "invalid"},
		{gid: "gid://shopify/Location/abc"},
		{gid: ""},
	}

	for _, tt := range tests {
		t.Run(tt.gid, func(t *testing.T) {
			got, ok := routing.ParseLocationGID(tt.gid)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRouterDefaultKey(t *testing.T) {
	assert.Equal(t, "_locationId", routing.NewRouter("").Key())
}
