package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// LocationPropertyKey is the line-item property carrying the preferred
// fulfillment location. The leading underscore hides it on the storefront.
const LocationPropertyKey = "_locationId"

type VariantID int64

type LocationID string

// LineKey identifies a line already in the cart: "variantId:lineInstanceId".
type LineKey string

type Properties map[string]string

func LocationProperties(locationID LocationID) Properties {
	return Properties{LocationPropertyKey: string(locationID)}
}

// PropertyField returns the form field name for a line-item property,
// e.g. "properties[_locationId]".
func PropertyField(key string) string {
	return "properties[" + key + "]"
}

func (p Properties) Location() (LocationID, bool) {
	v, ok := p[LocationPropertyKey]
	return LocationID(v), ok
}

type AddRequest struct {
	Items []AddRequestItem `json:"items"`
}

type AddRequestItem struct {
	ID         VariantID  `json:"id"`
	Quantity   int        `json:"quantity"`
	Properties Properties `json:"properties"`
}

type ChangeRequest struct {
	ID         LineKey    `json:"id"`
	Properties Properties `json:"properties"`
}

func NewAddRequest(variantID VariantID, locationID LocationID) AddRequest {
	return AddRequest{
		Items: []AddRequestItem{{
			ID:         variantID,
			Quantity:   1,
			Properties: LocationProperties(locationID),
		}},
	}
}

func NewChangeRequest(lineKey LineKey, locationID LocationID) ChangeRequest {
	return ChangeRequest{
		ID:         lineKey,
		Properties: LocationProperties(locationID),
	}
}

func ParseLineKey(s string) (VariantID, string, error) {
	variant, instance, ok := strings.Cut(s, ":")
	if !ok {
		return 0, "", fmt.Errorf("line key[%s] has no ':' separator", s)
	}

	id, err := strconv.ParseInt(variant, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("line key[%s] variant is not numeric: %w", s, err)
	}

	return VariantID(id), instance, nil
}

func (k LineKey) VariantID() (VariantID, error) {
	id, _, err := ParseLineKey(string(k))
	return id, err
}

type Cart struct {
	Token      string
	ItemCount  int
	TotalPrice Money
	Items      []CartLine
	Raw        []byte
}

type CartLine struct {
	Key        LineKey
	VariantID  VariantID
	Quantity   int
	Title      string
	Price      Money
	Properties Properties
}

// AddedLines is the confirmation returned by the add endpoint.
type AddedLines struct {
	Items []CartLine
	Raw   []byte
}
