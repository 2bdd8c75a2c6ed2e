package routing

// Input and output shapes mirror the JSON exchanged with the platform's
// fulfillment hooks.

type Location struct {
	Handle string `json:"handle"`
	ID     string `json:"id"`
}

type Attribute struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

type Line struct {
	ID        string     `json:"id"`
	Attribute *Attribute `json:"attribute"`
}

type FulfillmentGroup struct {
	Handle                   string   `json:"handle"`
	InventoryLocationHandles []string `json:"inventoryLocationHandles"`
	Lines                    []Line   `json:"lines"`
}

type RankingInput struct {
	FulfillmentGroups []FulfillmentGroup `json:"fulfillmentGroups"`
	Locations         []Location         `json:"locations"`
}

type RankedLocation struct {
	LocationHandle string `json:"locationHandle"`
	Rank           int    `json:"rank"`
}

type RankingOperation struct {
	FulfillmentGroupHandle string           `json:"fulfillmentGroupHandle"`
	Rankings               []RankedLocation `json:"rankings"`
}

type RankingResult struct {
	Operations []RankingOperation `json:"operations"`
}

type Cart struct {
	DeliverableLines []Line `json:"deliverableLines"`
}

type ConstraintInput struct {
	Cart      Cart       `json:"cart"`
	Locations []Location `json:"locations"`
}

// SameLocationConstraint requires its lines to ship from one location.
type SameLocationConstraint struct {
	DeliverableLineIDs []string `json:"deliverableLineIds"`
}

type ConstraintResult struct {
	Operations []SameLocationConstraint `json:"operations"`
}
