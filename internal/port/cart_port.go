package port

import (
	"context"
	"net/http"

	"github.com/prebuy-ai/order-routing/internal/domain"
)

type CartClient interface {
	AddItemWithLocation(ctx context.Context, variantID domain.VariantID, locationID domain.LocationID) (domain.AddedLines, error)
	UpdateLineLocation(ctx context.Context, lineKey domain.LineKey, locationID domain.LocationID) (domain.Cart, error)
	AddItemWithLocationForm(ctx context.Context, variantID domain.VariantID, quantity int, locationID domain.LocationID) error
}

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
