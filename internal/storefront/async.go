package storefront

import (
	"context"
	"fmt"

	"github.com/prebuy-ai/order-routing/internal/domain"
	"github.com/prebuy-ai/order-routing/internal/port"
)

// Result carries either the decoded payload or the failure of one call.
type Result[T any] struct {
	Value T
	Err   error
}

// Go runs fn on its own goroutine. The returned channel yields exactly one
// Result and is then closed. Cancel ctx to abort the in-flight call.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- Result[T]{Err: fmt.Errorf("cart call panicked: %v", r)}
			}
			close(ch)
		}()

		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()

	return ch
}

func AddItemWithLocationAsync(ctx context.Context, c port.CartClient, variantID domain.VariantID, locationID domain.LocationID) <-chan Result[domain.AddedLines] {
	return Go(ctx, func(ctx context.Context) (domain.AddedLines, error) {
		return c.AddItemWithLocation(ctx, variantID, locationID)
	})
}

func UpdateLineLocationAsync(ctx context.Context, c port.CartClient, lineKey domain.LineKey, locationID domain.LocationID) <-chan Result[domain.Cart] {
	return Go(ctx, func(ctx context.Context) (domain.Cart, error) {
		return c.UpdateLineLocation(ctx, lineKey, locationID)
	})
}
