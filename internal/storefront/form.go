package storefront

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/prebuy-ai/order-routing/internal/domain"
)

// AddItemWithLocationForm submits the plain product form used by themes
// without scripting. The platform answers with a redirect to the cart page,
// so only the final status is checked.
func (c *cartClient) AddItemWithLocationForm(ctx context.Context, variantID domain.VariantID, quantity int, locationID domain.LocationID) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"id", strconv.FormatInt(int64(variantID), 10)},
		{"quantity", strconv.Itoa(quantity)},
		{domain.PropertyField(domain.LocationPropertyKey), string(locationID)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("mw.WriteField: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("mw.Close: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+AddFormPath, &buf)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if _, err := c.do(req, "add_form"); err != nil {
		return err
	}

	return nil
}
