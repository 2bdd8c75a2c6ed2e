package theme

import (
	"fmt"
	"html/template"
	"io"

	"github.com/prebuy-ai/order-routing/internal/domain"
)

// FormData feeds the product form. Quantity below 1 renders as 1.
type FormData struct {
	VariantID  domain.VariantID
	Quantity   int
	LocationID domain.LocationID
	Button     string
}

var productForm = template.Must(template.New("product-form").Parse(
	`<form action="{{.Action}}" method="post" enctype="multipart/form-data">
  <input type="hidden" name="id" value="{{.VariantID}}">
  <input type="number" name="quantity" value="{{.Quantity}}" min="1">
  <input type="hidden" name="{{.PropertyField}}" value="{{.LocationID}}">
  <button type="submit">{{.Button}}</button>
</form>
`))

// RenderProductForm writes a product form that posts to the cart and tags the
// line with the preferred location through a hidden property field.
func RenderProductForm(w io.Writer, data FormData) error {
	if data.Quantity < 1 {
		data.Quantity = 1
	}
	if data.Button == "" {
		data.Button = "Add to Cart"
	}

	err := productForm.Execute(w, struct {
		FormData
		Action        string
		PropertyField string
	}{
		FormData:      data,
		Action:        "/cart/add",
		PropertyField: domain.PropertyField(domain.LocationPropertyKey),
	})
	if err != nil {
		return fmt.Errorf("productForm.Execute: %w", err)
	}

	return nil
}
