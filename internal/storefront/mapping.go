package storefront

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/prebuy-ai/order-routing/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// The platform's response shape is not checked: fields are read when they are
// present with a usable type and left zero otherwise.

// mapAddedToDomain accepts {"items":[...]}, a bare array of lines, or a
// single line object.
func mapAddedToDomain(body any) []domain.CartLine {
	switch v := body.(type) {
	case []any:
		return mapLinesToDomain(v, currency.Unit{})
	case map[string]any:
		if items, ok := v["items"].([]any); ok {
			return mapLinesToDomain(items, currency.Unit{})
		}
		if _, ok := v["key"]; ok {
			return []domain.CartLine{mapLineToDomain(v, currency.Unit{})}
		}
	}
	return nil
}

func mapCartToDomain(body any) domain.Cart {
	obj, ok := body.(map[string]any)
	if !ok {
		return domain.Cart{}
	}

	// the platform is trusted to send a valid code; an unknown one leaves the unit unset
	unit, _ := currency.ParseISO(stringField(obj, "currency"))
	items, _ := obj["items"].([]any)

	return domain.Cart{
		Token:      stringField(obj, "token"),
		ItemCount:  int(intField(obj, "item_count")),
		TotalPrice: moneyField(obj, "total_price", unit),
		Items:      mapLinesToDomain(items, unit),
	}
}

func mapLineToDomain(line map[string]any, unit currency.Unit) domain.CartLine {
	variantID := intField(line, "variant_id")
	if variantID == 0 {
		variantID = intField(line, "id")
	}

	props, _ := line["properties"].(map[string]any)

	return domain.CartLine{
		Key:        domain.LineKey(stringField(line, "key")),
		VariantID:  domain.VariantID(variantID),
		Quantity:   int(intField(line, "quantity")),
		Title:      stringField(line, "title"),
		Price:      moneyField(line, "price", unit),
		Properties: mapPropertiesToDomain(props),
	}
}

func mapLinesToDomain(lines []any, unit currency.Unit) []domain.CartLine {
	var items []domain.CartLine

	for _, raw := range lines {
		line, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, mapLineToDomain(line, unit))
	}

	return items
}

// mapPropertiesToDomain flattens property values to strings; null values are dropped.
func mapPropertiesToDomain(props map[string]any) domain.Properties {
	if len(props) == 0 {
		return nil
	}

	out := make(domain.Properties, len(props))
	for k, v := range props {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		default:
			data, err := json.Marshal(val)
			if err != nil {
				out[k] = fmt.Sprint(val)
				continue
			}
			out[k] = string(data)
		}
	}

	return out
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	}
	return ""
}

// intField reads integers sent either as JSON numbers or numeric strings.
func intField(obj map[string]any, key string) int64 {
	var s string
	switch v := obj[key].(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	default:
		return 0
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// moneyField reads a JSON number as minor units and a string such as "25.99"
// as a major-unit amount.
func moneyField(obj map[string]any, key string, unit currency.Unit) domain.Money {
	switch v := obj[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return domain.MoneyFromMinor(n, unit)
		}
	case string:
		if amount, err := decimal.NewFromString(v); err == nil {
			return domain.Money{Amount: amount, Currency: unit}
		}
	}
	return domain.Money{Currency: unit}
}
