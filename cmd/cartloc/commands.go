package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/prebuy-ai/order-routing/internal/domain"
	"github.com/prebuy-ai/order-routing/internal/routing"
	"github.com/prebuy-ai/order-routing/internal/theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func parseVariantID(s string) (domain.VariantID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("variant id[%s] is not numeric: %w", s, err)
	}
	return domain.VariantID(id), nil
}

func newAddCmd(a *app) *cobra.Command {
	var (
		form     bool
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "add <variantId> <locationId>",
		Short: "Add a variant to the cart with a location preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			variantID, err := parseVariantID(args[0])
			if err != nil {
				return err
			}
			locationID := domain.LocationID(args[1])

			client, err := a.cartClient()
			if err != nil {
				return err
			}

			if form {
				if err := client.AddItemWithLocationForm(cmd.Context(), variantID, quantity, locationID); err != nil {
					return err
				}
				a.logger.Info("added to cart with location preference",
					zap.Int64("variant_id", int64(variantID)),
					zap.String("location_id", string(locationID)),
					zap.Bool("form", true))
				return nil
			}

			added, err := client.AddItemWithLocation(cmd.Context(), variantID, locationID)
			if err != nil {
				return err
			}
			a.logger.Info("added to cart with location preference",
				zap.Int64("variant_id", int64(variantID)),
				zap.String("location_id", string(locationID)),
				zap.Int("lines", len(added.Items)))

			return printJSON(cmd, json.RawMessage(added.Raw))
		},
	}

	cmd.Flags().BoolVar(&form, "form", false, "submit as a plain form post to /cart/add")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity for --form submissions")

	return cmd
}

func newChangeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "change <lineKey> <locationId>",
		Short: "Set the location preference of an existing cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineKey := domain.LineKey(args[0])
			locationID := domain.LocationID(args[1])

			client, err := a.cartClient()
			if err != nil {
				return err
			}

			cart, err := client.UpdateLineLocation(cmd.Context(), lineKey, locationID)
			if err != nil {
				return err
			}
			a.logger.Info("updated cart line with location preference",
				zap.String("line_key", string(lineKey)),
				zap.String("location_id", string(locationID)),
				zap.Int("item_count", cart.ItemCount))

			return printJSON(cmd, json.RawMessage(cart.Raw))
		},
	}
}

func newSnippetCmd(a *app) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "snippet <variantId> <locationId>",
		Short: "Print a theme product form carrying the location property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			variantID, err := parseVariantID(args[0])
			if err != nil {
				return err
			}

			return theme.RenderProductForm(cmd.OutOrStdout(), theme.FormData{
				VariantID:  variantID,
				Quantity:   quantity,
				LocationID: domain.LocationID(args[1]),
			})
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "default quantity in the form")

	return cmd
}

// rankInput holds both fulfillment hook inputs; either part may be empty.
type rankInput struct {
	FulfillmentGroups []routing.FulfillmentGroup `json:"fulfillmentGroups"`
	Cart              routing.Cart               `json:"cart"`
	Locations         []routing.Location         `json:"locations"`
}

type rankOutput struct {
	Rankings    routing.RankingResult    `json:"rankings"`
	Constraints routing.ConstraintResult `json:"constraints"`
}

func newRankCmd(a *app) *cobra.Command {
	var (
		inputPath string
		key       string
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Compute location rankings and same-location constraints from a cart snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("os.ReadFile: %w", err)
			}

			var in rankInput
			if err := json.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("json.Unmarshal: %w", err)
			}

			out, err := rank(cmd.Context(), routing.NewRouter(key), in)
			if err != nil {
				return err
			}
			a.logger.Debug("routing computed",
				zap.String("key", key),
				zap.Int("rankings", len(out.Rankings.Operations)),
				zap.Int("constraints", len(out.Constraints.Operations)))

			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "JSON file with fulfillmentGroups, cart and locations")
	cmd.Flags().StringVar(&key, "key", domain.LocationPropertyKey, "line attribute carrying the location id")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// rank evaluates both fulfillment hooks, each on its own goroutine as the
// platform runs them independently. A cancelled ctx skips the work.
func rank(ctx context.Context, router *routing.Router, in rankInput) (rankOutput, error) {
	var out rankOutput

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out.Rankings = router.RankLocations(routing.RankingInput{
			FulfillmentGroups: in.FulfillmentGroups,
			Locations:         in.Locations,
		})
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out.Constraints = router.SameLocationConstraints(routing.ConstraintInput{
			Cart:      in.Cart,
			Locations: in.Locations,
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return rankOutput{}, fmt.Errorf("rank: %w", err)
	}

	return out, nil
}
