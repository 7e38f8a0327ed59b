package tool

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

// ProductTools is the product-details specialist's operation table.
func ProductTools(store contractx.Store) Table {
	return Table{
		{
			Schema: contractx.ToolSchema{
				Name:        "get_product_details",
				Description: "Get detailed information about a specific mattress product",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"product_id": map[string]any{
							"type":        "string",
							"description": "Name or ID of the product to retrieve details for",
						},
					},
					"required": []string{"product_id"},
				},
			},
			Run: func(ctx context.Context, args json.RawMessage) (any, error) {
				var in struct {
					ProductID string `json:"product_id"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return nil, err
				}
				return getProductDetails(ctx, store, in.ProductID)
			},
		},
		{
			Schema: contractx.ToolSchema{
				Name:        "compare_products",
				Description: "Compare multiple mattress products",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"product_ids": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Names or IDs of products to compare",
							"minItems":    1,
						},
					},
					"required": []string{"product_ids"},
				},
			},
			Run: func(ctx context.Context, args json.RawMessage) (any, error) {
				var in struct {
					ProductIDs []string `json:"product_ids"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return nil, err
				}
				return compareProducts(ctx, store, in.ProductIDs)
			},
		},
	}
}

func getProductDetails(ctx context.Context, store contractx.Store, ref string) (any, error) {
	p, err := lookupProduct(ctx, store, ref)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("product_id", p.ID).Msg("product details resolved")
	return p, nil
}

// compareProducts never fails: unresolved references are reported alongside
// the catalog names so the model can explain them.
func compareProducts(ctx context.Context, store contractx.Store, refs []string) (any, error) {
	found := make([]contractx.Product, 0, len(refs))
	var notFound []string

	for _, ref := range refs {
		p, err := resolveProduct(ctx, store, ref)
		if err != nil {
			if contractx.NotFound(err) {
				notFound = append(notFound, ref)
				continue
			}
			return nil, err
		}
		found = append(found, *p)
	}

	out := map[string]any{
		"total_products": len(found),
		"products":       found,
	}
	if len(notFound) > 0 {
		products, err := store.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(products))
		for _, p := range products {
			names = append(names, p.Name)
		}
		out["not_found"] = map[string]any{
			"products":           notFound,
			"available_products": names,
		}
		log.Warn().Strs("references", notFound).Msg("comparison references not found")
	}
	return out, nil
}
