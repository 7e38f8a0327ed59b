package tool

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

// lookupProduct resolves a reference by exact id, then by case-insensitive
// name prefix, the two store-level lookups every specialist shares.
func lookupProduct(ctx context.Context, store contractx.Store, ref string) (*contractx.Product, error) {
	p, err := store.ProductByID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !contractx.NotFound(err) {
		return nil, err
	}
	return store.ProductByNamePrefix(ctx, ref)
}

// resolveProduct applies the full reference-resolution precedence over the
// catalog, returning the first hit:
//  1. exact case-insensitive id match
//  2. exact case-insensitive full-name match
//  3. hyphenated reference contained in the id ("-mattress" suffix stripped)
//  4. word overlap covering at least half of the reference's tokens
func resolveProduct(ctx context.Context, store contractx.Store, ref string) (*contractx.Product, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty product reference", contractx.ErrProductNotFound)
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if p := matchProduct(products, trimmed); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", contractx.ErrProductNotFound, trimmed)
}

func matchProduct(products []contractx.Product, ref string) *contractx.Product {
	normalized := strings.ToLower(strings.TrimSpace(ref))

	for i, p := range products {
		if normalized == strings.ToLower(p.ID) {
			return &products[i]
		}
		if normalized == strings.ToLower(p.Name) {
			return &products[i]
		}
	}

	hyphenated := strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)
	hyphenated = strings.TrimSuffix(hyphenated, "-mattress")
	refWords := wordSet(normalized)

	for i, p := range products {
		if hyphenated != "" && strings.Contains(strings.ToLower(p.ID), hyphenated) {
			return &products[i]
		}
		nameWords := wordSet(strings.ToLower(p.Name))
		overlap := 0
		for w := range refWords {
			if nameWords[w] {
				overlap++
			}
		}
		if len(refWords) > 0 && 2*overlap >= len(refWords) {
			return &products[i]
		}
	}
	return nil
}

func wordSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		out[w] = true
	}
	return out
}
