// Package prompt builds the system prompts for the router and the three
// responders, splicing live catalog and review data into embedded templates.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

// Router enumerates the enabled responders with their responsibilities and
// keyword hints inside the routing prompt.
func Router(descriptors []contractx.ResponderDescriptor) string {
	var b strings.Builder
	for i, d := range descriptors {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, d.DisplayName, d.Kind)
		for _, r := range d.Responsibilities {
			fmt.Fprintf(&b, "   - %s\n", r)
		}
		fmt.Fprintf(&b, "   KEYWORDS: %s\n", strings.Join(d.Keywords, ", "))
	}
	return render(routerRaw, "{{RESPONDERS}}", b.String())
}

// ProductDetails embeds every product's id, name, type, price, lead features,
// and fit tags into the product specialist prompt.
func ProductDetails(products []contractx.Product) string {
	var b strings.Builder
	for _, p := range products {
		features := p.KeyFeatures
		if len(features) > 3 {
			features = features[:3]
		}
		fmt.Fprintf(&b, "Product ID: %s\n", p.ID)
		fmt.Fprintf(&b, "Name: %s\n", p.Name)
		fmt.Fprintf(&b, "Type: %s\n", p.Type)
		fmt.Fprintf(&b, "Price: $%.2f\n", p.Price)
		fmt.Fprintf(&b, "Key Features: %s\n", strings.Join(features, ", "))
		fmt.Fprintf(&b, "Best For: %s\n\n", strings.Join(p.BestFor, ", "))
	}
	return render(productDetailsRaw, "{{CATALOG}}", b.String())
}

// Reviews embeds per-product review counts, averages, and up to three sample
// reviews into the reviews specialist prompt.
func Reviews(products []contractx.Product, reviews []contractx.Review) string {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	byProduct := make(map[string][]contractx.Review)
	for _, r := range reviews {
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r)
	}

	ids := make([]string, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		rs := byProduct[id]
		name := names[id]
		if name == "" {
			name = id
		}
		sum := 0
		for _, r := range rs {
			sum += r.Rating
		}
		fmt.Fprintf(&b, "Product: %s\n", name)
		fmt.Fprintf(&b, "Number of Reviews: %d\n", len(rs))
		fmt.Fprintf(&b, "Average Rating: %.1f\n", float64(sum)/float64(len(rs)))
		b.WriteString("Sample Reviews:\n")
		samples := rs
		if len(samples) > 3 {
			samples = samples[:3]
		}
		for _, r := range samples {
			fmt.Fprintf(&b, "- %d/5: %s\n", r.Rating, r.Content)
		}
		b.WriteString("\n")
	}
	return render(reviewsRaw, "{{REVIEWS}}", b.String())
}

// Orders embeds the product price list and available sizes into the order
// specialist prompt.
func Orders(products []contractx.Product) string {
	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "Product: %s\n", p.Name)
		fmt.Fprintf(&b, "ID: %s\n", p.ID)
		fmt.Fprintf(&b, "Price: $%.2f\n", p.Price)
		fmt.Fprintf(&b, "Available Sizes: %s\n\n", strings.Join(p.AvailableSizes, ", "))
	}
	return render(ordersRaw, "{{PRICELIST}}", b.String())
}
