package contract

import "fmt"

// ResponderKind is the closed set of specialist identities the router can
// select. Dispatch is an exhaustive switch over these, not a runtime registry.
type ResponderKind string

const (
	KindProductDetails ResponderKind = "product_details"
	KindReviews        ResponderKind = "reviews"
	KindOrders         ResponderKind = "orders"
)

// AllKinds returns every known responder kind in routing-prompt order.
func AllKinds() []ResponderKind {
	return []ResponderKind{KindProductDetails, KindReviews, KindOrders}
}

// ParseResponderKind validates a kind emitted by the model.
func ParseResponderKind(s string) (ResponderKind, error) {
	switch ResponderKind(s) {
	case KindProductDetails, KindReviews, KindOrders:
		return ResponderKind(s), nil
	}
	return "", fmt.Errorf("%w: unknown responder kind %q", ErrSchemaViolation, s)
}

// ResponderDescriptor is the routing-facing description of one responder:
// display name, responsibilities, and keyword hints consumed only by the
// router's prompt construction.
type ResponderDescriptor struct {
	Kind             ResponderKind
	DisplayName      string
	Responsibilities []string
	Keywords         []string
}

// Describe returns the descriptor for a kind.
func Describe(kind ResponderKind) ResponderDescriptor {
	switch kind {
	case KindProductDetails:
		return ResponderDescriptor{
			Kind:        KindProductDetails,
			DisplayName: "Product Details",
			Responsibilities: []string{
				"Product information, features, specifications",
				"Price inquiries",
				"Product comparisons",
				"Technical questions",
			},
			Keywords: []string{"features", "specs", "compare", "difference", "price", "size", "material"},
		}
	case KindReviews:
		return ResponderDescriptor{
			Kind:        KindReviews,
			DisplayName: "Reviews",
			Responsibilities: []string{
				"Customer feedback and experiences",
				"Ratings and review analysis",
				"Customer satisfaction metrics",
			},
			Keywords: []string{"reviews", "ratings", "feedback", "customers say", "experience", "recommend"},
		}
	case KindOrders:
		return ResponderDescriptor{
			Kind:        KindOrders,
			DisplayName: "Orders",
			Responsibilities: []string{
				"Purchase processing",
				"Order status and tracking",
				"Shipping and delivery",
				"Payment handling",
			},
			Keywords: []string{"buy", "order", "purchase", "delivery", "shipping", "payment", "track"},
		}
	}
	return ResponderDescriptor{Kind: kind, DisplayName: string(kind)}
}
