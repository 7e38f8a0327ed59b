package responder

import contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"

// Enablement is the configuration collaborator's view of which responder
// identities are live. All default on.
type Enablement struct {
	ProductDetails bool `envconfig:"ENABLE_PRODUCT_DETAILS" default:"true"`
	Reviews        bool `envconfig:"ENABLE_REVIEWS" default:"true"`
	Orders         bool `envconfig:"ENABLE_ORDERS" default:"true"`
}

// Kinds returns the enabled responder kinds in routing-prompt order.
func (e Enablement) Kinds() []contractx.ResponderKind {
	var kinds []contractx.ResponderKind
	for _, k := range contractx.AllKinds() {
		switch k {
		case contractx.KindProductDetails:
			if e.ProductDetails {
				kinds = append(kinds, k)
			}
		case contractx.KindReviews:
			if e.Reviews {
				kinds = append(kinds, k)
			}
		case contractx.KindOrders:
			if e.Orders {
				kinds = append(kinds, k)
			}
		}
	}
	return kinds
}
