package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/router.txt
	routerRaw string

	//go:embed template/product_details.txt
	productDetailsRaw string

	//go:embed template/reviews.txt
	reviewsRaw string

	//go:embed template/orders.txt
	ordersRaw string
)

func render(raw, placeholder, data string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, placeholder, strings.TrimSpace(data)))
}
