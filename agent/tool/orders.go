package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

const deliveryEstimate = "5-7 business days"

var mattressSizes = []string{"Twin", "Twin XL", "Full", "Queen", "King", "California King"}

// OrderTools is the order specialist's operation table.
func OrderTools(store contractx.Store) Table {
	return Table{
		{
			Schema: contractx.ToolSchema{
				Name:        "create_order",
				Description: "Create a new order for a product",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"product_id": map[string]any{
							"type":        "string",
							"description": "ID of the product being ordered",
						},
						"size": map[string]any{
							"type":        "string",
							"description": "Size of the mattress",
							"enum":        mattressSizes,
						},
						"quantity": map[string]any{
							"type":        "integer",
							"description": "Number of items to order",
							"default":     1,
						},
						"delivery_address": map[string]any{
							"type":        "string",
							"description": "Customer's delivery address",
						},
						"payment_method": map[string]any{
							"type":        "string",
							"description": "Customer's payment method",
							"enum":        []string{contractx.PaymentCreditCard, contractx.PaymentDebitCard, contractx.PaymentPayPal},
						},
					},
					"required": []string{"product_id", "size", "delivery_address", "payment_method"},
				},
			},
			Run: func(ctx context.Context, args json.RawMessage) (any, error) {
				var in struct {
					ProductID       string `json:"product_id"`
					Size            string `json:"size"`
					Quantity        int    `json:"quantity"`
					DeliveryAddress string `json:"delivery_address"`
					PaymentMethod   string `json:"payment_method"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return nil, err
				}
				return createOrder(ctx, store, in.ProductID, in.Size, in.DeliveryAddress, in.PaymentMethod, in.Quantity)
			},
		},
		{
			Schema: contractx.ToolSchema{
				Name:        "get_order_status",
				Description: "Get status information for an order",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"order_id": map[string]any{
							"type":        "string",
							"description": "ID of the order to check",
						},
					},
					"required": []string{"order_id"},
				},
			},
			Run: func(ctx context.Context, args json.RawMessage) (any, error) {
				var in struct {
					OrderID string `json:"order_id"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return nil, err
				}
				return getOrderStatus(ctx, store, in.OrderID)
			},
		},
	}
}

func createOrder(ctx context.Context, store contractx.Store, ref, size, address, payment string, quantity int) (any, error) {
	p, err := lookupProduct(ctx, store, ref)
	if err != nil {
		return nil, err
	}
	if !p.HasSize(size) {
		return nil, fmt.Errorf("%w: size %s not available for %s", contractx.ErrValidation, size, p.Name)
	}
	if quantity < 1 {
		quantity = 1
	}

	order := contractx.Order{
		OrderID:         newOrderID(p.ID, time.Now().UTC()),
		ProductID:       p.ID,
		ProductName:     p.Name,
		Size:            size,
		Quantity:        quantity,
		Price:           p.Price,
		Total:           p.Price * float64(quantity),
		Status:          contractx.OrderStatusConfirmed,
		DeliveryAddress: address,
		PaymentMethod:   payment,
		CreatedAt:       time.Now().UTC(),
	}
	if err := store.InsertOrder(ctx, order); err != nil {
		return nil, err
	}

	log.Info().Str("order_id", order.OrderID).Str("product_id", p.ID).Float64("total", order.Total).Msg("order created")
	return map[string]any{
		"success":            true,
		"order_id":           order.OrderID,
		"total":              order.Total,
		"status":             order.Status,
		"delivery_address":   address,
		"payment_method":     payment,
		"estimated_delivery": deliveryEstimate,
	}, nil
}

func getOrderStatus(ctx context.Context, store contractx.Store, orderID string) (any, error) {
	order, err := store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"order_id":           order.OrderID,
		"product":            order.ProductName,
		"size":               order.Size,
		"quantity":           order.Quantity,
		"total":              order.Total,
		"status":             order.Status,
		"created_at":         order.CreatedAt.Format(time.RFC3339),
		"estimated_delivery": deliveryEstimate,
	}, nil
}

// newOrderID combines a product-family tag, a fixed-width timestamp slice,
// and a random suffix so concurrent orders in the same second cannot collide.
func newOrderID(productID string, now time.Time) string {
	ts := now.Format("20060102150405")
	random := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("%s%s-%s", familyTag(productID), ts[len(ts)-6:], random)
}

// familyTag derives a short uppercase tag from the leading id segments,
// e.g. "ultra-comfort-mattress" -> "UC".
func familyTag(productID string) string {
	parts := strings.Split(productID, "-")
	var b strings.Builder
	for i, part := range parts {
		if i == 2 || part == "" {
			break
		}
		b.WriteByte(part[0])
	}
	if b.Len() == 0 {
		return "OR"
	}
	return strings.ToUpper(b.String())
}
