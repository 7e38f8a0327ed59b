package contract

import "time"

// Role tags one side of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one {role, content} message within a session.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Product is a catalog record. Immutable after seeding.
type Product struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Price              float64   `bson:"price" json:"price"`
	Type               string    `bson:"type" json:"type"`
	Height             string    `bson:"height" json:"height"`
	ConstructionLayers []string  `bson:"construction_layers" json:"construction_layers"`
	KeyFeatures        []string  `bson:"key_features" json:"key_features"`
	BestFor            []string  `bson:"best_for" json:"best_for"`
	AvailableSizes     []string  `bson:"available_sizes" json:"available_sizes"`
	Warranty           string    `bson:"warranty" json:"warranty"`
	TrialPeriod        string    `bson:"trial_period" json:"trial_period"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}

// HasSize reports whether the product is offered in the given size.
func (p Product) HasSize(size string) bool {
	for _, s := range p.AvailableSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Review is one customer review of a product. Rating is 1..5 inclusive,
// enforced at write time.
type Review struct {
	ProductID        string    `bson:"product_id" json:"product_id"`
	CustomerID       string    `bson:"customer_id" json:"customer_id"`
	Rating           int       `bson:"rating" json:"rating"`
	Content          string    `bson:"content" json:"content"`
	VerifiedPurchase bool      `bson:"verified_purchase" json:"verified_purchase"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

// Order status and payment method enums.
const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"

	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentPayPal     = "paypal"
)

// Order is created exactly once by the orders tool handler; status may be
// moved along by an external fulfilment process.
type Order struct {
	OrderID         string    `bson:"order_id" json:"order_id"`
	ProductID       string    `bson:"product_id" json:"product_id"`
	ProductName     string    `bson:"product_name" json:"product_name"`
	Size            string    `bson:"size" json:"size"`
	Quantity        int       `bson:"quantity" json:"quantity"`
	Price           float64   `bson:"price" json:"price"`
	Total           float64   `bson:"total" json:"total"`
	Status          string    `bson:"status" json:"status"`
	DeliveryAddress string    `bson:"delivery_address" json:"delivery_address"`
	PaymentMethod   string    `bson:"payment_method" json:"payment_method"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// Message is one role-tagged entry of an LLM conversation, including the
// tool-invocation and tool-result records exchanged mid-turn.
type Message struct {
	Role     string    `json:"role"` // system | user | assistant | tool
	Content  string    `json:"content"`
	ToolCall *ToolCall `json:"tool_call,omitempty"` // assistant tool invocation
	ToolID   string    `json:"tool_id,omitempty"`   // tool result correlation
}

// ToolCall is a structured request emitted by the model, naming one
// declared operation and its raw JSON arguments.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolSchema declares one callable operation to the model.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// CompletionRequest is the input to one ChatModel call.
type CompletionRequest struct {
	Messages    []Message
	Tools       []ToolSchema
	ForceTool   string // non-empty: the model must invoke this tool
	Temperature float64
}

// CompletionResponse carries either free text or exactly one tool call.
type CompletionResponse struct {
	Text     string
	ToolCall *ToolCall
}

// RouteDecision is the router's classification of one inbound message.
type RouteDecision struct {
	Kind       string  `json:"responder"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}
