package responder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

type fakeModel struct {
	responses []contractx.CompletionResponse
	requests  []contractx.CompletionRequest
	err       error
	idx       int
}

func (f *fakeModel) Complete(_ context.Context, req contractx.CompletionRequest) (contractx.CompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return contractx.CompletionResponse{}, f.err
	}
	if f.idx >= len(f.responses) {
		return contractx.CompletionResponse{}, errors.New("no fake response left")
	}
	resp := f.responses[f.idx]
	f.idx++
	return resp, nil
}

type fakeStore struct {
	products []contractx.Product
	reviews  []contractx.Review
	orders   []contractx.Order
}

func (f *fakeStore) ProductByID(_ context.Context, id string) (*contractx.Product, error) {
	for i, p := range f.products {
		if p.ID == id {
			return &f.products[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %q", contractx.ErrProductNotFound, id)
}

func (f *fakeStore) ProductByNamePrefix(_ context.Context, prefix string) (*contractx.Product, error) {
	for i, p := range f.products {
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(prefix)) {
			return &f.products[i], nil
		}
	}
	return nil, fmt.Errorf("%w: name %q", contractx.ErrProductNotFound, prefix)
}

func (f *fakeStore) ListProducts(context.Context) ([]contractx.Product, error) {
	return f.products, nil
}

func (f *fakeStore) UpsertProduct(_ context.Context, p contractx.Product) error {
	f.products = append(f.products, p)
	return nil
}

func (f *fakeStore) ReviewsByProduct(_ context.Context, productID string) ([]contractx.Review, error) {
	var out []contractx.Review
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListReviews(context.Context) ([]contractx.Review, error) {
	return f.reviews, nil
}

func (f *fakeStore) InsertReview(_ context.Context, r contractx.Review) error {
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeStore) UpsertReview(_ context.Context, r contractx.Review) error {
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeStore) OrderByID(_ context.Context, orderID string) (*contractx.Order, error) {
	for i, o := range f.orders {
		if o.OrderID == orderID {
			return &f.orders[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", contractx.ErrOrderNotFound, orderID)
}

func (f *fakeStore) InsertOrder(_ context.Context, o contractx.Order) error {
	f.orders = append(f.orders, o)
	return nil
}

func storeFixture() *fakeStore {
	return &fakeStore{
		products: []contractx.Product{
			{
				ID:             "eco-green",
				Name:           "Eco Green Mattress",
				Price:          1199,
				AvailableSizes: []string{"Twin", "Twin XL", "Full", "Queen", "King"},
			},
		},
	}
}

func TestRespondWithoutToolCall(t *testing.T) {
	t.Parallel()

	model := &fakeModel{
		responses: []contractx.CompletionResponse{
			{Text: "We offer mattresses from $699 to $1,899."},
		},
	}

	r, err := New(context.Background(), contractx.KindProductDetails, model, storeFixture(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := r.Respond(context.Background(), "what do you sell?", nil)
	if got != "We offer mattresses from $699 to $1,899." {
		t.Fatalf("unexpected reply: %q", got)
	}
	if len(model.requests) != 1 {
		t.Fatalf("expected a single completion, got %d", len(model.requests))
	}
	if len(model.requests[0].Tools) == 0 {
		t.Fatal("first completion must declare tool schemas")
	}
}

func TestRespondWithToolCall(t *testing.T) {
	t.Parallel()

	model := &fakeModel{
		responses: []contractx.CompletionResponse{
			{ToolCall: &contractx.ToolCall{
				ID:        "call_1",
				Name:      "get_product_details",
				Arguments: `{"product_id":"eco-green"}`,
			}},
			{Text: "The Eco Green Mattress costs $1,199."},
		},
	}

	r, err := New(context.Background(), contractx.KindProductDetails, model, storeFixture(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := r.Respond(context.Background(), "how much is the eco green?", nil)
	if got != "The Eco Green Mattress costs $1,199." {
		t.Fatalf("unexpected reply: %q", got)
	}

	if len(model.requests) != 2 {
		t.Fatalf("expected two completions, got %d", len(model.requests))
	}
	followUp := model.requests[1]
	if len(followUp.Tools) != 0 {
		t.Fatal("follow-up completion must not declare tools")
	}

	var sawToolResult bool
	for _, m := range followUp.Messages {
		if m.Role == "tool" && m.ToolID == "call_1" {
			sawToolResult = true
			if !strings.Contains(m.Content, "eco-green") {
				t.Fatalf("tool result payload missing product: %s", m.Content)
			}
		}
	}
	if !sawToolResult {
		t.Fatal("follow-up messages missing tool result")
	}
}

func TestRespondNotFoundFedBackToModel(t *testing.T) {
	t.Parallel()

	model := &fakeModel{
		responses: []contractx.CompletionResponse{
			{ToolCall: &contractx.ToolCall{
				ID:        "call_1",
				Name:      "get_product_details",
				Arguments: `{"product_id":"waterbed"}`,
			}},
			{Text: "I couldn't find that product, but here's what we carry."},
		},
	}

	r, err := New(context.Background(), contractx.KindProductDetails, model, storeFixture(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := r.Respond(context.Background(), "tell me about the waterbed", nil)
	if got == Apology {
		t.Fatal("not-found must be explained, not apologized for")
	}

	followUp := model.requests[1]
	var sawErrorPayload bool
	for _, m := range followUp.Messages {
		if m.Role == "tool" && strings.Contains(m.Content, "error") {
			sawErrorPayload = true
		}
	}
	if !sawErrorPayload {
		t.Fatal("expected structured error payload in tool result")
	}
}

func TestRespondModelFailureApologizes(t *testing.T) {
	t.Parallel()

	model := &fakeModel{err: errors.New("upstream 500")}

	r, err := New(context.Background(), contractx.KindProductDetails, model, storeFixture(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := r.Respond(context.Background(), "hello", nil); got != Apology {
		t.Fatalf("expected apology, got %q", got)
	}
}

func TestRespondEmptyFollowUpApologizes(t *testing.T) {
	t.Parallel()

	model := &fakeModel{
		responses: []contractx.CompletionResponse{
			{ToolCall: &contractx.ToolCall{
				ID:        "call_1",
				Name:      "get_product_details",
				Arguments: `{"product_id":"eco-green"}`,
			}},
			{Text: ""},
		},
	}

	r, err := New(context.Background(), contractx.KindProductDetails, model, storeFixture(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := r.Respond(context.Background(), "price?", nil); got != Apology {
		t.Fatalf("expected apology for empty follow-up, got %q", got)
	}
}

func TestRespondBoundsHistory(t *testing.T) {
	t.Parallel()

	model := &fakeModel{
		responses: []contractx.CompletionResponse{{Text: "ok"}},
	}

	r, err := New(context.Background(), contractx.KindProductDetails, model, storeFixture(), Config{HistoryWindow: 2})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	history := []contractx.Turn{
		{Role: contractx.RoleUser, Content: "one"},
		{Role: contractx.RoleAssistant, Content: "two"},
		{Role: contractx.RoleUser, Content: "three"},
		{Role: contractx.RoleAssistant, Content: "four"},
	}
	r.Respond(context.Background(), "five", history)

	msgs := model.requests[0].Messages
	// system + 2 history turns + current user message
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[1].Content != "three" || msgs[2].Content != "four" {
		t.Fatalf("history window kept wrong turns: %q, %q", msgs[1].Content, msgs[2].Content)
	}
}

func TestNewUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), contractx.ResponderKind("billing"), &fakeModel{}, storeFixture(), Config{})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEnablementKinds(t *testing.T) {
	t.Parallel()

	all := Enablement{ProductDetails: true, Reviews: true, Orders: true}
	if got := len(all.Kinds()); got != 3 {
		t.Fatalf("expected 3 kinds, got %d", got)
	}

	partial := Enablement{Reviews: true}
	kinds := partial.Kinds()
	if len(kinds) != 1 || kinds[0] != contractx.KindReviews {
		t.Fatalf("unexpected kinds: %#v", kinds)
	}
}
