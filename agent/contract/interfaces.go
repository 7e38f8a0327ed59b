package contract

import "context"

// ChatModel is the LLM collaborator: role-tagged messages and optional
// tool schemas in, free text or exactly one tool invocation out.
type ChatModel interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// Store is the document-store collaborator. Keyed collections with
// find-one/find-many, insert, and upsert-by-key; no transactional
// guarantees across calls.
type Store interface {
	ProductByID(ctx context.Context, id string) (*Product, error)
	ProductByNamePrefix(ctx context.Context, prefix string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	UpsertProduct(ctx context.Context, p Product) error

	ReviewsByProduct(ctx context.Context, productID string) ([]Review, error)
	ListReviews(ctx context.Context) ([]Review, error)
	InsertReview(ctx context.Context, r Review) error
	UpsertReview(ctx context.Context, r Review) error

	OrderByID(ctx context.Context, orderID string) (*Order, error)
	InsertOrder(ctx context.Context, o Order) error
}
