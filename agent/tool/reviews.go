package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

// Review filters.
const (
	FilterPositive = "positive" // rating >= 4
	FilterNegative = "negative" // rating <= 2
	FilterAll      = "all"
)

// ReviewTools is the reviews specialist's operation table.
func ReviewTools(store contractx.Store) Table {
	return Table{
		{
			Schema: contractx.ToolSchema{
				Name:        "get_product_reviews",
				Description: "Get reviews for a specific product",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"product_id": map[string]any{
							"type":        "string",
							"description": "ID or name of the product to get reviews for",
						},
						"filter_type": map[string]any{
							"type":        "string",
							"enum":        []string{FilterPositive, FilterNegative, FilterAll},
							"description": "Type of reviews to retrieve",
							"default":     FilterAll,
						},
					},
					"required": []string{"product_id"},
				},
			},
			Run: func(ctx context.Context, args json.RawMessage) (any, error) {
				var in struct {
					ProductID  string `json:"product_id"`
					FilterType string `json:"filter_type"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return nil, err
				}
				return getProductReviews(ctx, store, in.ProductID, in.FilterType)
			},
		},
		{
			Schema: contractx.ToolSchema{
				Name:        "get_review_stats",
				Description: "Get statistical information about product reviews",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"product_id": map[string]any{
							"type":        "string",
							"description": "ID or name of the product to get statistics for",
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
				return getReviewStats(ctx, store, in.ProductID)
			},
		},
		{
			Schema: contractx.ToolSchema{
				Name:        "create_review",
				Description: "Create a new review for a product",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"product_id": map[string]any{
							"type":        "string",
							"description": "ID of the product being reviewed",
						},
						"rating": map[string]any{
							"type":        "integer",
							"description": "Rating from 1 to 5 stars",
							"minimum":     1,
							"maximum":     5,
						},
						"content": map[string]any{
							"type":        "string",
							"description": "Review text content",
						},
					},
					"required": []string{"product_id", "rating", "content"},
				},
			},
			Run: func(ctx context.Context, args json.RawMessage) (any, error) {
				var in struct {
					ProductID string `json:"product_id"`
					Rating    int    `json:"rating"`
					Content   string `json:"content"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return nil, err
				}
				return createReview(ctx, store, in.ProductID, in.Rating, in.Content)
			},
		},
	}
}

// reviewsForReference fetches reviews by exact product id, falling back to
// name-prefix product lookup. An unknown product yields an empty slice.
func reviewsForReference(ctx context.Context, store contractx.Store, ref string) ([]contractx.Review, error) {
	reviews, err := store.ReviewsByProduct(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(reviews) > 0 {
		return reviews, nil
	}

	p, err := store.ProductByNamePrefix(ctx, ref)
	if err != nil {
		if contractx.NotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return store.ReviewsByProduct(ctx, p.ID)
}

type reviewView struct {
	Rating           int    `json:"rating"`
	Content          string `json:"content"`
	VerifiedPurchase bool   `json:"verified_purchase"`
	CustomerID       string `json:"customer_id"`
}

// getProductReviews returns the filtered review set; the average reflects
// only the filtered subset. An unknown product is an empty result, not an
// error.
func getProductReviews(ctx context.Context, store contractx.Store, ref, filter string) (any, error) {
	if filter == "" {
		filter = FilterAll
	}

	reviews, err := reviewsForReference(ctx, store, ref)
	if err != nil {
		return nil, err
	}

	filtered := reviews[:0:0]
	for _, r := range reviews {
		switch filter {
		case FilterPositive:
			if r.Rating >= 4 {
				filtered = append(filtered, r)
			}
		case FilterNegative:
			if r.Rating <= 2 {
				filtered = append(filtered, r)
			}
		default:
			filtered = append(filtered, r)
		}
	}

	views := make([]reviewView, 0, len(filtered))
	sum := 0
	for _, r := range filtered {
		sum += r.Rating
		views = append(views, reviewView{
			Rating:           r.Rating,
			Content:          r.Content,
			VerifiedPurchase: r.VerifiedPurchase,
			CustomerID:       r.CustomerID,
		})
	}

	average := 0.0
	if len(filtered) > 0 {
		average = float64(sum) / float64(len(filtered))
	}

	log.Info().Str("product", ref).Str("filter", filter).Int("count", len(filtered)).Msg("fetched product reviews")
	return map[string]any{
		"product_id":     ref,
		"total_reviews":  len(filtered),
		"average_rating": average,
		"filter_type":    filter,
		"reviews":        views,
	}, nil
}

// getReviewStats builds the 1-5 star histogram, average, and verified count.
// No reviews is a message payload, not an error.
func getReviewStats(ctx context.Context, store contractx.Store, ref string) (any, error) {
	reviews, err := reviewsForReference(ctx, store, ref)
	if err != nil {
		return nil, err
	}

	if len(reviews) == 0 {
		return map[string]any{
			"product_id":    ref,
			"total_reviews": 0,
			"message":       "No reviews found for this product",
		}, nil
	}

	histogram := map[string]int{}
	sum, verified := 0, 0
	for _, r := range reviews {
		sum += r.Rating
		histogram[fmt.Sprintf("%d_star", r.Rating)]++
		if r.VerifiedPurchase {
			verified++
		}
	}
	for star := 1; star <= 5; star++ {
		key := fmt.Sprintf("%d_star", star)
		if _, ok := histogram[key]; !ok {
			histogram[key] = 0
		}
	}

	return map[string]any{
		"product_id":          ref,
		"total_reviews":       len(reviews),
		"average_rating":      float64(sum) / float64(len(reviews)),
		"rating_distribution": histogram,
		"verified_purchases":  verified,
	}, nil
}

// createReview validates the rating before touching the store, resolves the
// product, and inserts a verified review stamped with the current time.
func createReview(ctx context.Context, store contractx.Store, ref string, rating int, content string) (any, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5, got %d", contractx.ErrValidation, rating)
	}

	p, err := lookupProduct(ctx, store, ref)
	if err != nil {
		return nil, err
	}

	review := contractx.Review{
		ProductID:        p.ID,
		Rating:           rating,
		Content:          content,
		VerifiedPurchase: true,
		CreatedAt:        time.Now().UTC(),
	}
	if err := store.InsertReview(ctx, review); err != nil {
		return nil, err
	}

	log.Info().Str("product_id", p.ID).Int("rating", rating).Msg("review created")
	return map[string]any{
		"success":    true,
		"product_id": p.ID,
		"rating":     rating,
		"content":    content,
		"message":    "Review submitted successfully",
	}, nil
}
