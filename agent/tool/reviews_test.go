package tool

import (
	"errors"
	"fmt"
	"testing"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

func reviewFixture() []contractx.Review {
	return []contractx.Review{
		{ProductID: "ultra-comfort-mattress", CustomerID: "john_d", Rating: 5, Content: "great", VerifiedPurchase: true},
		{ProductID: "ultra-comfort-mattress", CustomerID: "sarah_m", Rating: 4, Content: "good", VerifiedPurchase: true},
		{ProductID: "ultra-comfort-mattress", CustomerID: "carlos_h", Rating: 2, Content: "too firm", VerifiedPurchase: true},
		{ProductID: "ultra-comfort-mattress", CustomerID: "rachel_t", Rating: 3, Content: "ok", VerifiedPurchase: false},
	}
}

func TestGetProductReviewsPositiveFilter(t *testing.T) {
	t.Parallel()

	store := &fakeStore{products: catalogFixture(), reviews: reviewFixture()}
	table := ReviewTools(store)

	out, err := dispatch(t, table, "get_product_reviews",
		`{"product_id":"ultra-comfort-mattress","filter_type":"positive"}`)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	result := out.(map[string]any)
	if result["total_reviews"].(int) != 2 {
		t.Fatalf("unexpected total_reviews: %v", result["total_reviews"])
	}
	// Average covers the filtered subset only: (5+4)/2.
	if avg := result["average_rating"].(float64); avg != 4.5 {
		t.Fatalf("unexpected average_rating: %v", avg)
	}
}

func TestGetProductReviewsNegativeFilter(t *testing.T) {
	t.Parallel()

	store := &fakeStore{products: catalogFixture(), reviews: reviewFixture()}
	table := ReviewTools(store)

	out, err := dispatch(t, table, "get_product_reviews",
		`{"product_id":"ultra-comfort-mattress","filter_type":"negative"}`)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	result := out.(map[string]any)
	if result["total_reviews"].(int) != 1 {
		t.Fatalf("unexpected total_reviews: %v", result["total_reviews"])
	}
}

func TestGetProductReviewsByNameFallback(t *testing.T) {
	t.Parallel()

	store := &fakeStore{products: catalogFixture(), reviews: reviewFixture()}
	table := ReviewTools(store)

	out, err := dispatch(t, table, "get_product_reviews", `{"product_id":"Ultra Comfort"}`)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if out.(map[string]any)["total_reviews"].(int) != 4 {
		t.Fatal("expected name-prefix fallback to find all reviews")
	}
}

func TestGetProductReviewsUnknownProductIsEmpty(t *testing.T) {
	t.Parallel()

	store := &fakeStore{products: catalogFixture(), reviews: reviewFixture()}
	table := ReviewTools(store)

	out, err := dispatch(t, table, "get_product_reviews", `{"product_id":"waterbed"}`)
	if err != nil {
		t.Fatalf("unknown product should not error, got %v", err)
	}
	if out.(map[string]any)["total_reviews"].(int) != 0 {
		t.Fatal("expected empty result for unknown product")
	}
}

func TestGetReviewStatsHistogram(t *testing.T) {
	t.Parallel()

	store := &fakeStore{products: catalogFixture(), reviews: reviewFixture()}
	table := ReviewTools(store)

	out, err := dispatch(t, table, "get_review_stats", `{"product_id":"ultra-comfort-mattress"}`)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	result := out.(map[string]any)
	hist := result["rating_distribution"].(map[string]int)
	want := map[string]int{"1_star": 0, "2_star": 1, "3_star": 1, "4_star": 1, "5_star": 1}
	for k, v := range want {
		if hist[k] != v {
			t.Fatalf("histogram[%s] = %d, want %d", k, hist[k], v)
		}
	}
	if result["verified_purchases"].(int) != 3 {
		t.Fatalf("unexpected verified_purchases: %v", result["verified_purchases"])
	}
	if avg := result["average_rating"].(float64); avg != 3.5 {
		t.Fatalf("unexpected average_rating: %v", avg)
	}
}

func TestGetReviewStatsNoReviews(t *testing.T) {
	t.Parallel()

	store := &fakeStore{products: catalogFixture()}
	table := ReviewTools(store)

	out, err := dispatch(t, table, "get_review_stats", `{"product_id":"eco-green"}`)
	if err != nil {
		t.Fatalf("missing reviews should not error, got %v", err)
	}
	result := out.(map[string]any)
	if result["total_reviews"].(int) != 0 {
		t.Fatal("expected zero reviews")
	}
	if _, ok := result["message"]; !ok {
		t.Fatal("expected explanatory message for no reviews")
	}
}

func TestCreateReviewRatingBounds(t *testing.T) {
	t.Parallel()

	for _, rating := range []int{0, 6, -1} {
		store := &fakeStore{products: catalogFixture()}
		table := ReviewTools(store)

		_, err := dispatch(t, table, "create_review",
			fmt.Sprintf(`{"product_id":"eco-green","rating":%d,"content":"x"}`, rating))
		if !errors.Is(err, contractx.ErrValidation) {
			t.Fatalf("rating %d: expected ErrValidation, got %v", rating, err)
		}
		if len(store.reviews) != 0 {
			t.Fatalf("rating %d: review must not be stored", rating)
		}
	}
}

func TestCreateReviewSuccess(t *testing.T) {
	t.Parallel()

	store := &fakeStore{products: catalogFixture()}
	table := ReviewTools(store)

	out, err := dispatch(t, table, "create_review",
		`{"product_id":"Eco Green","rating":5,"content":"sleeps great"}`)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	result := out.(map[string]any)
	if result["success"].(bool) != true {
		t.Fatal("expected success")
	}
	if result["product_id"].(string) != "eco-green" {
		t.Fatalf("review stored against wrong product: %v", result["product_id"])
	}

	if len(store.reviews) != 1 {
		t.Fatalf("expected 1 stored review, got %d", len(store.reviews))
	}
	stored := store.reviews[0]
	if !stored.VerifiedPurchase {
		t.Fatal("created reviews must be marked verified")
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("created reviews must carry a timestamp")
	}
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	t.Parallel()

	store := &fakeStore{products: catalogFixture()}
	table := ReviewTools(store)

	_, err := dispatch(t, table, "create_review",
		`{"product_id":"waterbed","rating":5,"content":"x"}`)
	if !contractx.NotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
