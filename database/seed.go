package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

// Catalog returns the full mattress catalog. Products are keyed by id; the
// seeder upserts so repeated runs converge on the same state.
func Catalog() []contractx.Product {
	return []contractx.Product{
		{
			ID:     "ultra-comfort-mattress",
			Name:   "Ultra Comfort Mattress",
			Price:  1299.00,
			Type:   "Hybrid (Memory Foam + Pocket Coils)",
			Height: "12 inches",
			ConstructionLayers: []string{
				`2" Cooling Gel Memory Foam Top Layer`,
				`2" Responsive Comfort Foam`,
				`2" Transition Layer`,
				`6" Pocket Coil System (1,024 coils in Queen size)`,
			},
			KeyFeatures: []string{
				"Advanced temperature regulation with cooling gel technology",
				"Edge-to-edge support system",
				"Motion isolation technology",
				"Breathable quilted cover with silver-infused fibers",
				"CertiPUR-US certified foams",
				"Compatible with adjustable bed bases",
			},
			BestFor: []string{
				"Hot sleepers",
				"Couples",
				"Back and stomach sleepers",
				"Those needing extra edge support",
			},
			AvailableSizes: []string{"Twin", "Twin XL", "Full", "Queen", "King", "California King"},
			Warranty:       "15 years",
			TrialPeriod:    "100 nights",
		},
		{
			ID:     "performance-sport",
			Name:   "Performance Sport Mattress",
			Price:  1499.00,
			Type:   "Hybrid (Copper-Infused Memory Foam + Pocket Coils)",
			Height: "13 inches",
			ConstructionLayers: []string{
				`3" Copper-Infused Memory Foam`,
				`2" High-Density Support Foam`,
				`8" Zoned Pocket Coil System (1,560 coils in Queen size)`,
			},
			KeyFeatures: []string{
				"Copper-infused memory foam for muscle recovery",
				"Zoned support for athletic bodies",
				"Enhanced pressure relief",
				"Superior temperature regulation",
				"Antimicrobial protection",
				"Reinforced edge support",
			},
			BestFor: []string{
				"Athletes and active individuals",
				"Those with muscle soreness",
				"Hot sleepers",
				"Those needing targeted support",
			},
			AvailableSizes: []string{"Twin XL", "Full", "Queen", "King", "California King"},
			Warranty:       "20 years",
			TrialPeriod:    "120 nights",
		},
		{
			ID:     "eco-green",
			Name:   "Eco Green Mattress",
			Price:  1199.00,
			Type:   "Organic Latex Hybrid",
			Height: "11 inches",
			ConstructionLayers: []string{
				`3" Organic Latex`,
				`2" Organic Cotton and Wool Blend`,
				`6" Recycled Steel Coil System`,
			},
			KeyFeatures: []string{
				"100% organic and natural materials",
				"GOTS and GOLS certified",
				"Chemical-free construction",
				"Naturally temperature regulating",
				"Biodegradable and recyclable",
				"Sustainably sourced materials",
			},
			BestFor: []string{
				"Eco-conscious consumers",
				"Chemical-sensitive individuals",
				"Those preferring natural materials",
				"All sleep positions",
			},
			AvailableSizes: []string{"Twin", "Twin XL", "Full", "Queen", "King"},
			Warranty:       "25 years",
			TrialPeriod:    "180 nights",
		},
		{
			ID:     "dream-sleep",
			Name:   "Dream Sleep Mattress",
			Price:  899.00,
			Type:   "All-Foam",
			Height: "10 inches",
			ConstructionLayers: []string{
				`2" Memory Foam Comfort Layer`,
				`2" Adaptive Support Foam`,
				`6" High-Density Base Foam`,
			},
			KeyFeatures: []string{
				"Pressure-relieving memory foam",
				"Open-cell foam technology for better airflow",
				"Removable and washable cover",
				"Zero motion transfer",
				"CertiPUR-US certified foams",
				"Medium-firm feel (6/10 on firmness scale)",
			},
			BestFor: []string{
				"Side sleepers",
				"Light to average weight sleepers",
				"Those seeking motion isolation",
				"Budget-conscious shoppers",
			},
			AvailableSizes: []string{"Twin", "Full", "Queen", "King"},
			Warranty:       "10 years",
			TrialPeriod:    "100 nights",
		},
		{
			ID:     "luxury-cloud",
			Name:   "Luxury Cloud Mattress",
			Price:  1899.00,
			Type:   "Hybrid (Latex + Memory Foam + Coils)",
			Height: "14 inches",
			ConstructionLayers: []string{
				`2" Natural Latex Top Layer`,
				`2" Gel-Infused Memory Foam`,
				`2" Dynamic Response Foam`,
				`8" Zoned Support Coil System (1,744 coils in Queen size)`,
			},
			KeyFeatures: []string{
				"Organic cotton and wool cover",
				"Natural latex for durability and bounce",
				"Zoned lumbar support",
				"Enhanced edge support system",
				"Temperature neutral design",
				"Antimicrobial properties",
				"GOTS and GOLS certified materials",
			},
			BestFor: []string{
				"Luxury seekers",
				"Those with back pain",
				"Combination sleepers",
				"Eco-conscious consumers",
			},
			AvailableSizes: []string{"Twin XL", "Full", "Queen", "King", "California King", "Split King"},
			Warranty:       "25 years",
			TrialPeriod:    "180 nights",
		},
		{
			ID:     "essential-plus",
			Name:   "Essential Plus Mattress",
			Price:  699.00,
			Type:   "All-Foam",
			Height: "8 inches",
			ConstructionLayers: []string{
				`1.5" Comfort Foam`,
				`2" Pressure Relief Foam`,
				`4.5" Support Core Foam`,
			},
			KeyFeatures: []string{
				"Budget-friendly option",
				"Medium-firm support",
				"Basic cooling properties",
				"Lightweight and easy to move",
				"CertiPUR-US certified foams",
				"Ideal for guest rooms",
			},
			BestFor: []string{
				"Guest rooms",
				"Children's rooms",
				"Temporary living situations",
				"Budget shoppers",
			},
			AvailableSizes: []string{"Twin", "Full", "Queen"},
			Warranty:       "5 years",
			TrialPeriod:    "60 nights",
		},
	}
}

// SeedReviews returns the initial review set. All seeded reviews are
// verified purchases; eco-green ships without reviews so the no-reviews
// path stays reachable.
func SeedReviews() []contractx.Review {
	type row struct {
		product, customer string
		rating            int
		content           string
	}
	rows := []row{
		{"ultra-comfort-mattress", "john_d", 5, "Best sleep I've had in years! Perfect balance of soft and firm, and I don't feel my partner moving at all."},
		{"ultra-comfort-mattress", "sarah_m", 5, "The cooling technology actually works - no more night sweats. Worth every penny for the comfort and temperature regulation."},
		{"ultra-comfort-mattress", "mike_r", 4, "Great mattress overall, though took about 2 weeks to fully break in. Edge support is excellent as promised."},
		{"ultra-comfort-mattress", "emma_l", 5, "Finally found relief from my back pain after trying three other mattresses. The hybrid design provides perfect support."},
		{"ultra-comfort-mattress", "carlos_h", 2, "Too firm for my liking, even after the break-in period. Delivery was prompt though."},
		{"ultra-comfort-mattress", "lisa_p", 4, "Really happy with the quality and comfort. Only giving 4 stars because the price is a bit steep."},
		{"ultra-comfort-mattress", "david_k", 5, "Exceeded expectations in every way. My wife and I are both side and back sleepers, and it works perfectly for both of us."},
		{"ultra-comfort-mattress", "rachel_t", 3, "Decent mattress but the cooling effect isn't as dramatic as advertised. Still sleeping better than on my old mattress."},
		{"ultra-comfort-mattress", "patricia_n", 5, "The motion isolation is incredible - I can't feel my husband getting up at all. Plus, the edge support makes it feel bigger than our old mattress."},
		{"ultra-comfort-mattress", "james_b", 4, "Great quality and comfort, shipping was quick. Only complaint is that it's quite heavy to move."},

		{"dream-sleep", "maria_c", 5, "Perfect for our guest room! Everyone who stays over asks about where we got it."},
		{"dream-sleep", "tom_w", 3, "Good value for money, but does retain some heat. Works well for my kids' rooms."},
		{"dream-sleep", "anna_k", 4, "Great pressure relief and very comfortable. Just wish it had better edge support."},
		{"dream-sleep", "bob_m", 2, "Too soft for my taste, and started to sag after 6 months. Customer service was helpful though."},
		{"dream-sleep", "jenny_r", 5, "Amazing price point for the quality. Perfect for side sleeping and the motion isolation is excellent."},
		{"dream-sleep", "kevin_l", 4, "Comfortable and good quality for the price. No off-gassing smell unlike other foam mattresses I've tried."},
		{"dream-sleep", "sandra_p", 5, "Best mattress I've owned in this price range. The memory foam really cradles my pressure points."},
		{"dream-sleep", "michael_g", 1, "Developed a permanent body impression within 3 months. Not happy with the durability."},
		{"dream-sleep", "laura_b", 4, "Nice and comfortable, especially for the price point. Delivery and setup were hassle-free."},
		{"dream-sleep", "chris_h", 3, "Decent mattress but runs a bit warm. Good for winter, not so much for summer months."},

		{"luxury-cloud", "robert_j", 5, "The combination of latex and memory foam is perfect. Haven't slept this well in decades!"},
		{"luxury-cloud", "michelle_p", 5, "Expensive but worth every penny. The zoned support really helps with my lower back pain."},
		{"luxury-cloud", "william_s", 3, "Very comfortable but not sure it's worth the premium price. The organic materials are nice though."},
		{"luxury-cloud", "helen_k", 5, "Finally a luxury mattress that lives up to the hype. The natural materials help me sleep better knowing I'm not breathing in chemicals."},
		{"luxury-cloud", "george_n", 2, "Too soft despite being advertised as medium-firm. The return process was easy though."},
		{"luxury-cloud", "jessica_m", 5, "Best investment in my sleep ever. The latex layer adds the perfect amount of bounce while the memory foam contours perfectly."},
		{"luxury-cloud", "daniel_r", 4, "Amazing quality and comfort, but be prepared for the weight - this is a heavy mattress."},
		{"luxury-cloud", "emily_w", 5, "Love the eco-friendly materials and the comfort is unmatched. Worth the splurge!"},
		{"luxury-cloud", "tyler_b", 3, "Great mattress but had to return due to latex allergy. Customer service was excellent throughout."},
		{"luxury-cloud", "linda_f", 4, "The split king option is perfect for my adjustable base. My only complaint is the price."},

		{"essential-plus", "alex_t", 4, "Perfect for my college apartment. Great value for the price point!"},
		{"essential-plus", "mary_s", 3, "Decent quality for a guest room mattress. Nothing fancy but gets the job done."},
		{"essential-plus", "jordan_p", 5, "Surprisingly comfortable for the price. My kids love it!"},
		{"essential-plus", "nina_r", 2, "A bit too firm and basic. Wish I had spent a bit more for better quality."},
		{"essential-plus", "derek_l", 4, "Great starter mattress. Easy to move and setup, perfect for temporary living."},
		{"essential-plus", "sophie_m", 3, "Does the job for occasional guest use. Wouldn't recommend for everyday use though."},
		{"essential-plus", "rick_h", 4, "Better than expected for the price point. Perfect for my teenager's room."},
		{"essential-plus", "amanda_c", 1, "Started sagging after 6 months of use. You get what you pay for."},
		{"essential-plus", "brian_k", 4, "Good value mattress for a rental property. Easy to maintain and guests find it comfortable."},
		{"essential-plus", "tina_w", 3, "Decent temporary solution while saving for a better mattress. Shipping was quick and easy."},

		{"performance-sport", "ryan_m", 5, "Amazing recovery after intense workouts. The copper-infused foam really seems to help with muscle soreness."},
		{"performance-sport", "tracy_l", 4, "Great support and cooling features. Perfect for active people who sleep hot."},
		{"performance-sport", "mark_d", 5, "Best mattress I've found for athletic recovery. Worth the investment for serious athletes."},
		{"performance-sport", "karen_s", 2, "Expected more at this price point. The cooling features are good but found it too firm."},
		{"performance-sport", "steve_b", 5, "Finally found the perfect mattress for my training recovery. The pressure point relief is exceptional."},
		{"performance-sport", "jennifer_a", 4, "Really helps with post-workout recovery, though the price is a bit steep. The edge support is excellent."},
		{"performance-sport", "paul_r", 3, "Good mattress but the copper-infusion benefits are hard to verify. Still sleeping better than before."},
		{"performance-sport", "diana_k", 5, "As a marathon runner, this mattress has been a game-changer for my recovery. Love the cooling properties!"},
		{"performance-sport", "mike_p", 4, "Very supportive and definitely helps with recovery. Removed one star because it's quite heavy to move."},
		{"performance-sport", "sarah_j", 5, "Perfect balance of support and comfort for athletic recovery. The antimicrobial properties are a great bonus."},
	}

	out := make([]contractx.Review, 0, len(rows))
	for _, r := range rows {
		out = append(out, contractx.Review{
			ProductID:        r.product,
			CustomerID:       r.customer,
			Rating:           r.rating,
			Content:          r.content,
			VerifiedPurchase: true,
		})
	}
	return out
}

// Seed upserts the catalog and review fixtures, stamping created_at.
func Seed(ctx context.Context, store contractx.Store) error {
	now := time.Now().UTC()

	for _, p := range Catalog() {
		p.CreatedAt = now
		if err := store.UpsertProduct(ctx, p); err != nil {
			return err
		}
		log.Info().Str("product_id", p.ID).Msg("seeded product")
	}

	for _, r := range SeedReviews() {
		r.CreatedAt = now
		if err := store.UpsertReview(ctx, r); err != nil {
			return err
		}
	}
	log.Info().Int("products", len(Catalog())).Int("reviews", len(SeedReviews())).Msg("seed complete")
	return nil
}
