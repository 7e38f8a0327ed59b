// Package database provides the MongoDB-backed document store behind the
// tool handlers, plus the catalog seeding entrypoint.
package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

const (
	collProducts = "products"
	collReviews  = "reviews"
	collOrders   = "orders"
)

// Config holds the MongoDB connection settings.
type Config struct {
	URI      string        `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database string        `envconfig:"DATABASE" default:"sleep_better"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// Mongo implements contract.Store on top of a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and pings it before returning the store.
func Connect(ctx context.Context, cfg Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", contractx.ErrStore, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", contractx.ErrStore, err)
	}

	return &Mongo{client: client, db: client.Database(cfg.Database)}, nil
}

// Close releases the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%w: disconnect: %v", contractx.ErrStore, err)
	}
	return nil
}

// Reset drops the products and reviews collections. Used before seeding;
// orders are kept.
func (m *Mongo) Reset(ctx context.Context) error {
	for _, name := range []string{collProducts, collReviews} {
		if err := m.db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("%w: drop %s: %v", contractx.ErrStore, name, err)
		}
	}
	return nil
}

func (m *Mongo) ProductByID(ctx context.Context, id string) (*contractx.Product, error) {
	var p contractx.Product
	err := m.db.Collection(collProducts).FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: id %q", contractx.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("%w: find product %q: %v", contractx.ErrStore, id, err)
	}
	return &p, nil
}

func (m *Mongo) ProductByNamePrefix(ctx context.Context, prefix string) (*contractx.Product, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix), Options: "i"}}
	var p contractx.Product
	err := m.db.Collection(collProducts).FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: name %q", contractx.ErrProductNotFound, prefix)
		}
		return nil, fmt.Errorf("%w: find product by name %q: %v", contractx.ErrStore, prefix, err)
	}
	return &p, nil
}

func (m *Mongo) ListProducts(ctx context.Context) ([]contractx.Product, error) {
	cur, err := m.db.Collection(collProducts).Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"id": 1}))
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", contractx.ErrStore, err)
	}
	var out []contractx.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", contractx.ErrStore, err)
	}
	return out, nil
}

func (m *Mongo) UpsertProduct(ctx context.Context, p contractx.Product) error {
	_, err := m.db.Collection(collProducts).ReplaceOne(ctx,
		bson.M{"id": p.ID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: upsert product %q: %v", contractx.ErrStore, p.ID, err)
	}
	return nil
}

func (m *Mongo) ReviewsByProduct(ctx context.Context, productID string) ([]contractx.Review, error) {
	cur, err := m.db.Collection(collReviews).Find(ctx, bson.M{"product_id": productID})
	if err != nil {
		return nil, fmt.Errorf("%w: find reviews for %q: %v", contractx.ErrStore, productID, err)
	}
	var out []contractx.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode reviews: %v", contractx.ErrStore, err)
	}
	return out, nil
}

func (m *Mongo) ListReviews(ctx context.Context) ([]contractx.Review, error) {
	cur, err := m.db.Collection(collReviews).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: list reviews: %v", contractx.ErrStore, err)
	}
	var out []contractx.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode reviews: %v", contractx.ErrStore, err)
	}
	return out, nil
}

func (m *Mongo) InsertReview(ctx context.Context, r contractx.Review) error {
	if _, err := m.db.Collection(collReviews).InsertOne(ctx, r); err != nil {
		return fmt.Errorf("%w: insert review: %v", contractx.ErrStore, err)
	}
	return nil
}

// UpsertReview replaces by (product_id, customer_id) so repeated seed runs
// do not duplicate rows.
func (m *Mongo) UpsertReview(ctx context.Context, r contractx.Review) error {
	filter := bson.M{"product_id": r.ProductID, "customer_id": r.CustomerID}
	_, err := m.db.Collection(collReviews).ReplaceOne(ctx, filter, r, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: upsert review %s/%s: %v", contractx.ErrStore, r.ProductID, r.CustomerID, err)
	}
	return nil
}

func (m *Mongo) OrderByID(ctx context.Context, orderID string) (*contractx.Order, error) {
	var o contractx.Order
	err := m.db.Collection(collOrders).FindOne(ctx, bson.M{"order_id": orderID}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %q", contractx.ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("%w: find order %q: %v", contractx.ErrStore, orderID, err)
	}
	return &o, nil
}

func (m *Mongo) InsertOrder(ctx context.Context, o contractx.Order) error {
	if _, err := m.db.Collection(collOrders).InsertOne(ctx, o); err != nil {
		return fmt.Errorf("%w: insert order %q: %v", contractx.ErrStore, o.OrderID, err)
	}
	return nil
}
