package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/domain/user"
)

// MongoStore is the MongoDB document store backend.
type MongoStore struct {
	db *mongo.Database
}

// ConnectMongo dials MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{db: client.Database(database)}, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// EnsureIndexes creates the indexes the API relies on: unique user email,
// one cart per user, and order history by user.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = s.db.Collection(CollectionCarts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create carts user index: %w", err)
	}

	_, err = s.db.Collection(CollectionOrders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create orders user index: %w", err)
	}
	return nil
}

// Products

func (s *MongoStore) GetProduct(ctx context.Context, id string) (*catalog.Product, bool, error) {
	var p catalog.Product
	err := s.db.Collection(CollectionProducts).FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find product: %w", err)
	}
	return &p, true, nil
}

func (s *MongoStore) ListProducts(ctx context.Context, q catalog.ProductQuery) ([]catalog.Product, int, error) {
	filter := bson.M{}
	if q.CategoryID != "" {
		filter["category_id"] = q.CategoryID
	}
	if q.Featured {
		filter["featured"] = true
	}
	if q.Search != "" {
		filter["name"] = bson.M{"$regex": q.Search, "$options": "i"}
	}

	coll := s.db.Collection(CollectionProducts)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(productSort(q.Sort)).
		SetSkip(int64((q.Page - 1) * q.PageSize)).
		SetLimit(int64(q.PageSize))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}

	products := []catalog.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}
	return products, int(total), nil
}

// productSort maps a catalog sort to a Mongo sort document, with ID as a
// tiebreaker so pagination is stable.
func productSort(by catalog.Sort) bson.D {
	switch by {
	case catalog.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case catalog.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}
	case catalog.SortRating:
		return bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	}
}

func (s *MongoStore) CreateProduct(ctx context.Context, p *catalog.Product) error {
	if _, err := s.db.Collection(CollectionProducts).InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Categories

func (s *MongoStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	cursor, err := s.db.Collection(CollectionCategories).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}

	categories := []catalog.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (s *MongoStore) CreateCategory(ctx context.Context, c *catalog.Category) error {
	if _, err := s.db.Collection(CollectionCategories).InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Carts

func (s *MongoStore) GetCartByUser(ctx context.Context, userID string) (*cart.Cart, bool, error) {
	var c cart.Cart
	err := s.db.Collection(CollectionCarts).FindOne(ctx, bson.M{"user_id": userID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find cart: %w", err)
	}
	return &c, true, nil
}

// SaveCart upserts the whole cart document by identity. There is no
// version guard; the last writer wins.
func (s *MongoStore) SaveCart(ctx context.Context, c *cart.Cart) error {
	_, err := s.db.Collection(CollectionCarts).ReplaceOne(ctx,
		bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Orders

func (s *MongoStore) CreateOrder(ctx context.Context, o *order.Order) error {
	if _, err := s.db.Collection(CollectionOrders).InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *MongoStore) GetOrder(ctx context.Context, id string) (*order.Order, bool, error) {
	var o order.Order
	err := s.db.Collection(CollectionOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find order: %w", err)
	}
	return &o, true, nil
}

func (s *MongoStore) ListOrdersByUser(ctx context.Context, userID string) ([]order.Order, error) {
	cursor, err := s.db.Collection(CollectionOrders).Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}

	orders := []order.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s *MongoStore) SaveOrder(ctx context.Context, o *order.Order) error {
	_, err := s.db.Collection(CollectionOrders).ReplaceOne(ctx,
		bson.M{"_id": o.ID}, o, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// Users

func (s *MongoStore) CreateUser(ctx context.Context, u *user.User) error {
	if _, err := s.db.Collection(CollectionUsers).InsertOne(ctx, u); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (*user.User, bool, error) {
	var u user.User
	err := s.db.Collection(CollectionUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find user: %w", err)
	}
	return &u, true, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	var u user.User
	err := s.db.Collection(CollectionUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find user by email: %w", err)
	}
	return &u, true, nil
}
