package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/domain/user"
)

// DynamoStore is the DynamoDB document store backend, used by the
// serverless deployment. Each collection maps to one table; documents are
// stored as JSON blobs alongside the key attributes the access paths
// need. Listings scan the table and reuse the in-memory query helpers, so
// filter/sort semantics match the Mongo backend exactly.
type DynamoStore struct {
	client      *dynamodb.Client
	tablePrefix string
}

// dynamoDoc is the table item shape: partition key, an optional secondary
// lookup attribute, and the document body as JSON.
type dynamoDoc struct {
	ID     string `dynamodbav:"id"`
	UserID string `dynamodbav:"user_id,omitempty"`
	Email  string `dynamodbav:"email,omitempty"`
	Doc    string `dynamodbav:"doc"`
}

func NewDynamoStore(client *dynamodb.Client, tablePrefix string) *DynamoStore {
	return &DynamoStore{client: client, tablePrefix: tablePrefix}
}

func (s *DynamoStore) table(collection string) string {
	return s.tablePrefix + collection
}

func (s *DynamoStore) put(ctx context.Context, collection string, doc dynamoDoc, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	doc.Doc = string(data)

	av, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table(collection)),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func (s *DynamoStore) get(ctx context.Context, collection, id string, out any) (bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table(collection)),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return false, fmt.Errorf("get item: %w", err)
	}
	if result.Item == nil {
		return false, nil
	}
	return true, unmarshalDoc(result.Item, out)
}

// scan pages through a whole table and unmarshals every document body.
func (s *DynamoStore) scan(ctx context.Context, collection string, filterExpr string, exprValues map[string]types.AttributeValue, each func(doc string) error) error {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.table(collection)),
	}
	if filterExpr != "" {
		input.FilterExpression = aws.String(filterExpr)
		input.ExpressionAttributeValues = exprValues
	}

	for {
		result, err := s.client.Scan(ctx, input)
		if err != nil {
			return fmt.Errorf("scan %s: %w", collection, err)
		}
		for _, item := range result.Items {
			var doc dynamoDoc
			if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
				return fmt.Errorf("unmarshal item: %w", err)
			}
			if err := each(doc.Doc); err != nil {
				return err
			}
		}
		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return nil
}

func unmarshalDoc(item map[string]types.AttributeValue, out any) error {
	var doc dynamoDoc
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return fmt.Errorf("unmarshal item: %w", err)
	}
	if err := json.Unmarshal([]byte(doc.Doc), out); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	return nil
}

// Products

func (s *DynamoStore) GetProduct(ctx context.Context, id string) (*catalog.Product, bool, error) {
	var p catalog.Product
	ok, err := s.get(ctx, CollectionProducts, id, &p)
	if err != nil || !ok {
		return nil, false, err
	}
	return &p, true, nil
}

func (s *DynamoStore) ListProducts(ctx context.Context, q catalog.ProductQuery) ([]catalog.Product, int, error) {
	var all []catalog.Product
	err := s.scan(ctx, CollectionProducts, "", nil, func(doc string) error {
		var p catalog.Product
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return fmt.Errorf("unmarshal product: %w", err)
		}
		all = append(all, p)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	page, total := applyProductQuery(all, q)
	return page, total, nil
}

func (s *DynamoStore) CreateProduct(ctx context.Context, p *catalog.Product) error {
	return s.put(ctx, CollectionProducts, dynamoDoc{ID: p.ID}, p)
}

// Categories

func (s *DynamoStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var all []catalog.Category
	err := s.scan(ctx, CollectionCategories, "", nil, func(doc string) error {
		var c catalog.Category
		if err := json.Unmarshal([]byte(doc), &c); err != nil {
			return fmt.Errorf("unmarshal category: %w", err)
		}
		all = append(all, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortCategories(all)
	return all, nil
}

func (s *DynamoStore) CreateCategory(ctx context.Context, c *catalog.Category) error {
	return s.put(ctx, CollectionCategories, dynamoDoc{ID: c.ID}, c)
}

// Carts
//
// Carts are keyed by owner: one cart per user, looked up by user id.

func (s *DynamoStore) GetCartByUser(ctx context.Context, userID string) (*cart.Cart, bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table(CollectionCarts)),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("get cart: %w", err)
	}
	if result.Item == nil {
		return nil, false, nil
	}
	var c cart.Cart
	if err := unmarshalDoc(result.Item, &c); err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

func (s *DynamoStore) SaveCart(ctx context.Context, c *cart.Cart) error {
	return s.put(ctx, CollectionCarts, dynamoDoc{ID: c.UserID, UserID: c.UserID}, c)
}

// Orders

func (s *DynamoStore) CreateOrder(ctx context.Context, o *order.Order) error {
	return s.put(ctx, CollectionOrders, dynamoDoc{ID: o.ID, UserID: o.UserID}, o)
}

func (s *DynamoStore) GetOrder(ctx context.Context, id string) (*order.Order, bool, error) {
	var o order.Order
	ok, err := s.get(ctx, CollectionOrders, id, &o)
	if err != nil || !ok {
		return nil, false, err
	}
	return &o, true, nil
}

func (s *DynamoStore) ListOrdersByUser(ctx context.Context, userID string) ([]order.Order, error) {
	var orders []order.Order
	err := s.scan(ctx, CollectionOrders,
		"user_id = :uid",
		map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		func(doc string) error {
			var o order.Order
			if err := json.Unmarshal([]byte(doc), &o); err != nil {
				return fmt.Errorf("unmarshal order: %w", err)
			}
			orders = append(orders, o)
			return nil
		})
	if err != nil {
		return nil, err
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (s *DynamoStore) SaveOrder(ctx context.Context, o *order.Order) error {
	return s.CreateOrder(ctx, o)
}

// Users
//
// user.User hides PasswordHash from JSON, so the stored document wraps it
// with an explicit field.

type dynamoUser struct {
	user.User
	PasswordHash string `json:"password_hash"`
}

func (w dynamoUser) unwrap() *user.User {
	u := w.User
	u.PasswordHash = w.PasswordHash
	return &u
}

func (s *DynamoStore) CreateUser(ctx context.Context, u *user.User) error {
	wrapped := dynamoUser{User: *u, PasswordHash: u.PasswordHash}
	return s.put(ctx, CollectionUsers, dynamoDoc{ID: u.ID, Email: u.Email}, wrapped)
}

func (s *DynamoStore) GetUser(ctx context.Context, id string) (*user.User, bool, error) {
	var w dynamoUser
	ok, err := s.get(ctx, CollectionUsers, id, &w)
	if err != nil || !ok {
		return nil, false, err
	}
	return w.unwrap(), true, nil
}

func (s *DynamoStore) GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	var found *user.User
	err := s.scan(ctx, CollectionUsers,
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		func(doc string) error {
			var w dynamoUser
			if err := json.Unmarshal([]byte(doc), &w); err != nil {
				return fmt.Errorf("unmarshal user: %w", err)
			}
			if found == nil {
				found = w.unwrap()
			}
			return nil
		})
	if err != nil {
		return nil, false, err
	}
	if found == nil {
		return nil, false, nil
	}
	return found, true, nil
}
