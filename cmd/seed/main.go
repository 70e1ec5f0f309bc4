package main

import (
	"context"
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/logger"
)

// seed populates the configured store with a demo catalog. Running it
// twice inserts the data twice; it is meant for fresh environments.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Service: "seed", Env: cfg.Env, Level: cfg.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var seeder store.Seeder
	switch cfg.StoreBackend {
	case config.StoreMongo:
		ms, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Error("failed to connect to mongodb", "error", err)
			os.Exit(1)
		}
		defer ms.Close(context.Background())
		if err := ms.EnsureIndexes(ctx); err != nil {
			log.Error("failed to ensure indexes", "error", err)
			os.Exit(1)
		}
		seeder = ms
	case config.StoreDynamo:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Error("failed to load aws config", "error", err)
			os.Exit(1)
		}
		seeder = store.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoTablePrefix)
	case config.StoreMemory:
		log.Error("seeding the in-memory store is pointless, it forgets on exit")
		os.Exit(1)
	}

	categories := []catalog.Category{
		{ID: uuid.NewString(), Name: "Electronics", Image: "/images/categories/electronics.jpg"},
		{ID: uuid.NewString(), Name: "Books", Image: "/images/categories/books.jpg"},
		{ID: uuid.NewString(), Name: "Home & Kitchen", Image: "/images/categories/home.jpg"},
		{ID: uuid.NewString(), Name: "Fashion", Image: "/images/categories/fashion.jpg"},
	}

	for i := range categories {
		if err := seeder.CreateCategory(ctx, &categories[i]); err != nil {
			log.Error("failed to create category", "name", categories[i].Name, "error", err)
			os.Exit(1)
		}
		log.Info("created category", "name", categories[i].Name, "id", categories[i].ID)
	}

	electronics := categories[0].ID
	books := categories[1].ID
	home := categories[2].ID
	fashion := categories[3].ID

	now := time.Now().UTC()
	products := []catalog.Product{
		{Name: "Wireless Headphones", Description: "Over-ear wireless headphones with active noise cancellation and 30 hour battery life.", Image: "/images/products/headphones.jpg", Price: 2999, OriginalPrice: 3999, Stock: 25, Rating: 4.5, NumReviews: 120, CategoryID: electronics, Featured: true},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless mechanical keyboard with hot-swappable switches.", Image: "/images/products/keyboard.jpg", Price: 4499, OriginalPrice: 4499, Stock: 40, Rating: 4.7, NumReviews: 86, CategoryID: electronics, Featured: true},
		{Name: "USB-C Charger 65W", Description: "Compact GaN wall charger with two USB-C ports.", Image: "/images/products/charger.jpg", Price: 1299, OriginalPrice: 1799, Stock: 100, Rating: 4.3, NumReviews: 210, CategoryID: electronics},
		{Name: "Smart Watch", Description: "Fitness tracking watch with heart rate monitor and GPS.", Image: "/images/products/watch.jpg", Price: 8999, OriginalPrice: 10999, Stock: 15, Rating: 4.1, NumReviews: 64, CategoryID: electronics, Featured: true},
		{Name: "The Pragmatic Programmer", Description: "20th anniversary edition of the classic guide to software craftsmanship.", Image: "/images/products/pragprog.jpg", Price: 499, OriginalPrice: 599, Stock: 60, Rating: 4.8, NumReviews: 340, CategoryID: books, Featured: true},
		{Name: "Designing Data-Intensive Applications", Description: "The big ideas behind reliable, scalable, and maintainable systems.", Image: "/images/products/ddia.jpg", Price: 649, OriginalPrice: 649, Stock: 45, Rating: 4.9, NumReviews: 520, CategoryID: books},
		{Name: "Cast Iron Skillet", Description: "Pre-seasoned 10 inch cast iron skillet.", Image: "/images/products/skillet.jpg", Price: 899, OriginalPrice: 1199, Stock: 30, Rating: 4.6, NumReviews: 95, CategoryID: home},
		{Name: "French Press", Description: "Borosilicate glass french press, 1 litre.", Image: "/images/products/frenchpress.jpg", Price: 749, OriginalPrice: 749, Stock: 50, Rating: 4.4, NumReviews: 130, CategoryID: home, Featured: true},
		{Name: "Chef's Knife 8\"", Description: "High-carbon stainless steel chef's knife with ergonomic handle.", Image: "/images/products/knife.jpg", Price: 1599, OriginalPrice: 1999, Stock: 20, Rating: 4.7, NumReviews: 77, CategoryID: home},
		{Name: "Denim Jacket", Description: "Classic fit denim jacket, medium wash.", Image: "/images/products/jacket.jpg", Price: 1899, OriginalPrice: 2499, Stock: 35, Rating: 4.2, NumReviews: 48, CategoryID: fashion},
		{Name: "Canvas Sneakers", Description: "Low-top canvas sneakers with rubber sole.", Image: "/images/products/sneakers.jpg", Price: 1099, OriginalPrice: 1399, Stock: 80, Rating: 4.0, NumReviews: 156, CategoryID: fashion},
		{Name: "Wool Scarf", Description: "Soft merino wool scarf.", Image: "/images/products/scarf.jpg", Price: 599, OriginalPrice: 799, Stock: 0, Rating: 4.5, NumReviews: 33, CategoryID: fashion},
	}

	for i := range products {
		p := &products[i]
		p.ID = uuid.NewString()
		p.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		if err := seeder.CreateProduct(ctx, p); err != nil {
			log.Error("failed to create product", "name", p.Name, "error", err)
			os.Exit(1)
		}
		log.Info("created product", "name", p.Name, "id", p.ID)
	}

	log.Info("seed complete", "categories", len(categories), "products", len(products))
}
