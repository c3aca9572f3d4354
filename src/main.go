package main

import (
	"context"
	"flag"
	"log"
	"time"

	"docstore/src/settings"
	"docstore/src/store"

	"go.uber.org/zap"
)

// printUsage prints helpful usage information
func printUsage() {
	log.Println("docstore - a typed accessor layer over MongoDB")
	log.Println("\nUsage:")
	log.Println("  docstore [options]")
	log.Println("\nOptions:")
	flag.PrintDefaults()

	log.Println("\nExamples:")
	log.Println("  docstore --uri=mongodb://localhost:27017/app")
	log.Println("  docstore --uri=mongodb://localhost:27017/app --debug")
}

func main() {
	// Get the global settings instance
	args := settings.GetSettings()

	// Define command line flags that map to the Arguments struct
	flag.StringVar(&args.URI, "uri", "mongodb://localhost:27017/docstore", "MongoDB connection string, including the default database")
	flag.StringVar(&args.DatabaseName, "database", "", "Override the database encoded in the URI")
	flag.IntVar(&args.ConnectTimeout, "timeout", 10, "Connection timeout in seconds")
	flag.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&args.Debug, "debug", false, "Enable debug mode")

	// Parse the command line
	flag.Parse()

	logger, err := initLogger(args)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(args.ConnectTimeout)*time.Second)
	defer cancel()

	conn, err := store.Connect(ctx, args.URI, sugar)
	if err != nil {
		printUsage()
		sugar.Fatalf("Failed to connect to %s: %v", args.URI, err)
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			sugar.Errorf("Error closing connection: %v", err)
		}
	}()

	factory := store.NewFactory(conn.Database, sugar, args)

	users, err := factory.Collection("users", &store.CollectionConfig{
		Defaults: store.Document{"isAdmin": false},
		Hooks: store.Hooks{
			AfterCreate: func(ctx context.Context, doc store.Document) error {
				sugar.Infof("created user %v", doc["_id"])
				return nil
			},
			AfterDelete: func(ctx context.Context, doc store.Document) error {
				sugar.Infof("deleted user %v", doc["_id"])
				return nil
			},
		},
	})
	if err != nil {
		sugar.Fatalf("Failed to create collection accessor: %v", err)
	}

	// Round-trip: create, read back, update, delete.
	created, err := users.CreateOne(ctx, store.Document{"name": "Yoda"})
	if err != nil {
		sugar.Fatalf("CreateOne failed: %v", err)
	}
	sugar.Infof("created: %v", created)

	updated, err := users.UpdateOne(ctx, store.Document{"_id": created["_id"]}, store.Document{"isAdmin": true})
	if err != nil {
		sugar.Fatalf("UpdateOne failed: %v", err)
	}
	sugar.Infof("updated: %v", updated)

	deleted, err := users.DeleteOne(ctx, store.Document{"_id": created["_id"]})
	if err != nil {
		sugar.Fatalf("DeleteOne failed: %v", err)
	}
	sugar.Infof("deleted: %v", deleted)
}

func initLogger(args *settings.Arguments) (*zap.Logger, error) {
	if args.Debug {
		// Development configuration with more verbose output
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		return z.Build()
	}
	// Production configuration
	return zap.NewProduction()
}
