package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"household-planner/internal/auth"
	"household-planner/internal/config"
	"household-planner/internal/database"
	"household-planner/internal/dish"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "import-dish":
		importCmd := flag.NewFlagSet("import-dish", flag.ExitOnError)
		importCmd.Parse(os.Args[2:])
		if importCmd.NArg() < 1 {
			log.Fatal("Usage: meal-planner import-dish <url>")
		}

		importer := dish.NewImporter(dish.NewRepository(db.SQL))
		d, err := importer.ImportFromURL(ctx, importCmd.Arg(0))
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported dish %q (%s)\n", d.Name, d.ID)
	case "cleanup-tokens":
		if err := auth.NewRepository(db.SQL).CleanupExpired(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Println("Removed expired sessions and login tokens.")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  import-dish <url>   Import a dish from a recipe page")
	fmt.Println("  cleanup-tokens      Remove expired sessions and login tokens")
}
