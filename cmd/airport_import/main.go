// Command airport_import loads the airport directory from a JSON or CSV file.
//
//	airport_import -file airports.csv [-replace]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"pilotconnect/internal/common"
	"pilotconnect/internal/config"
	"pilotconnect/internal/db"
	"pilotconnect/internal/logging"
)

func main() {
	file := flag.String("file", "", "airport data file (.json or .csv)")
	replace := flag.Bool("replace", false, "delete existing airports before importing")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	orm, err := db.InitORM(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", "error", err)
	}
	if err := db.AutoMigrate(orm); err != nil {
		logging.Fatal("Failed to migrate schema", "error", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		logging.Fatal("Failed to open airport file", "file", *file, "error", err)
	}
	defer f.Close()

	// Only a shared Redis cache can hold directory listings this process should drop
	var cache common.CacheInterface
	if cfg.CacheBackend == config.CacheRedis {
		redisCache := common.NewRedisCacheService(common.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB))
		defer redisCache.Close()
		cache = redisCache
	}

	loader := common.NewAirportLoaderService(orm, cache)
	ctx := context.Background()

	var result *common.ImportResult
	switch strings.ToLower(filepath.Ext(*file)) {
	case ".json":
		result, err = loader.LoadFromJSON(ctx, f, *replace)
	case ".csv":
		result, err = loader.LoadFromCSV(ctx, f, *replace)
	default:
		logging.Fatal("Unsupported airport file type, use .json or .csv", "file", *file)
	}
	if err != nil {
		logging.Fatal("Airport import failed", "error", err)
	}

	stats, err := loader.GetStats(ctx)
	if err != nil {
		logging.Warn("Failed to read airport stats", "error", err)
	}
	logging.Info("Airport import finished",
		"imported", result.Imported,
		"skipped", len(result.Failures),
		"stats", stats,
	)
	fmt.Printf("imported %d airports, skipped %d rows\n", result.Imported, len(result.Failures))
}
