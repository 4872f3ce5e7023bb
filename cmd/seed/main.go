package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"vitrifiye-studio/internal/catalog"
	"vitrifiye-studio/internal/repository"
	"vitrifiye-studio/pkg/config"
	"vitrifiye-studio/pkg/logger"
	"vitrifiye-studio/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Named("seed")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db, appLogger)
	questionRepo := repository.NewQuizQuestionRepository(db, appLogger)

	cacheFile := filepath.Join("cmd", "seed", ".seed_cache.json")
	cache, err := loadCache(cacheFile)
	if err != nil {
		appLogger.Warn("Failed to load seed cache, seeding everything", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	appLogger.Info("Starting database seeding...")

	seeded := 0
	seeders := []struct {
		path string
		run  func(data []byte) (int, error)
	}{
		{
			path: cfg.Catalog.JSONPath,
			run: func(data []byte) (int, error) {
				products, err := catalog.ParseExportedProducts(data)
				if err != nil {
					return 0, err
				}
				return len(products), productRepo.Upsert(ctx, products)
			},
		},
		{
			path: cfg.Catalog.QuestionsPath,
			run: func(data []byte) (int, error) {
				questions, err := catalog.ParseQuizQuestions(data)
				if err != nil {
					return 0, err
				}
				return len(questions), questionRepo.Upsert(ctx, questions)
			},
		},
	}

	for _, s := range seeders {
		ok, err := seedFile(s.path, cache, s.run, appLogger)
		if err != nil {
			appLogger.Fatal("Seeding failed", zap.String("path", s.path), zap.Error(err))
		}
		if ok {
			seeded++
		}
	}

	if err := saveCache(cacheFile, cache); err != nil {
		appLogger.Warn("Failed to save seed cache", zap.Error(err))
	}

	appLogger.Info("Database seeding completed", zap.Int("files_seeded", seeded))
}

// seedFile runs fn on the file contents unless the file is unchanged since
// the last successful run.
func seedFile(path string, cache *CacheData, fn func(data []byte) (int, error), logger *zap.Logger) (bool, error) {
	fileHash, err := calculateFileHash(path)
	if err != nil {
		return false, err
	}

	if cached, ok := cache.ProcessedFiles[path]; ok && cached.FileHash == fileHash {
		logger.Info("File unchanged, skipping", zap.String("path", path))
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	count, err := fn(data)
	if err != nil {
		return false, err
	}

	cache.ProcessedFiles[path] = ProcessedFile{
		FilePath:    path,
		FileHash:    fileHash,
		ProcessedAt: time.Now(),
	}
	logger.Info("File seeded", zap.String("path", path), zap.Int("rows", count))
	return true, nil
}

type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	ProcessedAt time.Time `json:"processed_at"`
}

type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"`
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	data, err := os.ReadFile(cacheFile)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]ProcessedFile)
	}
	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cacheFile), 0o755); err != nil {
		return err
	}
	return os.WriteFile(cacheFile, data, 0o644)
}

func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
