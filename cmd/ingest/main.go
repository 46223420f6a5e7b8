package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"growthboss-ai-be/internal/bootstrap"
	"growthboss-ai-be/internal/config"
	"growthboss-ai-be/pkg/database"
	"growthboss-ai-be/pkg/rag"
	"growthboss-ai-be/pkg/utils"

	"github.com/fatih/color"
)

const (
	chunkSize    = 1000
	chunkOverlap = 150
)

func main() {
	dir := flag.String("dir", "", "directory of .txt/.md files to ingest")
	domain := flag.String("domain", "", "source domain for all files (e.g. garyvaynerchuk.com)")
	kind := flag.String("kind", "article", "content kind: article, video, page")
	flag.Parse()

	if *dir == "" || *domain == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -dir ./crawl/garyvee -domain garyvaynerchuk.com [-kind article]")
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.RequireOpenAIKey(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	ctx := context.Background()
	total := 0

	err = filepath.WalkDir(*dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return nil
		}

		title := strings.TrimSuffix(filepath.Base(path), ext)
		pieces := utils.SplitText(text, chunkSize, chunkOverlap)
		chunks := make([]rag.Chunk, len(pieces))
		for i, piece := range pieces {
			chunks[i] = rag.Chunk{
				Text: piece,
				Metadata: rag.Metadata{
					Source:     path,
					Domain:     *domain,
					Title:      title,
					Kind:       *kind,
					ChunkIndex: i,
				},
			}
		}

		if err := container.VectorStore.Upsert(ctx, chunks); err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}

		total += len(chunks)
		color.New(color.FgGreen).Printf("ingested %s (%d chunks)\n", path, len(chunks))
		return nil
	})
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	color.New(color.FgCyan, color.Bold).Printf("done: %d chunks ingested from %s\n", total, *dir)
}
