// Command ingest loads knowledge files into the vector index. It accepts
// file and directory paths; with -watch it keeps running and re-ingests
// files as they change.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"yoga-rag/internal/chunker"
	"yoga-rag/internal/config"
	"yoga-rag/internal/embedding"
	"yoga-rag/internal/ingest"
	"yoga-rag/internal/vectorstore"
)

func main() {
	watch := flag.Bool("watch", false, "keep running and re-ingest files as they change")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file|dir>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	index, err := vectorstore.NewQdrantIndex(cfg.QdrantURL, cfg.QdrantCollection)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := index.EnsureCollection(ctx, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}

	embedder := embedding.NewClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize)
	ch, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Fatalf("Failed to create chunker: %v", err)
	}
	ingestor := ingest.NewIngestor(ch, embedder, index)

	var dirs []string
	total := 0
	for _, arg := range flag.Args() {
		info, err := os.Stat(arg)
		if err != nil {
			log.Fatalf("Failed to stat %s: %v", arg, err)
		}
		if info.IsDir() {
			dirs = append(dirs, arg)
			n, err := ingestDir(ctx, ingestor, arg)
			if err != nil {
				log.Fatalf("Failed to ingest directory %s: %v", arg, err)
			}
			total += n
			continue
		}
		n, err := ingestor.IngestFile(ctx, arg)
		if err != nil {
			log.Fatalf("Failed to ingest %s: %v", arg, err)
		}
		total += n
	}
	slog.Info("Ingestion complete", "chunks", total)

	if !*watch {
		return
	}
	if len(dirs) == 0 {
		log.Fatal("-watch requires at least one directory argument")
	}

	watcher := ingest.NewWatcher(dirs, func(path string) {
		if n, err := ingestor.IngestFile(ctx, path); err != nil {
			slog.Error("Re-ingest failed", "path", path, "error", err)
		} else {
			slog.Info("Re-ingested file", "path", path, "chunks", n)
		}
	}, slog.Default())

	slog.Info("Watching for changes", "dirs", dirs)
	if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Watcher failed: %v", err)
	}
}

// ingestDir ingests every supported file directly in or beneath dir.
func ingestDir(ctx context.Context, ingestor *ingest.Ingestor, dir string) (int, error) {
	total := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !ingest.SupportedFile(path) {
			return err
		}
		n, err := ingestor.IngestFile(ctx, path)
		if err != nil {
			return err
		}
		total += n
		return nil
	})
	return total, err
}
