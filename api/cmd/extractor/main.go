package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"image-extractor/api/internal/config"
	"image-extractor/api/internal/handle"
	"image-extractor/api/internal/httpserver"
	"image-extractor/api/internal/logger"
	"image-extractor/api/internal/ocr"
	"image-extractor/api/internal/ocr/gemini"
	"image-extractor/api/internal/ocr/openai"
	"image-extractor/api/internal/upload"
	"image-extractor/api/internal/util"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "extractor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engines := &ocr.Engines{}
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := gemini.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer func() {
			if err := g.Close(); err != nil {
				log.Warn("close gemini client", zap.Error(err))
			}
		}()
		engines.Gemini = g
	case config.ProviderOpenAI:
		engines.OpenAI = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIURL)
	}
	engine, err := engines.GetEngine(cfg.Provider)
	if err != nil {
		return err
	}

	scratch, err := upload.NewScratch(cfg.UploadDir)
	if err != nil {
		return err
	}

	h := handle.New(engine, scratch, log, handle.Options{
		Prompt:            util.LoadPrompt(cfg.PromptFile),
		MaxSize:           cfg.MaxUploadSize,
		AllowedExtensions: cfg.AllowedExtensions,
		ModelTimeout:      cfg.ModelTimeout,
	})

	srv := httpserver.New(":"+cfg.Port, h, log)
	log.Info("extractor configured",
		zap.String("engine", engine.Name()),
		zap.String("model", engine.GetModel()),
		zap.String("upload_dir", scratch.Dir()),
		zap.Int64("max_upload_size", cfg.MaxUploadSize),
	)

	errc := make(chan error, 1)
	go func() { errc <- srv.Run() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	return nil
}
