package main

import (
	"fmt"
	"log"

	"callsight/internal/analysis/gemini"
	"callsight/internal/config"
	"callsight/internal/extract"
	"callsight/internal/handler"
	"callsight/internal/router"
	"callsight/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize the pipeline
	extractor := extract.NewPDFExtractor()
	backend := gemini.NewClient(&cfg.Gemini)
	analysisSvc := service.NewAnalysisService(extractor, backend, &cfg.Gemini)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc, &cfg.Upload)
	exportH := handler.NewExportHandler()
	healthH := handler.NewHealthHandler(&cfg.Gemini)

	// Setup router
	r := router.Setup(cfg, analysisH, exportH, healthH)

	log.Printf("Server starting on %s (model %s)", cfg.Server.Port, cfg.Gemini.Model)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
