package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"callsight/internal/analysis"
	"callsight/internal/config"
	"callsight/internal/domain"
	"callsight/internal/port"
)

// AnalyzeInput is the DTO for one analysis request. The document bytes are
// owned by this invocation and never outlive it.
type AnalyzeInput struct {
	Document   []byte
	Credential string
	Mode       domain.AnalysisMode
}

// CleanupResult reports the outcome of the best-effort remote file release.
// A failed cleanup is logged and never propagated as a request failure.
type CleanupResult struct {
	FileName string
	Err      error
}

// Failed reports whether the release attempt failed.
func (r CleanupResult) Failed() bool { return r.Err != nil }

// AnalysisService defines the transcript analysis contract.
type AnalysisService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*domain.AnalysisRecord, error)
}

type analysisService struct {
	extractor port.TextExtractor
	backend   port.ModelBackend
	cfg       *config.GeminiConfig
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(extractor port.TextExtractor, backend port.ModelBackend, cfg *config.GeminiConfig) AnalysisService {
	return &analysisService{
		extractor: extractor,
		backend:   backend,
		cfg:       cfg,
	}
}

// Analyze runs one request through the active pipeline variant and returns
// an immutable AnalysisRecord or a terminal error. Nothing is retried.
func (s *analysisService) Analyze(ctx context.Context, input AnalyzeInput) (*domain.AnalysisRecord, error) {
	credential := input.Credential
	if credential == "" {
		credential = s.cfg.APIKey
	}
	if credential == "" {
		return nil, domain.ErrMissingCredential
	}

	switch input.Mode {
	case domain.ModeText:
		return s.analyzeText(ctx, credential, input.Document)
	case domain.ModeMultimodal:
		return s.analyzeMultimodal(ctx, credential, input.Document)
	default:
		return nil, domain.ErrInvalidMode
	}
}

// analyzeText extracts the transcript locally and embeds it in the prompt.
func (s *analysisService) analyzeText(ctx context.Context, credential string, document []byte) (*domain.AnalysisRecord, error) {
	transcript, err := s.extractor.ExtractText(document)
	if err != nil {
		return nil, err
	}

	raw, err := s.backend.Generate(ctx, port.GenerateInput{
		Credential: credential,
		Prompt:     analysis.BuildTextPrompt(transcript),
	})
	if err != nil {
		return nil, err
	}

	return analysis.DecodeRecord(raw)
}

// analyzeMultimodal stages the PDF to a temp file, uploads it natively,
// waits for remote processing, and generates against the file reference.
// The temp file is removed on every exit path; the remote file is released
// best-effort once the upload has succeeded, on every exit path.
func (s *analysisService) analyzeMultimodal(ctx context.Context, credential string, document []byte) (*domain.AnalysisRecord, error) {
	path, err := stageDocument(document)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(path) }()

	file, err := s.backend.UploadFile(ctx, credential, path, "application/pdf")
	if err != nil {
		return nil, err
	}
	defer func() {
		if res := s.releaseRemote(credential, file.Name); res.Failed() {
			log.Printf("analysisService: best-effort cleanup of %s failed: %v", res.FileName, res.Err)
		}
	}()

	file, err = s.awaitReady(ctx, credential, file)
	if err != nil {
		return nil, err
	}

	raw, err := s.backend.Generate(ctx, port.GenerateInput{
		Credential: credential,
		Prompt:     analysis.BuildMultimodalPrompt(),
		File:       file,
	})
	if err != nil {
		return nil, err
	}

	return analysis.DecodeRecord(raw)
}

// awaitReady polls the file state at a fixed interval until it leaves
// pending. The loop honors ctx cancellation and a configured deadline.
func (s *analysisService) awaitReady(ctx context.Context, credential string, file *port.RemoteFile) (*port.RemoteFile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.PollTimeout())
	defer cancel()

	interval := s.cfg.PollInterval()
	for file.State == port.FileStatePending {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: readiness poll aborted: %v", domain.ErrRemoteProcessing, ctx.Err())
		case <-time.After(interval):
		}

		next, err := s.backend.GetFile(ctx, credential, file.Name)
		if err != nil {
			return nil, err
		}
		file = next
	}

	if file.State == port.FileStateFailed {
		return nil, fmt.Errorf("%w: %s", domain.ErrRemoteProcessing, file.Name)
	}
	return file, nil
}

// releaseRemote deletes the remote file with a fresh short-lived context so
// cleanup still runs when the request context is already cancelled.
func (s *analysisService) releaseRemote(credential, name string) CleanupResult {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return CleanupResult{FileName: name, Err: s.backend.DeleteFile(ctx, credential, name)}
}

// stageDocument writes the document bytes to a temp file for the native
// upload. The caller owns removal.
func stageDocument(document []byte) (string, error) {
	tmp, err := os.CreateTemp("", "callsight-*.pdf")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp file: %v", domain.ErrRemoteUpload, err)
	}
	if _, err := tmp.Write(document); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: staging document: %v", domain.ErrRemoteUpload, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: staging document: %v", domain.ErrRemoteUpload, err)
	}
	return tmp.Name(), nil
}
