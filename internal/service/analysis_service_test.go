package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callsight/internal/config"
	"callsight/internal/domain"
	"callsight/internal/port"
)

// fakeExtractor returns a canned transcript or error.
type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(data []byte) (string, error) {
	return f.text, f.err
}

// fakeBackend scripts the remote API and records every interaction.
type fakeBackend struct {
	uploadFile  *port.RemoteFile
	uploadErr   error
	pollStates  []port.FileState
	getErr      error
	generateOut string
	generateErr error
	deleteErr   error

	stagedPath        string
	stagedContents    []byte
	stagedExisted     bool
	generateInputs    []port.GenerateInput
	deleteCalls       []string
	getCalls          int
	uploadCredential  string
	uploadMIMEType    string
}

func (f *fakeBackend) UploadFile(ctx context.Context, credential, path, mimeType string) (*port.RemoteFile, error) {
	f.stagedPath = path
	f.uploadCredential = credential
	f.uploadMIMEType = mimeType
	if data, err := os.ReadFile(path); err == nil {
		f.stagedExisted = true
		f.stagedContents = data
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadFile, nil
}

func (f *fakeBackend) GetFile(ctx context.Context, credential, name string) (*port.RemoteFile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	state := port.FileStatePending
	if f.getCalls < len(f.pollStates) {
		state = f.pollStates[f.getCalls]
	}
	f.getCalls++
	return &port.RemoteFile{Name: name, URI: "uri", MIMEType: "application/pdf", State: state}, nil
}

func (f *fakeBackend) Generate(ctx context.Context, input port.GenerateInput) (string, error) {
	f.generateInputs = append(f.generateInputs, input)
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.generateOut, nil
}

func (f *fakeBackend) DeleteFile(ctx context.Context, credential, name string) error {
	f.deleteCalls = append(f.deleteCalls, name)
	return f.deleteErr
}

func testGeminiConfig() *config.GeminiConfig {
	return &config.GeminiConfig{
		APIKey:          "server-key",
		Model:           "gemini-2.5-flash",
		PollIntervalMS:  5,
		PollTimeoutSecs: 1,
	}
}

func pendingUpload() *port.RemoteFile {
	return &port.RemoteFile{Name: "files/abc", URI: "uri", MIMEType: "application/pdf", State: port.FileStatePending}
}

func TestAnalyze_TextMode(t *testing.T) {
	backend := &fakeBackend{
		generateOut: `{"sentiment":"Bullish","confidence_score":88,"summary":"Revenue grew 20% YoY and management raised guidance.","positives":["Revenue +20% YoY"],"negatives":["None material"],"outlook":"Guidance raised."}`,
	}
	extractor := &fakeExtractor{text: "Revenue grew 20% YoY, guidance raised."}
	svc := NewAnalysisService(extractor, backend, testGeminiConfig())

	rec, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   []byte("%PDF-1.4"),
		Credential: "user-key",
		Mode:       domain.ModeText,
	})

	require.NoError(t, err)
	assert.Contains(t, domain.TextSentiments, rec.Sentiment)
	assert.NotEmpty(t, rec.Summary)
	assert.GreaterOrEqual(t, len(rec.Positives), 1)

	// The transcript travels inside the prompt; no upload happens.
	require.Len(t, backend.generateInputs, 1)
	assert.Contains(t, backend.generateInputs[0].Prompt, "Revenue grew 20% YoY, guidance raised.")
	assert.Nil(t, backend.generateInputs[0].File)
	assert.Empty(t, backend.stagedPath)
	assert.Empty(t, backend.deleteCalls)
}

func TestAnalyze_TextMode_ExtractionFailure(t *testing.T) {
	extractor := &fakeExtractor{err: domain.ErrDocumentRead}
	svc := NewAnalysisService(extractor, &fakeBackend{}, testGeminiConfig())

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   []byte("not a pdf"),
		Credential: "user-key",
		Mode:       domain.ModeText,
	})

	assert.ErrorIs(t, err, domain.ErrDocumentRead)
}

func TestAnalyze_MissingCredential(t *testing.T) {
	cfg := testGeminiConfig()
	cfg.APIKey = ""
	svc := NewAnalysisService(&fakeExtractor{}, &fakeBackend{}, cfg)

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document: []byte("%PDF-1.4"),
		Mode:     domain.ModeText,
	})

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestAnalyze_CredentialFallsBackToConfig(t *testing.T) {
	backend := &fakeBackend{generateOut: `{"sentiment":"Neutral"}`}
	svc := NewAnalysisService(&fakeExtractor{text: "t"}, backend, testGeminiConfig())

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document: []byte("%PDF-1.4"),
		Mode:     domain.ModeText,
	})

	require.NoError(t, err)
	require.Len(t, backend.generateInputs, 1)
	assert.Equal(t, "server-key", backend.generateInputs[0].Credential)
}

func TestAnalyze_InvalidMode(t *testing.T) {
	svc := NewAnalysisService(&fakeExtractor{}, &fakeBackend{}, testGeminiConfig())

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   []byte("%PDF-1.4"),
		Credential: "k",
		Mode:       domain.AnalysisMode("vision"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestAnalyze_Multimodal_Success(t *testing.T) {
	backend := &fakeBackend{
		uploadFile: pendingUpload(),
		pollStates: []port.FileState{port.FileStatePending, port.FileStateReady},
		generateOut: "```json\n" + `{"sentiment":"Strong Bullish","confidence_score":91,"summary":"s","positives":["a","b","c"],"negatives":["d","e","f"],"outlook":"o","key_metrics":{"revenue":"1,200 Cr"}}` + "\n```",
	}
	svc := NewAnalysisService(&fakeExtractor{}, backend, testGeminiConfig())

	document := []byte("%PDF-1.4 transcript bytes")
	rec, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   document,
		Credential: "user-key",
		Mode:       domain.ModeMultimodal,
	})

	require.NoError(t, err)
	assert.Contains(t, domain.MultimodalSentiments, rec.Sentiment)
	assert.Equal(t, "1,200 Cr", rec.KeyMetrics["revenue"])

	// Document was staged to a temp file for the upload...
	assert.True(t, backend.stagedExisted)
	assert.Equal(t, document, backend.stagedContents)
	assert.Equal(t, "application/pdf", backend.uploadMIMEType)

	// ...polled to readiness, generated against the handle, and released.
	assert.Equal(t, 2, backend.getCalls)
	require.Len(t, backend.generateInputs, 1)
	require.NotNil(t, backend.generateInputs[0].File)
	assert.Equal(t, port.FileStateReady, backend.generateInputs[0].File.State)
	assert.Equal(t, []string{"files/abc"}, backend.deleteCalls)

	// The temp file never outlives the request.
	_, statErr := os.Stat(backend.stagedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyze_Multimodal_UploadFailure(t *testing.T) {
	backend := &fakeBackend{uploadErr: domain.ErrRemoteUpload}
	svc := NewAnalysisService(&fakeExtractor{}, backend, testGeminiConfig())

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   []byte("%PDF-1.4"),
		Credential: "user-key",
		Mode:       domain.ModeMultimodal,
	})

	assert.ErrorIs(t, err, domain.ErrRemoteUpload)
	// No handle exists, so no cleanup call is made.
	assert.Empty(t, backend.deleteCalls)

	_, statErr := os.Stat(backend.stagedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyze_Multimodal_FailedState(t *testing.T) {
	backend := &fakeBackend{
		uploadFile: pendingUpload(),
		pollStates: []port.FileState{port.FileStateFailed},
	}
	svc := NewAnalysisService(&fakeExtractor{}, backend, testGeminiConfig())

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   []byte("%PDF-1.4"),
		Credential: "user-key",
		Mode:       domain.ModeMultimodal,
	})

	assert.ErrorIs(t, err, domain.ErrRemoteProcessing)
	// Cleanup is still attempted even though processing failed.
	assert.Equal(t, []string{"files/abc"}, backend.deleteCalls)
	assert.Empty(t, backend.generateInputs)

	_, statErr := os.Stat(backend.stagedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyze_Multimodal_PollTimeout(t *testing.T) {
	// The backend never leaves pending; the configured deadline cuts the
	// loop off instead of polling forever.
	backend := &fakeBackend{uploadFile: pendingUpload()}
	svc := NewAnalysisService(&fakeExtractor{}, backend, testGeminiConfig())

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   []byte("%PDF-1.4"),
		Credential: "user-key",
		Mode:       domain.ModeMultimodal,
	})

	assert.ErrorIs(t, err, domain.ErrRemoteProcessing)
	assert.Equal(t, []string{"files/abc"}, backend.deleteCalls)

	_, statErr := os.Stat(backend.stagedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyze_Multimodal_Cancellation(t *testing.T) {
	backend := &fakeBackend{uploadFile: pendingUpload()}
	svc := NewAnalysisService(&fakeExtractor{}, backend, testGeminiConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, AnalyzeInput{
		Document:   []byte("%PDF-1.4"),
		Credential: "user-key",
		Mode:       domain.ModeMultimodal,
	})

	assert.ErrorIs(t, err, domain.ErrRemoteProcessing)
	// Cleanup runs on its own context, so it still goes out.
	assert.Equal(t, []string{"files/abc"}, backend.deleteCalls)
}

func TestAnalyze_Multimodal_EmptyResponse(t *testing.T) {
	backend := &fakeBackend{
		uploadFile:  pendingUpload(),
		pollStates:  []port.FileState{port.FileStateReady},
		generateOut: "",
	}
	svc := NewAnalysisService(&fakeExtractor{}, backend, testGeminiConfig())

	rec, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   []byte("%PDF-1.4"),
		Credential: "user-key",
		Mode:       domain.ModeMultimodal,
	})

	// Empty response is a parse failure, never a partially-populated record.
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Equal(t, []string{"files/abc"}, backend.deleteCalls)

	_, statErr := os.Stat(backend.stagedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyze_Multimodal_GenerateFailure(t *testing.T) {
	backend := &fakeBackend{
		uploadFile:  pendingUpload(),
		pollStates:  []port.FileState{port.FileStateReady},
		generateErr: domain.ErrRemoteAnalysis,
	}
	svc := NewAnalysisService(&fakeExtractor{}, backend, testGeminiConfig())

	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   []byte("%PDF-1.4"),
		Credential: "user-key",
		Mode:       domain.ModeMultimodal,
	})

	assert.ErrorIs(t, err, domain.ErrRemoteAnalysis)
	assert.Equal(t, []string{"files/abc"}, backend.deleteCalls)

	_, statErr := os.Stat(backend.stagedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyze_Multimodal_CleanupFailureIsSwallowed(t *testing.T) {
	backend := &fakeBackend{
		uploadFile:  pendingUpload(),
		pollStates:  []port.FileState{port.FileStateReady},
		generateOut: `{"sentiment":"Bearish","summary":"s","positives":[],"negatives":[],"outlook":"o"}`,
		deleteErr:   errors.New("remote delete hiccup"),
	}
	svc := NewAnalysisService(&fakeExtractor{}, backend, testGeminiConfig())

	rec, err := svc.Analyze(context.Background(), AnalyzeInput{
		Document:   []byte("%PDF-1.4"),
		Credential: "user-key",
		Mode:       domain.ModeMultimodal,
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearish", rec.Sentiment)
	assert.Equal(t, []string{"files/abc"}, backend.deleteCalls)
}

func TestCleanupResult_Failed(t *testing.T) {
	assert.False(t, CleanupResult{FileName: "files/abc"}.Failed())
	assert.True(t, CleanupResult{FileName: "files/abc", Err: errors.New("boom")}.Failed())
}
