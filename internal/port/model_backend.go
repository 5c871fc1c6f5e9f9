package port

import "context"

// FileState is the remote processing state of an uploaded file.
type FileState string

const (
	FileStatePending FileState = "pending"
	FileStateReady   FileState = "ready"
	FileStateFailed  FileState = "failed"
)

// RemoteFile identifies content uploaded to the model API together with its
// processing state. The backing storage is remote; this is only a handle.
type RemoteFile struct {
	Name     string
	URI      string
	MIMEType string
	State    FileState
}

// GenerateInput carries the parameters for one generation call.
type GenerateInput struct {
	Credential string
	Prompt     string
	// File, when set, is attached to the request ahead of the prompt.
	// The caller must only pass a handle in the ready state.
	File *RemoteFile
}

// ModelBackend abstracts the hosted model API. Each method maps to one
// remote operation; none of them retries.
type ModelBackend interface {
	// UploadFile hands a staged local file to the remote API and returns
	// its handle. The returned state is usually pending; the caller polls
	// GetFile until a terminal state is reached.
	UploadFile(ctx context.Context, credential, path, mimeType string) (*RemoteFile, error)
	// GetFile re-queries the processing state of an uploaded file.
	GetFile(ctx context.Context, credential, name string) (*RemoteFile, error)
	// Generate issues one generation call and returns the raw text output.
	Generate(ctx context.Context, input GenerateInput) (string, error)
	// DeleteFile releases the remote storage behind a handle.
	DeleteFile(ctx context.Context, credential, name string) error
}
