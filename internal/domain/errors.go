package domain

import "errors"

var (
	// ErrDocumentRead means the uploaded stream could not be parsed as a PDF.
	ErrDocumentRead = errors.New("document could not be read as PDF")
	// ErrRemoteUpload means handing the file to the model API failed.
	ErrRemoteUpload = errors.New("remote file upload failed")
	// ErrRemoteProcessing means the remote side reported a failed (or timed out) file state.
	ErrRemoteProcessing = errors.New("remote file processing failed")
	// ErrRemoteAnalysis means the generation call failed at the transport or API level.
	ErrRemoteAnalysis = errors.New("remote analysis call failed")
	// ErrMalformedResponse means the model returned an empty or undecodable response.
	ErrMalformedResponse = errors.New("model response was empty or malformed")

	ErrMissingCredential   = errors.New("no API credential provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidMode         = errors.New("invalid analysis mode")
)
