package storage

import "context"

// ObjectStorage is the injected capability for photo and document uploads.
// The rest of the system only ever sees the returned public URL.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}
