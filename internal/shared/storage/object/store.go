package object

import "context"

// Uploader publishes a local file into the PDF bucket and resolves its
// public URL.
type Uploader interface {
	Upload(ctx context.Context, localPath string, destName string, contentType string) (publicURL string, err error)
}
