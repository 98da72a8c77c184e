package port

import "context"

// TextExtractor produces raw text from a receipt image on local disk.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}
