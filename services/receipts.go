package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxReceiptBytes = 5 << 20

var receiptContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// ReceiptStore holds uploaded receipt files by object key.
type ReceiptStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type ReceiptUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// ValidateReceipt checks the file extension and size and returns the object
// key and content type the receipt should be stored under.
func ValidateReceipt(r *ReceiptUpload) (key, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(r.Filename))
	contentType, ok := receiptContentTypes[ext]
	if !ok {
		return "", "", invalid("receipt", "only JPG, PNG or PDF files are allowed")
	}
	if r.Size > MaxReceiptBytes {
		return "", "", invalid("receipt", "file too large (max 5 MB)")
	}
	return "receipts/" + uuid.NewString() + ext, contentType, nil
}
