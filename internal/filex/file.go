// Package filex reads local files selected for upload.
package filex

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// MaxAttachmentSize caps homework attachments.
const MaxAttachmentSize int64 = 20 << 20

var (
	ErrEmptyFile = errors.New("file is empty")
	ErrTooLarge  = errors.New("file is too large")
	ErrNotFile   = errors.New("not a regular file")
)

// Attachment is a file read into memory for upload.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadAttachment reads the file at path, rejecting directories, empty files
// and files larger than limit. The content type is taken from the extension,
// falling back to content sniffing.
func ReadAttachment(path string, limit int64) (*Attachment, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFile)
	}
	if fi.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if limit > 0 && fi.Size() > limit {
		return nil, fmt.Errorf("%s (%d bytes): %w", path, fi.Size(), ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	return &Attachment{Name: name, ContentType: ct, Data: data}, nil
}
