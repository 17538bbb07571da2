// Package netx holds small HTTP helpers shared by client components.
package netx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUploadRejected is returned when object storage answers a presigned PUT
// with a non-2xx status.
var ErrUploadRejected = errors.New("upload rejected")

// UploadToPresignedURL PUTs body to a presigned object-storage URL.
// A nil client means http.DefaultClient.
func UploadToPresignedURL(ctx context.Context, client *http.Client, url string, body []byte, contentType string) error {
	if client == nil {
		client = http.DefaultClient
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%w: %s; body: %s", ErrUploadRejected, resp.Status, string(b))
	}
	return nil
}
