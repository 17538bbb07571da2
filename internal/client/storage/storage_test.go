package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/zivohub/internal/netx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type objectServer struct {
	mu      sync.Mutex
	status  int
	path    string
	query   url.Values
	ct      string
	body    []byte
	method  string
	handled int
}

func newObjectServer(t *testing.T, status int) (*objectServer, *httptest.Server) {
	t.Helper()
	srv := &objectServer{status: status}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		srv.mu.Lock()
		srv.handled++
		srv.method = r.Method
		srv.path = r.URL.Path
		srv.query = r.URL.Query()
		srv.ct = r.Header.Get("Content-Type")
		srv.body = b
		srv.mu.Unlock()
		w.WriteHeader(srv.status)
	}))
	t.Cleanup(ts.Close)
	return srv, ts
}

func testConfig(endpoint string) Config {
	return Config{
		Endpoint:  endpoint,
		Region:    "us-east-1",
		Bucket:    "homework",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}
}

func TestNewUploader_RequiresBucket(t *testing.T) {
	_, err := NewUploader(Config{Region: "us-east-1"}, nil)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestPut_PresignsAndUploadsPathStyle(t *testing.T) {
	srv, ts := newObjectServer(t, http.StatusOK)
	u, err := NewUploader(testConfig(ts.URL), ts.Client())
	require.NoError(t, err)

	err = u.Put(context.Background(), "homework/h1/s1/essay.txt", []byte("Hamlet hesitates."), "text/plain")
	require.NoError(t, err)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, http.MethodPut, srv.method)
	assert.Equal(t, "/homework/homework/h1/s1/essay.txt", srv.path)
	assert.Equal(t, "text/plain", srv.ct)
	assert.Equal(t, []byte("Hamlet hesitates."), srv.body)
	assert.Equal(t, "AWS4-HMAC-SHA256", srv.query.Get("X-Amz-Algorithm"))
	assert.Equal(t, "900", srv.query.Get("X-Amz-Expires"))
	assert.True(t, strings.HasPrefix(srv.query.Get("X-Amz-Credential"), "minioadmin/"))
}

func TestPut_RejectedByStorage(t *testing.T) {
	_, ts := newObjectServer(t, http.StatusForbidden)
	u, err := NewUploader(testConfig(ts.URL), ts.Client())
	require.NoError(t, err)

	err = u.Put(context.Background(), "k", []byte("x"), "")
	require.ErrorIs(t, err, netx.ErrUploadRejected)
}

func TestPut_PresignError(t *testing.T) {
	old := presignPutObject
	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("signer exploded")
	}
	t.Cleanup(func() { presignPutObject = old })

	srv, ts := newObjectServer(t, http.StatusOK)
	u, err := NewUploader(testConfig(ts.URL), ts.Client())
	require.NoError(t, err)

	err = u.Put(context.Background(), "k", []byte("x"), "")
	require.ErrorContains(t, err, "signer exploded")
	assert.Equal(t, 0, srv.handled)
}

func TestURL_PresignsGet(t *testing.T) {
	u, err := NewUploader(testConfig("http://127.0.0.1:9000"), nil)
	require.NoError(t, err)

	link, err := u.URL(context.Background(), "homework/h1/s1/essay.txt")
	require.NoError(t, err)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", parsed.Host)
	assert.Equal(t, "/homework/homework/h1/s1/essay.txt", parsed.Path)
	assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))
}
