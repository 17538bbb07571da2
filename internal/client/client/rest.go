package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/zivohub/internal/client/models"
	"github.com/dmitrijs2005/zivohub/internal/clock"
	"github.com/dmitrijs2005/zivohub/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	authPrefix = "/auth/v1"
	restPrefix = "/rest/v1"

	// refreshSkew refreshes tokens slightly before they actually expire.
	refreshSkew = 10 * time.Second
)

var clientInfo = strings.ToLower(common.ApplicationName) + "-go"

// RESTClient talks to a Supabase-compatible project over HTTPS.
type RESTClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	clock      clock.Clock

	mu      sync.Mutex
	session *models.Session
}

// RESTOption customizes a RESTClient.
type RESTOption func(*RESTClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(r *RESTClient) { r.httpClient = c }
}

// WithTimeout sets the per-request timeout of the default http client.
func WithTimeout(d time.Duration) RESTOption {
	return func(r *RESTClient) { r.httpClient.Timeout = d }
}

// WithClock replaces the clock used for session expiry checks.
func WithClock(c clock.Clock) RESTOption {
	return func(r *RESTClient) { r.clock = c }
}

// NewRESTClient creates a client for the project at baseURL authenticated
// with the public anon key.
func NewRESTClient(baseURL, anonKey string, opts ...RESTOption) *RESTClient {
	c := &RESTClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		clock:      clock.New(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ---- wire types ----

type userDTO struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
	PhoneConfirmedAt *time.Time     `json:"phone_confirmed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

type sessionDTO struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresAt    int64    `json:"expires_at"`
	User         *userDTO `json:"user"`
}

// signupResponse covers both provider shapes: a full session when accounts
// are auto-confirmed, or the bare user when confirmation is pending.
type signupResponse struct {
	sessionDTO
	userDTO
}

type errorDTO struct {
	Code             json.RawMessage `json:"code"`
	ErrorCode        string          `json:"error_code"`
	Msg              string          `json:"msg"`
	Message          string          `json:"message"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

func (u *userDTO) toModel() *models.Account {
	if u == nil || u.ID == "" {
		return nil
	}
	a := &models.Account{
		Email:            u.Email,
		Phone:            u.Phone,
		EmailConfirmedAt: u.EmailConfirmedAt,
		PhoneConfirmedAt: u.PhoneConfirmedAt,
		CreatedAt:        u.CreatedAt,
		Name:             metadataString(u.UserMetadata, "name"),
		Role:             metadataString(u.UserMetadata, "role"),
	}
	if id, err := uuid.Parse(u.ID); err == nil {
		a.ID = id
	}
	return a
}

func metadataString(md map[string]any, key string) string {
	if v, ok := md[key].(string); ok {
		return v
	}
	return ""
}

func (s *sessionDTO) toModel() *models.Session {
	if s.AccessToken == "" {
		return nil
	}
	sess := &models.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		Account:      s.User.toModel(),
	}
	if s.ExpiresAt > 0 {
		sess.ExpiresAt = time.Unix(s.ExpiresAt, 0)
	} else if exp, ok := tokenExpiry(s.AccessToken); ok {
		sess.ExpiresAt = exp
	}
	return sess
}

// tokenExpiry reads the exp claim of an access token. The signature is not
// verified: the token is only forwarded back to the provider that issued it.
func tokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func identityBody(id models.Identity, extra map[string]any) map[string]any {
	body := make(map[string]any, len(extra)+1)
	for k, v := range id.Fields() {
		body[k] = v
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

// ---- AuthService ----

// SignUp registers a new account. When the provider returns a session
// (auto-confirmed projects) it becomes the current session.
func (c *RESTClient) SignUp(ctx context.Context, id models.Identity, password []byte, metadata map[string]string) (*models.Account, error) {
	body := identityBody(id, map[string]any{
		"password": string(password),
		"data":     metadata,
	})

	var resp signupResponse
	if err := c.do(ctx, http.MethodPost, authPrefix+"/signup", nil, body, &resp, requestOpts{}); err != nil {
		return nil, err
	}

	if sess := resp.sessionDTO.toModel(); sess != nil {
		c.setSession(sess)
		return sess.Account, nil
	}
	if acc := resp.userDTO.toModel(); acc != nil {
		return acc, nil
	}
	if acc := resp.sessionDTO.User.toModel(); acc != nil {
		return acc, nil
	}
	return nil, ErrBadResponse
}

// SignInWithPassword exchanges credentials for a session.
func (c *RESTClient) SignInWithPassword(ctx context.Context, id models.Identity, password []byte) (*models.Session, error) {
	body := identityBody(id, map[string]any{"password": string(password)})
	q := url.Values{"grant_type": {"password"}}

	var resp sessionDTO
	if err := c.do(ctx, http.MethodPost, authPrefix+"/token", q, body, &resp, requestOpts{}); err != nil {
		return nil, err
	}
	sess := resp.toModel()
	if sess == nil {
		return nil, ErrBadResponse
	}
	c.setSession(sess)
	return sess, nil
}

// GetCurrentUser fetches the account of the current session. Without a
// session it returns ErrNoSession and makes no request.
func (c *RESTClient) GetCurrentUser(ctx context.Context) (*models.Account, error) {
	if c.currentSession() == nil {
		return nil, ErrNoSession
	}

	var resp userDTO
	if err := c.do(ctx, http.MethodGet, authPrefix+"/user", nil, nil, &resp, requestOpts{authenticated: true}); err != nil {
		return nil, err
	}
	acc := resp.toModel()
	if acc == nil {
		return nil, ErrBadResponse
	}

	c.mu.Lock()
	if c.session != nil {
		next := *c.session
		next.Account = acc
		c.session = &next
	}
	c.mu.Unlock()

	return acc, nil
}

// ResendVerification re-dispatches the signup confirmation over the
// identity's channel.
func (c *RESTClient) ResendVerification(ctx context.Context, id models.Identity) error {
	kind := "signup"
	if id.Channel() == models.ChannelPhone {
		kind = "sms"
	}
	body := identityBody(id, map[string]any{"type": kind})
	return c.do(ctx, http.MethodPost, authPrefix+"/resend", nil, body, nil, requestOpts{})
}

// Ping checks provider liveness.
func (c *RESTClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, authPrefix+"/health", nil, nil, nil, requestOpts{})
}

// Session returns a copy of the current session, if any.
func (c *RESTClient) Session() (*models.Session, bool) {
	s := c.currentSession()
	if s == nil {
		return nil, false
	}
	cp := *s
	return &cp, true
}

// Close releases idle connections and forgets the session.
func (c *RESTClient) Close() error {
	c.setSession(nil)
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *RESTClient) currentSession() *models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *RESTClient) setSession(s *models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// refreshIfExpired swaps an expired access token for a new one.
func (c *RESTClient) refreshIfExpired(ctx context.Context) error {
	s := c.currentSession()
	if s == nil || s.RefreshToken == "" || !s.Expired(c.clock.Now().Add(refreshSkew)) {
		return nil
	}

	q := url.Values{"grant_type": {"refresh_token"}}
	body := map[string]string{"refresh_token": s.RefreshToken}

	var resp sessionDTO
	if err := c.do(ctx, http.MethodPost, authPrefix+"/token", q, body, &resp, requestOpts{}); err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	next := resp.toModel()
	if next == nil {
		return ErrBadResponse
	}
	if next.Account == nil {
		next.Account = s.Account
	}
	c.setSession(next)
	return nil
}

// ---- DataStore ----

// Query selects rows of collection matching filter, sorted by order.
func (c *RESTClient) Query(ctx context.Context, collection string, filter Filter, order *Order) ([]Record, error) {
	q := url.Values{"select": {"*"}}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, "eq."+fmt.Sprint(filter[k]))
	}
	if order != nil && order.Column != "" {
		q.Set("order", order.Column+"."+order.Direction())
	}

	var records []Record
	err := c.do(ctx, http.MethodGet, restPrefix+"/"+url.PathEscape(collection), q, nil, &records, requestOpts{authenticated: true})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Insert adds one record to collection.
func (c *RESTClient) Insert(ctx context.Context, collection string, record Record) error {
	return c.do(ctx, http.MethodPost, restPrefix+"/"+url.PathEscape(collection), nil, []Record{record}, nil,
		requestOpts{authenticated: true, prefer: "return=minimal"})
}

// ---- transport ----

type requestOpts struct {
	authenticated bool
	prefer        string
}

func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body, result any, opts requestOpts) error {
	if opts.authenticated {
		if err := c.refreshIfExpired(ctx); err != nil {
			return err
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.APIKeyHeaderName, c.anonKey)
	req.Header.Set(common.ClientInfoHeaderName, clientInfo)
	if opts.prefer != "" {
		req.Header.Set(common.PreferHeaderName, opts.prefer)
	}

	bearer := c.anonKey
	if s := c.currentSession(); s != nil && s.AccessToken != "" {
		bearer = s.AccessToken
	}
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return c.mapError(resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}
	return nil
}

func (c *RESTClient) mapError(status int, body []byte) error {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, status)
	}

	se := &ServiceError{StatusCode: status}

	var e errorDTO
	if err := json.Unmarshal(body, &e); err != nil {
		se.Message = strings.TrimSpace(string(body))
		return se
	}

	for _, m := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if m != "" {
			se.Message = m
			break
		}
	}
	switch {
	case e.ErrorCode != "":
		se.Code = e.ErrorCode
	case len(e.Code) > 0:
		var s string
		if err := json.Unmarshal(e.Code, &s); err == nil {
			se.Code = s
		} else {
			se.Code = string(e.Code)
		}
	case e.Error != "":
		se.Code = e.Error
	}
	return se
}

// IsUnavailable reports whether err is a transport-level failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
