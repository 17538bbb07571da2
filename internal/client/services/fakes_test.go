package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/zivohub/internal/client/client"
	"github.com/dmitrijs2005/zivohub/internal/client/models"
)

// fakeAuth implements client.AuthService for unit tests.
type fakeAuth struct {
	mu sync.Mutex

	SignUpRet  *models.Account
	SignUpErr  error
	SignInRet  *models.Session
	SignInErr  error
	CurrentRet *models.Account
	CurrentErr error
	ResendErr  error
	PingErr    error
	StoredSess *models.Session

	SignUpGate  *gate
	SignInGate  *gate
	CurrentGate *gate
	ResendGate  *gate

	SignUpCalls  int
	SignInCalls  int
	CurrentCalls int
	ResendCalls  int

	LastSignUpID       models.Identity
	LastSignUpPassword string
	LastSignUpPwRef    []byte
	LastMetadata       map[string]string
	LastSignInID       models.Identity
	LastSignInPassword string
	LastResendID       models.Identity
}

var _ client.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) SignUp(ctx context.Context, id models.Identity, password []byte, metadata map[string]string) (*models.Account, error) {
	f.mu.Lock()
	f.SignUpCalls++
	f.LastSignUpID = id
	f.LastSignUpPassword = string(password)
	f.LastSignUpPwRef = password
	f.LastMetadata = metadata
	g := f.SignUpGate
	f.mu.Unlock()

	g.pass()
	return f.SignUpRet, f.SignUpErr
}

func (f *fakeAuth) SignInWithPassword(ctx context.Context, id models.Identity, password []byte) (*models.Session, error) {
	f.mu.Lock()
	f.SignInCalls++
	f.LastSignInID = id
	f.LastSignInPassword = string(password)
	g := f.SignInGate
	f.mu.Unlock()

	g.pass()
	return f.SignInRet, f.SignInErr
}

func (f *fakeAuth) GetCurrentUser(ctx context.Context) (*models.Account, error) {
	f.mu.Lock()
	f.CurrentCalls++
	g := f.CurrentGate
	f.mu.Unlock()

	g.pass()
	return f.CurrentRet, f.CurrentErr
}

func (f *fakeAuth) ResendVerification(ctx context.Context, id models.Identity) error {
	f.mu.Lock()
	f.ResendCalls++
	f.LastResendID = id
	g := f.ResendGate
	f.mu.Unlock()

	g.pass()
	return f.ResendErr
}

func (f *fakeAuth) calls() (signUp, signIn, current, resend int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SignUpCalls, f.SignInCalls, f.CurrentCalls, f.ResendCalls
}

// gate holds a fake call until released. A nil gate lets calls through.
type gate struct {
	entered chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gate) pass() {
	if g == nil {
		return
	}
	close(g.entered)
	<-g.release
}

// hold waits until a call is parked in the gate.
func (g *gate) hold() { <-g.entered }

func (g *gate) open() { close(g.release) }

func (f *fakeAuth) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeAuth) Close() error { return nil }

// fakeAuthWithSession additionally exposes the provider session.
type fakeAuthWithSession struct {
	*fakeAuth
}

func (f fakeAuthWithSession) Session() (*models.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StoredSess == nil {
		return nil, false
	}
	s := *f.StoredSess
	return &s, true
}

// fakeStore implements client.DataStore.
type fakeStore struct {
	mu sync.Mutex

	QueryRet  []client.Record
	QueryErr  error
	InsertErr error

	LastCollection string
	LastFilter     client.Filter
	LastOrder      *client.Order
	Inserted       []client.Record
	InsertedInto   []string
}

var _ client.DataStore = (*fakeStore)(nil)

func (s *fakeStore) Query(ctx context.Context, collection string, filter client.Filter, order *client.Order) ([]client.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastCollection = collection
	s.LastFilter = filter
	s.LastOrder = order
	return s.QueryRet, s.QueryErr
}

func (s *fakeStore) Insert(ctx context.Context, collection string, record client.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return s.InsertErr
	}
	s.InsertedInto = append(s.InsertedInto, collection)
	s.Inserted = append(s.Inserted, record)
	return nil
}
