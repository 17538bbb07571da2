package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/zivohub/internal/client/config"
	"github.com/dmitrijs2005/zivohub/internal/client/i18n"
	"github.com/dmitrijs2005/zivohub/internal/client/models"
	"github.com/dmitrijs2005/zivohub/internal/client/services"
	"github.com/dmitrijs2005/zivohub/internal/clock"
	"github.com/dmitrijs2005/zivohub/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	mu sync.Mutex

	SignUpRet *models.Account
	SignUpErr error
	SignInRet *models.Session
	SignInErr error
	UserRet   *models.Account
	UserErr   error
	ResendErr error
	pingErr   error

	signUps, signIns, resends, pings int

	lastIdentity models.Identity
	lastMetadata map[string]string
	closed       bool
}

func (f *fakeAuth) SignUp(_ context.Context, id models.Identity, _ []byte, md map[string]string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUps++
	f.lastIdentity = id
	f.lastMetadata = md
	return f.SignUpRet, f.SignUpErr
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, id models.Identity, _ []byte) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns++
	f.lastIdentity = id
	return f.SignInRet, f.SignInErr
}

func (f *fakeAuth) GetCurrentUser(context.Context) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.UserRet, f.UserErr
}

func (f *fakeAuth) ResendVerification(_ context.Context, id models.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resends++
	f.lastIdentity = id
	return f.ResendErr
}

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeAuth) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type fakeLessons struct {
	ListRet    []models.Lesson
	ListErr    error
	EnrollErr  error
	lastEnroll services.EnrollRequest
	enrolls    int
}

func (f *fakeLessons) List(context.Context) ([]models.Lesson, error) {
	return f.ListRet, f.ListErr
}

func (f *fakeLessons) Enroll(_ context.Context, req services.EnrollRequest) error {
	f.enrolls++
	f.lastEnroll = req
	return f.EnrollErr
}

type fakeHomework struct {
	ListRet    []models.Homework
	ListErr    error
	SubmitErr  error
	lastStatus models.HomeworkStatus
	lastSubmit services.SubmitRequest
	submits    int
}

func (f *fakeHomework) List(_ context.Context, status models.HomeworkStatus) ([]models.Homework, error) {
	f.lastStatus = status
	return f.ListRet, f.ListErr
}

func (f *fakeHomework) Submit(_ context.Context, req services.SubmitRequest) (*models.HomeworkSubmission, error) {
	f.submits++
	f.lastSubmit = req
	if f.SubmitErr != nil {
		return nil, f.SubmitErr
	}
	return &models.HomeworkSubmission{
		HomeworkID: req.HomeworkID,
		StudentID:  req.StudentID,
		StorageKey: "homework/key",
		FileName:   req.Path[strings.LastIndex(req.Path, "/")+1:],
	}, nil
}

type testApp struct {
	*App
	auth     *fakeAuth
	lessons  *fakeLessons
	homework *fakeHomework
	out      *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tr, err := i18n.New(i18n.English)
	require.NoError(t, err)

	auth := &fakeAuth{}
	lessons := &fakeLessons{}
	homework := &fakeHomework{}
	out := &bytes.Buffer{}

	clk := clock.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	flow := services.NewAccountFlow(auth, services.WithClock(clk))
	t.Cleanup(flow.Close)

	app := &App{
		config:   &config.Config{OnlineCheckInterval: time.Second},
		auth:     auth,
		flow:     flow,
		lessons:  lessons,
		homework: homework,
		tr:       tr,
		log:      logging.Nop(),
		reader:   bufio.NewReader(strings.NewReader("")),
		out:      out,
	}
	return &testApp{App: app, auth: auth, lessons: lessons, homework: homework, out: out}
}

// stubInputs replaces the prompt seams with queues. Text prompts (single
// and multiline) share one queue; an exhausted queue returns io.EOF.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	oldText, oldPw, oldMulti := getSimpleText, getPassword, getMultiline

	next := func() (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getPassword = func(*bufio.Reader, string, io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		pw := []byte(passwords[0])
		passwords = passwords[1:]
		return pw, nil
	}

	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = oldText, oldPw, oldMulti
	})
}
