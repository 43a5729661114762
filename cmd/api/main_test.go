package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Etiti27/saas-platform-sub000/config"
	"github.com/Etiti27/saas-platform-sub000/internal/app"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

// fakeApp implements the lifecycle methods runServer uses; the embedded
// interface panics if anything else is called
type fakeApp struct {
	app.AppInterface

	initErr  error
	startErr error
	stop     chan struct{}

	mu          sync.Mutex
	shutdownHit bool
}

func (f *fakeApp) Initialize() error { return f.initErr }

func (f *fakeApp) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeApp) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	f.shutdownHit = true
	f.mu.Unlock()
	close(f.stop)
	return nil
}

func (f *fakeApp) SetShutdownTimeout(time.Duration) {}

func (f *fakeApp) GetActiveRequestCount() int64 { return 0 }

func newFakeAppFunc(f *fakeApp) NewAppFunc {
	return func(cfg *config.Config, opts ...app.AppOption) app.AppInterface {
		return f
	}
}

func withSignalNotify(t *testing.T, fn func(c chan<- os.Signal, sig ...os.Signal)) {
	t.Helper()
	original := signalNotify
	signalNotify = fn
	t.Cleanup(func() { signalNotify = original })
}

func TestRunServer_InitializeFails(t *testing.T) {
	f := &fakeApp{initErr: errors.New("database unreachable"), stop: make(chan struct{})}

	err := runServer(&config.Config{}, logger.NewTestLogger(t), newFakeAppFunc(f))

	assert.EqualError(t, err, "database unreachable")
}

func TestRunServer_StartFails(t *testing.T) {
	withSignalNotify(t, func(c chan<- os.Signal, sig ...os.Signal) {})
	f := &fakeApp{startErr: errors.New("address already in use"), stop: make(chan struct{})}

	err := runServer(&config.Config{}, logger.NewTestLogger(t), newFakeAppFunc(f))

	assert.EqualError(t, err, "address already in use")
}

func TestRunServer_GracefulShutdownOnSignal(t *testing.T) {
	var once sync.Once
	withSignalNotify(t, func(c chan<- os.Signal, sig ...os.Signal) {
		once.Do(func() {
			go func() { c <- syscall.SIGTERM }()
		})
	})
	f := &fakeApp{stop: make(chan struct{})}

	err := runServer(&config.Config{}, logger.NewTestLogger(t), newFakeAppFunc(f))

	assert.NoError(t, err)
	f.mu.Lock()
	defer f.mu.Unlock()
	assert.True(t, f.shutdownHit)
}
