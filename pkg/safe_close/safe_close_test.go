package safe_close

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeCloseWaitsForAttached(t *testing.T) {
	sc := NewSafeClose()

	released := make(chan struct{})
	sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		close(released)
	})

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())

	select {
	case <-released:
	default:
		t.Fatal("attached goroutine did not observe close signal")
	}
}

func TestSafeCloseKeepsFirstError(t *testing.T) {
	sc := NewSafeClose()

	first := errors.New("listen failed")
	sc.SendCloseSignal(first)
	// 后续信号不覆盖首个错误
	sc.SendCloseSignal(errors.New("secondary"))

	assert.Equal(t, first, sc.WaitClosed())
}

func TestSafeCloseSignalFromAttached(t *testing.T) {
	sc := NewSafeClose()

	cause := errors.New("boom")
	sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		sc.SendCloseSignal(cause)
		<-closeSignal
	})

	donech := make(chan error, 1)
	go func() { donech <- sc.WaitClosed() }()

	select {
	case err := <-donech:
		assert.Equal(t, cause, err)
	case <-time.After(time.Second):
		t.Fatal("WaitClosed did not return")
	}
}
