// Package ssh adapts gliderlabs SSH sessions to tcell terminals so each
// connection can drive its own game screen.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty on top of one SSH session. Window-change
// requests are watched from construction until Close, and forwarded to the
// callback tcell registers through NotifyResize.
type SessionTty struct {
	sess  gossh.Session
	winCh <-chan gossh.Window

	mu       sync.Mutex
	size     tcell.WindowSize
	onResize func()

	closeOnce sync.Once
	done      chan struct{}
}

// NewSessionTty wraps s. pty carries the initial window; winCh the
// window-change requests that follow.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	t := &SessionTty{
		sess:  s,
		winCh: winCh,
		size:  windowSize(pty.Window),
		done:  make(chan struct{}),
	}
	go t.watch()
	return t
}

func windowSize(w gossh.Window) tcell.WindowSize {
	return tcell.WindowSize{Width: w.Width, Height: w.Height}
}

func (t *SessionTty) watch() {
	for {
		select {
		case <-t.done:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.size = windowSize(win)
			cb := t.onResize
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.sess.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.sess.Write(b) }

// Close stops the resize watcher and closes the session channel.
func (t *SessionTty) Close() error {
	t.closeOnce.Do(func() { close(t.done) })
	return t.sess.Close()
}

// Start, Stop and Drain have nothing to do: the channel is opened and
// flushed by the SSH server.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the most recent terminal size.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

// NotifyResize registers the callback run after every window change.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	t.mu.Unlock()
}
