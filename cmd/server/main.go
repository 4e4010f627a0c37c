// trash-alchemy-server serves the game over SSH, one independent run per
// connection. Build:
//
//	go build -o trash-alchemy-server ./cmd/server
//
// Usage:
//
//	./trash-alchemy-server [--port 2222] [--key server_host_key] [--max-sessions 16]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/config"
	"trash-alchemy/internal/game"
	internalssh "trash-alchemy/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

// maxNameBytes bounds user names written to the log.
const maxNameBytes = 16

// allowedTerms lists the TERM values a client may select. Anything else
// falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"xterm-color":           true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	maxSessions := flag.Int("max-sessions", 16, "Maximum concurrent games")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	cat, err := cfg.LoadCatalog()
	if err != nil {
		logger.Error("load catalog", "error", err)
		os.Exit(1)
	}

	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.Error("host key", "error", err)
		os.Exit(1)
	}

	h := &handler{
		cfg:     cfg,
		catalog: cat,
		logger:  logger,
		slots:   make(chan struct{}, *maxSessions),
	}
	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		Handler:     h.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: anyone who can reach the port may play.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("listening", "addr", srv.Addr, "items", cat.Items.Len(), "recipes", cat.Recipes.Len())
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
}

// ─── sessions ───────────────────────────────────────────────────────────────

// handler starts a solo game for each SSH session.
type handler struct {
	cfg     config.Config
	catalog *catalog.Catalog
	logger  *slog.Logger
	slots   chan struct{}
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// until the game ends so the session stays open.
func (h *handler) handleSession(s gossh.Session) {
	log := h.logger.With("user", sanitizeName(s.User()), "remote", s.RemoteAddr().String())

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	select {
	case h.slots <- struct{}{}:
		defer func() { <-h.slots }()
	default:
		fmt.Fprintln(s, "The server is full. Try again later.")
		log.Warn("session rejected", "reason", "full")
		return
	}

	term := sessionTerm(s.Environ())
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		log.Warn("terminal setup", "term", term, "error", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		log.Warn("screen init", "term", term, "error", err)
		return
	}

	seed := h.cfg.NewSeed()
	g, err := game.NewWithScreen(screen, game.Options{
		Catalog:       h.catalog,
		Seed:          seed,
		SpawnInterval: h.cfg.SpawnInterval,
		MaxTrash:      h.cfg.MaxTrash,
		Logger:        log,
	})
	if err != nil {
		screen.Fini()
		log.Error("new game", "error", err)
		return
	}

	log.Info("session started", "term", term, "seed", seed)
	if err := g.Run(); err != nil {
		log.Error("game ended with error", "error", err)
		return
	}
	log.Info("session ended")
}

// sessionTerm returns the client's TERM when it is allowed.
func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return "xterm-256color"
}

// sanitizeName drops control characters from an SSH user name and cuts it
// to maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best effort; a fresh key next start only costs clients
	// a known_hosts warning.
	if pemBlock, err := xssh.MarshalPrivateKey(key, "trash-alchemy server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			logger.Warn("save host key", "path", path, "error", err)
		}
	}
	return signer, nil
}
