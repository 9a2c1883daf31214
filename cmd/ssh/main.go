package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"github.com/tomz197/hexfall/internal/config"
	"github.com/tomz197/hexfall/internal/draw"
	"github.com/tomz197/hexfall/internal/loop/client"
	loopconfig "github.com/tomz197/hexfall/internal/loop/config"
	"github.com/tomz197/hexfall/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "hexfall"})
	if err := run(logger); err != nil {
		logger.Fatal("server failed", "err", err)
	}
}

func run(logger *log.Logger) error {
	level, err := config.GetEnvLevel("LOG_LEVEL", log.InfoLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	idleTimeout, err := config.GetEnvDuration("HEXFALL_IDLE_TIMEOUT", loopconfig.InactivityDisconnectUser)
	if err != nil {
		return err
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath, "idleTimeout", idleTimeout)

	// Shared by all SSH clients: registry and leaderboard. Each client plays
	// its own board.
	gameServer := server.NewServer(server.Options{Logger: logger.WithPrefix("server")})

	h := &gameHandler{
		server:      gameServer,
		logger:      logger,
		idleTimeout: idleTimeout,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.DebugLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-done:
	}
	logger.Info("shutting down")

	// Notify players and wait for them to disconnect
	gameServer.Shutdown(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// gameHandler runs one game client per SSH session.
type gameHandler struct {
	server      *server.Server
	logger      *log.Logger
	idleTimeout time.Duration
}

// middleware handles SSH sessions and runs the game client.
func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			wish.Fatalln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("game session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c := client.NewClient(h.server, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Logger:       logger,
			ColorProfile: colorProfile(pty.Term, sess.Environ()),
			IdleTimeout:  h.idleTimeout,
		})
		if err := c.Run(sess.Context()); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("game session ended")
		next(sess)
	}
}

// colorProfile picks a color profile from the client's terminal type and
// environment. There is no local TTY to query.
func colorProfile(termType string, environ []string) termenv.Profile {
	for _, kv := range environ {
		if kv == "COLORTERM=truecolor" || kv == "COLORTERM=24bit" {
			return termenv.TrueColor
		}
	}
	switch {
	case strings.Contains(termType, "256color"):
		return termenv.ANSI256
	case termType == "" || termType == "dumb":
		return termenv.Ascii
	default:
		return termenv.ANSI
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
