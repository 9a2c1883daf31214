package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/hexfall/internal/config"
	"github.com/tomz197/hexfall/internal/loop/client"
	"github.com/tomz197/hexfall/internal/loop/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The game owns stdout, so logs go to stderr and stay quiet unless asked.
	level, err := config.GetEnvLevel("LOG_LEVEL", log.ErrorLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, ReportTimestamp: true})

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// Local play only idles out when asked to.
	idle, err := config.GetEnvDuration("HEXFALL_IDLE_TIMEOUT", 24*time.Hour)
	if err != nil {
		return err
	}

	gs := server.NewServer(server.Options{Logger: logger})
	username := config.GetEnv("USER", "player")

	c := client.NewClient(gs, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username:     username,
		Logger:       logger,
		ColorProfile: termenv.NewOutput(os.Stdout).EnvColorProfile(),
		IdleTimeout:  idle,
	})
	return c.Run(ctx)
}
