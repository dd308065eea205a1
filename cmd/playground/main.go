package main

import (
	"log/slog"
	"os"
	"runtime"

	"gl-playground/internal/config"
	"gl-playground/internal/graphics"

	"github.com/xlab/closer"
)

func init() {
	// GLFW and the GL context belong to the main thread
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	level := slog.LevelInfo
	if config.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	graphics.SetLogger(logger)

	settings, err := config.Load()
	if err != nil {
		closer.Fatalln(err)
	}

	// closer runs cleanups on its own goroutine; it only asks the loop to
	// stop and waits until GL teardown has finished on this thread.
	exitC := make(chan struct{}, 1)
	doneC := make(chan struct{})
	closer.Bind(func() {
		select {
		case exitC <- struct{}{}:
		default:
		}
		<-doneC
	})

	if err := run(settings, logger, exitC, doneC); err != nil {
		logger.Error("playground stopped", "err", err)
		closer.Fatalln(err)
	}
}
