package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"

	"ortimer/internal/audio"
	"ortimer/internal/core/countdown"
	"ortimer/internal/storage"
)

func runTerminal(cctx *cli.Context) error {
	logger := slog.Default()

	minutes, seconds := cctx.Int("minutes"), cctx.Int("seconds")
	if minutes < 0 || seconds < 0 {
		return errors.New("minutes and seconds must not be negative")
	}
	if minutes == 0 && seconds == 0 {
		return errors.New("nothing to count down, pass --minutes or --seconds")
	}

	path, err := settingsPath(cctx)
	if err != nil {
		return err
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		logger.Warn("load settings, using defaults", "path", path, "error", err)
	}
	if cctx.Bool("no-chime") {
		settings.ChimeEnabled = false
	}
	if minutes > settings.MaxMinute {
		logger.Warn("minutes clamped", "requested", minutes, "max", settings.MaxMinute)
	}

	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := countdown.NewLoop(8)
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		_ = loop.Run(loopCtx)
		close(loopDone)
	}()
	defer func() {
		cancelLoop()
		<-loopDone
	}()

	player := audio.NewPlayer(
		audio.NewOtoSink(audio.DefaultSampleRate),
		audio.NewBellSink(os.Stdout),
		audio.Config{SampleRate: audio.DefaultSampleRate, Volume: settings.Volume},
		logger,
	)
	controller := countdown.New(settings.CountdownConfig(), countdown.Config{
		Dispatcher: loop,
		Chime:      player,
		Logger:     logger,
	})

	out := cctx.App.Writer
	finished := make(chan struct{})
	var finishOnce sync.Once
	controller.Subscribe(func(event countdown.Event) {
		switch event.Type {
		case countdown.EventStateChange:
			if event.State == countdown.StateProcessing {
				printValue(out, event.Value)
			}
		case countdown.EventValueChanged:
			printValue(out, event.Value)
		case countdown.EventCompleted:
			fmt.Fprintln(out)
			finishOnce.Do(func() { close(finished) })
		}
	})

	loop.Do(func() {
		controller.Set(minutes, seconds)
		controller.Start()
	})

	select {
	case <-finished:
		stop()
		controller.Close()
		return nil
	case <-ctx.Done():
		stop()
		loop.Do(controller.Stop)
		player.Stop()
		controller.Close()
		fmt.Fprintln(out)
		logger.Info("countdown interrupted", "remaining", controller.Value().String())
		return nil
	}
}

func printValue(out io.Writer, value countdown.Value) {
	fmt.Fprintf(out, "\r%s", value)
}
