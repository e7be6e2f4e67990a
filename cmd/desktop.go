package main

import (
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/urfave/cli/v2"

	"ortimer/internal/audio"
	"ortimer/internal/core/countdown"
	"ortimer/internal/platform"
	"ortimer/internal/storage"
	"ortimer/internal/ui/preferences"
	"ortimer/internal/ui/timerview"
	"ortimer/internal/ui/tray"
	"ortimer/resources"
)

func runDesktop(cctx *cli.Context) error {
	logger := slog.Default()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	path, err := settingsPath(cctx)
	if err != nil {
		return err
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		logger.Warn("load settings, using defaults", "path", path, "error", err)
	}

	fyneApp := app.NewWithID("com.ortimer.app")
	idleIcon := resources.MustIcon(resources.IdleIcon)
	runningIcon := resources.MustIcon(resources.RunningIcon)
	fyneApp.SetIcon(idleIcon)

	player := audio.NewPlayer(
		audio.NewOtoSink(audio.DefaultSampleRate),
		audio.NewBellSink(os.Stdout),
		audio.Config{SampleRate: audio.DefaultSampleRate, Volume: settings.Volume},
		logger,
	)
	controller := countdown.New(settings.CountdownConfig(), countdown.Config{
		Dispatcher: countdown.DispatcherFunc(fyne.Do),
		Chime:      player,
		Logger:     logger,
	})
	if settings.RememberLast {
		controller.Set(settings.LastValue.Minute, settings.LastValue.Second)
	}
	controller.Subscribe(func(event countdown.Event) {
		if event.Type == countdown.EventStateChange && event.State == countdown.StateProcessing {
			settings.LastValue = event.Value
		}
	})

	view := timerview.New(fyneApp, controller)
	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		updated.LastValue = settings.LastValue
		settings = updated
		controller.UpdateConfig(settings.CountdownConfig())
		player.SetVolume(settings.Volume)
		if err := storage.SaveSettings(path, settings); err != nil {
			logger.Warn("save settings", "path", path, "error", err)
		}
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:        view.Show,
			OnStart:       controller.Start,
			OnStop:        controller.Stop,
			OnReset:       controller.Reset,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(idleIcon)
		controller.Subscribe(func(event countdown.Event) {
			trayManager.HandleEvent(event)
			if event.Type != countdown.EventStateChange {
				return
			}
			if event.State == countdown.StateProcessing {
				desktopApp.SetSystemTrayIcon(runningIcon)
			} else {
				desktopApp.SetSystemTrayIcon(idleIcon)
			}
		})
		value, state := controller.Snapshot()
		trayManager.HandleEvent(countdown.Event{State: state, Value: value})
		view.SetOnClose(view.Window().Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		view.SetOnClose(fyneApp.Quit)
	}

	view.Window().SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("Timer",
			fyne.NewMenuItem("Preferences", prefsWindow.Show),
		),
	))

	fyneApp.Lifecycle().SetOnStopped(func() {
		player.Stop()
		controller.Close()
		if err := storage.SaveSettings(path, settings); err != nil {
			logger.Warn("save settings", "path", path, "error", err)
		}
	})

	view.Show()
	fyneApp.Run()
	return nil
}
