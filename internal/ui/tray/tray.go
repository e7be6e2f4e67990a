package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"ortimer/internal/core/countdown"
)

const menuTitle = "OrTimer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnStop        func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// MenuApp is the part of desktop.App the tray needs.
type MenuApp interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Manager handles system tray state.
type Manager struct {
	app        MenuApp
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	menu       *fyne.Menu
	value      countdown.Value
	state      countdown.State
}

// New creates a tray manager with the provided callbacks.
func New(app MenuApp, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		state:     countdown.StateStandby,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnStart))
	manager.stopItem = fyne.NewMenuItem("Stop", invoke(&manager.callbacks.OnStop))
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))

	manager.menu = fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.stopItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)

	manager.refresh()
	return manager
}

// HandleEvent mirrors controller events into the menu.
func (manager *Manager) HandleEvent(event countdown.Event) {
	manager.value = event.Value
	manager.state = event.State
	manager.refresh()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refresh() {
	status := "stopped"
	if manager.state == countdown.StateProcessing {
		status = "running"
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s (%s)", manager.value.String(), status)
	manager.startItem.Disabled = manager.state == countdown.StateProcessing || manager.value.IsUnset()
	manager.stopItem.Disabled = manager.state != countdown.StateProcessing

	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

// invoke reads the callback at call time so it can be wired after New.
func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
