package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-padloop/debug"
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// scanTimeout bounds a port listing (CoreMIDI can hang)
const scanTimeout = 3 * time.Second

// DeviceManager handles hot-plug detection of MIDI inputs whose name
// contains the configured match string
type DeviceManager struct {
	match       string
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration

	list func() []string
	open func(name string) (Controller, error)
}

// NewDeviceManager creates a device manager. An empty match accepts every input.
func NewDeviceManager(match string) *DeviceManager {
	return &DeviceManager{
		match:       match,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		list:        InPortNames,
		open:        openKeyboard,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	out := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		out[k] = v
	}
	return out
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	ch := make(chan []string, 1)
	go func() {
		ch <- dm.list()
	}()

	var names []string
	select {
	case names = <-ch:
	case <-time.After(scanTimeout):
		debug.Log("midi", "port scan timed out")
		return
	}

	seen := make(map[string]bool)
	for _, name := range names {
		if !MatchPort(name, dm.match) {
			continue
		}
		seen[name] = true

		dm.mu.RLock()
		_, exists := dm.controllers[name]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		c, err := dm.open(name)
		if err != nil {
			debug.Log("midi", "open %s: %v", name, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[name] = c
		dm.mu.Unlock()
		debug.Log("midi", "connected %s", name)
		dm.events <- DeviceEvent{Type: DeviceConnected, Controller: c, ID: name}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seen[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		dm.controllers[id].Close()
		delete(dm.controllers, id)
	}
	dm.mu.Unlock()

	for _, id := range toRemove {
		debug.Log("midi", "disconnected %s", id)
		dm.events <- DeviceEvent{Type: DeviceDisconnected, ID: id}
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// MatchPort reports whether a port name contains match, ignoring case
func MatchPort(name, match string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(match))
}

// InPortNames lists the system's MIDI inputs
func InPortNames() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// OutPortNames lists the system's MIDI outputs
func OutPortNames() []string {
	var names []string
	for _, out := range gomidi.GetOutPorts() {
		names = append(names, out.String())
	}
	return names
}

func findIn(name string) (drivers.In, error) {
	for _, in := range gomidi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, ErrPortNotFound
}

func openKeyboard(name string) (Controller, error) {
	in, err := findIn(name)
	if err != nil {
		return nil, err
	}
	return NewKeyboardController(name, in)
}
