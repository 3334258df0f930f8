// Package lowdetail implements the "low detail mode" switch that turns off
// decorative animation. Tablets are locked into low detail; desktops get a
// toggle backed by a saved preference; narrower screens get no toggle.
package lowdetail

import (
	"time"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/securestorage"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	TabletMinWidth  = 768
	DesktopMinWidth = 1200

	// PreferenceKey is the storage key of the saved desktop preference.
	PreferenceKey = "lowDetailMode"

	// AnnounceDuration is how long a screen-reader announcement stays in the page.
	AnnounceDuration = time.Second
)

// Viewport describes the device at evaluation time.
type Viewport struct {
	Width int
	Touch bool
}

// DeviceClass groups viewports by how the mode is controlled.
type DeviceClass int

const (
	Compact DeviceClass = iota
	Tablet
	Desktop
)

func (c DeviceClass) String() string {
	switch c {
	case Tablet:
		return "tablet"
	case Desktop:
		return "desktop"
	default:
		return "compact"
	}
}

// Classify maps a viewport onto its DeviceClass.
func Classify(v Viewport) DeviceClass {
	switch {
	case v.Width >= DesktopMinWidth:
		return Desktop
	case v.Width >= TabletMinWidth && v.Touch:
		return Tablet
	default:
		return Compact
	}
}

// Page applies the visible side effects of the mode.
type Page interface {
	// SetLowDetail hides decorative animated elements when active and restores them otherwise.
	SetLowDetail(active bool)
	ShowToggle(pressed bool)
	HideToggle()
}

// Announcer inserts a screen-reader live region and returns a function that removes it.
type Announcer interface {
	Announce(message string) (remove func())
}

// Background is the optional animated background. A nil Background means the
// page has none.
type Background interface {
	Pause()
	Resume()
}

// Preferences persists the desktop preference. *securestorage.Storage satisfies it.
type Preferences interface {
	GetItem(key string, fromSession bool) (any, securestorage.Result)
	SetItem(key string, value any, opts securestorage.SetOptions) securestorage.Result
}

// Options wires a Mode to its page.
type Options struct {
	Page        Page
	Preferences Preferences // optional; without it nothing is remembered
	Announcer   Announcer  // optional
	Background  Background // optional
	Clock       clockwork.Clock
}

// Mode is the low detail state for one page load.
type Mode struct {
	page       Page
	prefs      Preferences
	announcer  Announcer
	background Background
	clock      clockwork.Clock

	class  DeviceClass
	active bool
	ready  bool
}

// New creates a Mode. Call Init once the viewport is known.
func New(opts Options) *Mode {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Mode{
		page:       opts.Page,
		prefs:      opts.Preferences,
		announcer:  opts.Announcer,
		background: opts.Background,
		clock:      clock,
	}
}

// Init evaluates the viewport and applies the initial state without announcing it.
func (m *Mode) Init(v Viewport) {
	m.class = Classify(v)
	m.ready = true

	switch m.class {
	case Tablet:
		m.page.HideToggle()
		m.apply(true)
	case Desktop:
		saved := m.savedPreference()
		m.page.ShowToggle(saved)
		m.apply(saved)
	default:
		m.page.HideToggle()
		m.apply(m.savedPreference())
	}
	log.Debug().Str("device", m.class.String()).Bool("active", m.active).Msg("Low detail mode initialized")
}

// Resize re-evaluates the mode when the viewport crosses a class boundary.
func (m *Mode) Resize(v Viewport) {
	if m.ready && Classify(v) == m.class {
		return
	}
	m.Init(v)
}

// Toggle flips the mode on desktop and persists the choice. It reports
// whether anything changed; on other device classes it does nothing.
func (m *Mode) Toggle() bool {
	if !m.ready || m.class != Desktop {
		return false
	}
	next := !m.active
	if m.prefs != nil {
		if res := m.prefs.SetItem(PreferenceKey, next, securestorage.SetOptions{}); !res.OK() {
			log.Warn().Err(res.Err).Msg("Low detail preference not saved")
		}
	}
	m.apply(next)
	m.page.ShowToggle(next)

	if next {
		m.announce("Low detail mode enabled")
	} else {
		m.announce("Low detail mode disabled")
	}
	return true
}

// Active reports whether low detail mode is on.
func (m *Mode) Active() bool { return m.active }

// Class returns the device class from the last evaluation.
func (m *Mode) Class() DeviceClass { return m.class }

func (m *Mode) apply(active bool) {
	m.active = active
	m.page.SetLowDetail(active)
	if m.background == nil {
		return
	}
	if active {
		m.background.Pause()
	} else {
		m.background.Resume()
	}
}

func (m *Mode) announce(message string) {
	if m.announcer == nil {
		return
	}
	remove := m.announcer.Announce(message)
	if remove != nil {
		m.clock.AfterFunc(AnnounceDuration, remove)
	}
}

func (m *Mode) savedPreference() bool {
	if m.prefs == nil {
		return false
	}
	v, res := m.prefs.GetItem(PreferenceKey, false)
	if !res.OK() {
		return false
	}
	switch saved := v.(type) {
	case bool:
		return saved
	case string:
		return saved == "true"
	default:
		return false
	}
}
