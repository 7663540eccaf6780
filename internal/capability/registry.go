// Package capability implements the process-wide capability registry,
// permission sets, and the WebView/JS compatibility policy described by
// the capability-and-policy contract.
package capability

import (
	"sort"
	"strings"
	"sync"
)

// Name is a dotted capability identifier, e.g. "filesystem.read".
type Name string

// RiskLevel orders capabilities by the harm an unchecked grant could cause.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Category groups related capabilities, derived from the identifier's
// leading segment (the part before the first dot, or the whole string if
// there is no dot).
type Category string

// CategoryOf returns the category for a dotted capability name.
func CategoryOf(name Name) Category {
	if i := strings.IndexByte(string(name), '.'); i >= 0 {
		return Category(name[:i])
	}
	return Category(name)
}

// Registered describes one capability's metadata.
type Registered struct {
	Name                Name
	DisplayName         string
	Description         string
	Category            Category
	Risk                RiskLevel
	Parent              Name // empty if none
	PromptRecommended   bool
	Enforceable         bool
	PrivacyImplications []string
}

// Registry is a process-wide, read-mostly table of known capabilities.
// Registration happens once at startup; lookups are safe to call from any
// goroutine without external synchronization.
type Registry struct {
	mu   sync.RWMutex
	caps map[Name]Registered
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry, initializing it with the
// default taxonomy on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
		global.registerDefaults()
	})
	return global
}

// NewRegistry creates an empty registry. Most callers want Global(); this
// constructor exists for tests and for callers assembling a custom
// taxonomy.
func NewRegistry() *Registry {
	return &Registry{caps: make(map[Name]Registered)}
}

// Register adds or replaces a capability's metadata.
func (r *Registry) Register(c Registered) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caps[c.Name] = c
}

// Get looks up a capability by name.
func (r *Registry) Get(name Name) (Registered, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.caps[name]
	return c, ok
}

// IsRegistered reports whether name has been registered.
func (r *Registry) IsRegistered(name Name) bool {
	_, ok := r.Get(name)
	return ok
}

// All returns every registered capability, sorted by name.
func (r *Registry) All() []Registered {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Registered, 0, len(r.caps))
	for _, c := range r.caps {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByCategory returns every registered capability in the given category,
// sorted by name.
func (r *Registry) ByCategory(cat Category) []Registered {
	var out []Registered
	for _, c := range r.All() {
		if c.Category == cat {
			out = append(out, c)
		}
	}
	return out
}

// ByMinRisk returns every registered capability at or above the given risk
// level, sorted by name.
func (r *Registry) ByMinRisk(min RiskLevel) []Registered {
	var out []Registered
	for _, c := range r.All() {
		if c.Risk >= min {
			out = append(out, c)
		}
	}
	return out
}

// registerDefaults installs the default OxideKit taxonomy: filesystem.*,
// network.*, keychain.*, camera.*, microphone.*, clipboard.*,
// background.*, notifications, system.info, location, and
// screenshot.capture.
func (r *Registry) registerDefaults() {
	reg := func(c Registered) {
		if c.Category == "" {
			c.Category = CategoryOf(c.Name)
		}
		c.Enforceable = true
		r.Register(c)
	}

	reg(Registered{Name: "filesystem", DisplayName: "Full Filesystem Access",
		Description: "Read and write any file on the system", Risk: RiskCritical, PromptRecommended: true,
		PrivacyImplications: []string{"Can access any file including documents and downloads", "Can modify or delete files"}})
	reg(Registered{Name: "filesystem.read", DisplayName: "Filesystem Read",
		Description: "Read files from the filesystem", Parent: "filesystem", Risk: RiskHigh, PromptRecommended: true,
		PrivacyImplications: []string{"Can read documents and user data"}})
	reg(Registered{Name: "filesystem.write", DisplayName: "Filesystem Write",
		Description: "Write files to the filesystem", Parent: "filesystem", Risk: RiskHigh, PromptRecommended: true,
		PrivacyImplications: []string{"Can create, modify, or delete files"}})

	reg(Registered{Name: "keychain", DisplayName: "Keychain & Secrets",
		Description: "Access to system keychain and secure storage", Risk: RiskCritical, PromptRecommended: true,
		PrivacyImplications: []string{"Can access stored passwords and secrets"}})
	reg(Registered{Name: "keychain.access", DisplayName: "Keychain Access",
		Description: "Read and write keychain entries", Parent: "keychain", Risk: RiskHigh, PromptRecommended: true,
		PrivacyImplications: []string{"Can store and retrieve secure credentials"}})
	reg(Registered{Name: "keychain.read", DisplayName: "Keychain Read",
		Description: "Read keychain entries", Parent: "keychain", Risk: RiskHigh, PromptRecommended: true,
		PrivacyImplications: []string{"Can read stored passwords"}})

	reg(Registered{Name: "network", DisplayName: "Full Network Access",
		Description: "Unrestricted network access", Risk: RiskCritical, PromptRecommended: true,
		PrivacyImplications: []string{"Can connect to any server", "Can transmit data without restriction"}})
	reg(Registered{Name: "network.http", DisplayName: "HTTP Network Access",
		Description: "Make HTTP/HTTPS requests", Parent: "network", Risk: RiskMedium, PromptRecommended: true,
		PrivacyImplications: []string{"Can send and receive data over HTTP"}})
	reg(Registered{Name: "network.websocket", DisplayName: "WebSocket Access",
		Description: "Establish WebSocket connections", Parent: "network", Risk: RiskMedium, PromptRecommended: true,
		PrivacyImplications: []string{"Can maintain persistent connections"}})

	reg(Registered{Name: "camera", DisplayName: "Camera Access",
		Description: "Full camera access", Risk: RiskHigh, PromptRecommended: true,
		PrivacyImplications: []string{"Can capture photos and video"}})
	reg(Registered{Name: "camera.capture", DisplayName: "Camera Capture",
		Description: "Capture still images from camera", Parent: "camera", Risk: RiskMedium, PromptRecommended: true,
		PrivacyImplications: []string{"Can take photos"}})
	reg(Registered{Name: "camera.stream", DisplayName: "Camera Stream",
		Description: "Stream video from camera", Parent: "camera", Risk: RiskMedium, PromptRecommended: true,
		PrivacyImplications: []string{"Can record video"}})

	reg(Registered{Name: "microphone", DisplayName: "Microphone Access",
		Description: "Full microphone access", Risk: RiskHigh, PromptRecommended: true,
		PrivacyImplications: []string{"Can record audio"}})
	reg(Registered{Name: "microphone.record", DisplayName: "Microphone Record",
		Description: "Record audio from microphone", Parent: "microphone", Risk: RiskMedium, PromptRecommended: true,
		PrivacyImplications: []string{"Can capture audio recordings"}})
	reg(Registered{Name: "microphone.stream", DisplayName: "Microphone Stream",
		Description: "Stream audio from microphone", Parent: "microphone", Risk: RiskMedium, PromptRecommended: true,
		PrivacyImplications: []string{"Can stream audio in real-time"}})

	reg(Registered{Name: "screenshot.capture", DisplayName: "Screenshot Capture",
		Description: "Capture screenshots of the screen", Risk: RiskHigh, PromptRecommended: true,
		PrivacyImplications: []string{"Can capture screen contents", "May capture sensitive information on screen"}})

	reg(Registered{Name: "clipboard", DisplayName: "Clipboard Access",
		Description: "Read and write clipboard", Risk: RiskMedium,
		PrivacyImplications: []string{"Can access copied data"}})
	reg(Registered{Name: "clipboard.read", DisplayName: "Clipboard Read",
		Description: "Read from clipboard", Parent: "clipboard", Risk: RiskMedium,
		PrivacyImplications: []string{"Can read copied text and data"}})
	reg(Registered{Name: "clipboard.write", DisplayName: "Clipboard Write",
		Description: "Write to clipboard", Parent: "clipboard", Risk: RiskLow})

	reg(Registered{Name: "background.task", DisplayName: "Background Tasks",
		Description: "Run tasks in the background", Risk: RiskMedium,
		PrivacyImplications: []string{"Can perform operations when app is not focused"}})
	reg(Registered{Name: "background.service", DisplayName: "Background Service",
		Description: "Run persistent background services", Risk: RiskMedium, PromptRecommended: true,
		PrivacyImplications: []string{"Can run continuously in background"}})

	reg(Registered{Name: "notifications", DisplayName: "System Notifications",
		Description: "Display system notifications", Risk: RiskLow})

	reg(Registered{Name: "system.info", DisplayName: "System Information",
		Description: "Read basic system information", Risk: RiskLow,
		PrivacyImplications: []string{"Can read OS version and hardware info"}})

	reg(Registered{Name: "location", DisplayName: "Location Access",
		Description: "Access device location", Risk: RiskHigh, PromptRecommended: true,
		PrivacyImplications: []string{"Can track physical location"}})
}
