package notification

import (
	"io"
	"safesurf/pkg/domain"
	"sync"

	"github.com/fatih/color"
)

// Surface is the render target of a Lifecycle. The Lifecycle is its only
// caller and never has more than one banner mounted.
type Surface interface {
	// Mount creates the banner node.
	Mount(b Banner)
	// Update replaces the content of the mounted banner in place.
	Update(b Banner)
	// BeginExit starts the exit transition of banner id.
	BeginExit(id uint64)
	// Remove deletes banner id.
	Remove(id uint64)
}

// Op names a Surface call recorded by MemorySurface.
type Op string

const (
	OpMount     Op = "mount"
	OpUpdate    Op = "update"
	OpBeginExit Op = "begin-exit"
	OpRemove    Op = "remove"
)

// Event is one recorded Surface call.
type Event struct {
	Op     Op
	Banner Banner
}

// MemorySurface keeps banners in memory. It counts live nodes so callers can
// check that banners never stack.
type MemorySurface struct {
	mu      sync.Mutex
	live    map[uint64]Banner
	order   []uint64
	maxLive int
	events  []Event
}

// NewMemorySurface creates an empty MemorySurface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{live: map[uint64]Banner{}}
}

func (s *MemorySurface) Mount(b Banner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.live[b.ID] = b
	s.order = append(s.order, b.ID)
	s.maxLive = max(s.maxLive, len(s.live))
	s.events = append(s.events, Event{Op: OpMount, Banner: b})
}

func (s *MemorySurface) Update(b Banner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live[b.ID]; ok {
		s.live[b.ID] = b
	}
	s.events = append(s.events, Event{Op: OpUpdate, Banner: b})
}

func (s *MemorySurface) BeginExit(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.live[id]
	if ok {
		b.Exiting = true
		s.live[id] = b
	}
	s.events = append(s.events, Event{Op: OpBeginExit, Banner: b})
}

func (s *MemorySurface) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.live[id]
	delete(s.live, id)
	s.events = append(s.events, Event{Op: OpRemove, Banner: b})
}

// Live returns the mounted banners in mount order.
func (s *MemorySurface) Live() []Banner {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Banner, 0, len(s.live))
	for _, id := range s.order {
		if b, ok := s.live[id]; ok {
			out = append(out, b)
		}
	}

	return out
}

// MaxLive is the largest number of banners ever mounted at once.
func (s *MemorySurface) MaxLive() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.maxLive
}

// Events returns a copy of every recorded call.
func (s *MemorySurface) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Event(nil), s.events...)
}

// TerminalSurface prints banner transitions as coloured lines.
type TerminalSurface struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
	// ShowProvenance appends the score source to resolved banners.
	ShowProvenance bool
}

// NewTerminalSurface creates a surface writing to w. Colour is disabled when
// noColor is set or when fatih/color detected a non-terminal.
func NewTerminalSurface(w io.Writer, noColor bool) *TerminalSurface {
	return &TerminalSurface{w: w, noColor: noColor || color.NoColor}
}

func (s *TerminalSurface) paint(b Banner) *color.Color {
	var c *color.Color
	switch {
	case b.State == StateAnalyzing:
		c = color.New(color.FgWhite, color.BgBlue)
	case b.Tier == domain.TierSafe:
		c = color.New(color.FgBlack, color.BgGreen)
	case b.Tier == domain.TierCaution:
		c = color.New(color.FgBlack, color.BgYellow)
	default:
		c = color.New(color.FgWhite, color.BgRed)
	}
	if s.noColor {
		c.DisableColor()
	}

	return c
}

func (s *TerminalSurface) print(b Banner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := b.Message
	if s.ShowProvenance && b.Verdict != nil {
		msg += " [" + string(b.Verdict.Source) + "]"
	}
	_, _ = s.paint(b).Fprintln(s.w, " "+msg+" ")
}

func (s *TerminalSurface) Mount(b Banner)  { s.print(b) }
func (s *TerminalSurface) Update(b Banner) { s.print(b) }

// BeginExit is a no-op; a terminal line has no exit transition.
func (s *TerminalSurface) BeginExit(uint64) {}

// Remove is a no-op; printed lines stay in the scrollback.
func (s *TerminalSurface) Remove(uint64) {}

var (
	_ Surface = (*MemorySurface)(nil)
	_ Surface = (*TerminalSurface)(nil)
)
