// Package snesgo assembles the cartridge, bus, CPU, PPU, APU, DMA
// engine, and controller ports into one emulation core, exposing the
// frame-at-a-time Core API hosts drive (spec.md §6 / §9's "World"
// composition note).
package snesgo

import (
	"errors"
	"fmt"

	"github.com/kestrelcore/snesgo/internal/apu"
	"github.com/kestrelcore/snesgo/internal/bus"
	"github.com/kestrelcore/snesgo/internal/cartridge"
	"github.com/kestrelcore/snesgo/internal/cpu"
	"github.com/kestrelcore/snesgo/internal/dma"
	"github.com/kestrelcore/snesgo/internal/input"
	"github.com/kestrelcore/snesgo/internal/ppu"
	"github.com/kestrelcore/snesgo/internal/scheduler"
)

// Frame re-exports the scheduler's per-frame output: a 256x224 pixel
// buffer and the interleaved stereo PCM samples produced while
// rendering it.
type Frame = scheduler.Frame

// PadState re-exports the 16-bit standard controller bitmask.
type PadState = input.PadState

// ErrSTPEncountered is returned by RunFrame once the CPU has executed
// STP: the core halts there (spec.md §7) and every subsequent RunFrame
// call returns the same error until Reset.
var ErrSTPEncountered = errors.New("snesgo: CPU halted by STP")

// ScreenWidth and ScreenHeight are the fixed dimensions of every
// returned Frame's pixel buffer.
const (
	ScreenWidth  = ppu.ScreenWidth
	ScreenHeight = ppu.ScreenHeight
)

// apuClockHz and sampleRate match the SNES's fixed SPC700 clock and the
// DSP's fixed output rate; neither varies with the cartridge or host.
const (
	apuClockHz = 1024000.0
	sampleRate = 32000
)

// busRef breaks the construction cycle between bus.Bus, which needs a
// bus.DMAPorts at New time, and dma.Engine, which needs the bus's own
// Read/Write to walk A-bus addresses during a transfer: the engine
// holds this indirection and it's pointed at the real bus once both
// exist.
type busRef struct{ b *bus.Bus }

func (r *busRef) Read(bank uint8, offset uint16) (byte, int)  { return r.b.Read(bank, offset) }
func (r *busRef) Write(bank uint8, offset uint16, v byte) int { return r.b.Write(bank, offset, v) }

// Core is one assembled, runnable SNES. It owns every emulated
// component and the scheduler that steps them together.
type Core struct {
	cart *cartridge.Cartridge
	bus  *bus.Bus
	cpu  *cpu.CPU
	ppu  *ppu.PPU
	apu  *apu.APU
	dma  *dma.Engine
	in   *input.Input

	sched *scheduler.Scheduler
}

// New parses rom, wires a full component stack around it, and resets
// the CPU to its power-on vector. sram seeds battery-backed RAM from a
// prior save; pass nil to start from a zeroed save.
func New(rom []byte, sram []byte) (*Core, error) {
	cart, err := cartridge.New(rom, sram)
	if err != nil {
		return nil, fmt.Errorf("snesgo: %w", err)
	}

	const masterClockHz = 21477270.0 // NTSC; spec.md carries no PAL core path

	p := ppu.New()
	a := apu.New(masterClockHz, apuClockHz, sampleRate)
	in := input.New()

	ref := &busRef{}
	d := dma.New(ref)
	b := bus.New(cart, p, a, d, in)
	ref.b = b

	c := cpu.New(b)
	c.Reset()

	core := &Core{
		cart: cart,
		bus:  b,
		cpu:  c,
		ppu:  p,
		apu:  a,
		dma:  d,
		in:   in,
	}
	core.sched = scheduler.New(c, b, p, d, a, in)
	return core, nil
}

// RunFrame advances emulation by exactly one frame, latching pads into
// the controller ports before stepping, and returns that frame's pixel
// buffer and audio samples (spec.md §6's run_frame).
func (c *Core) RunFrame(pads [4]PadState) (Frame, error) {
	frame, err := c.sched.RunFrame(pads)
	if err != nil {
		return frame, err
	}
	if c.cpu.Stopped() {
		return frame, ErrSTPEncountered
	}
	return frame, nil
}

// Halted reports whether the CPU has executed STP and is waiting for a
// host-issued Reset (spec.md §7).
func (c *Core) Halted() bool { return c.cpu.Stopped() }

// Reset returns the PPU, APU, bus registers, controller ports and CPU
// to their power-on state without re-parsing the cartridge or
// discarding SRAM. WRAM contents and the DMA channel registers are
// left as they are.
func (c *Core) Reset() {
	c.bus.Reset()
	c.ppu.Reset()
	c.apu.Reset()
	c.in.Reset()
	c.cpu.Reset()
}

// SRAM returns the cartridge's live battery-backed RAM for persistence.
// The returned slice aliases the core's own memory; callers that need a
// stable snapshot should copy it.
func (c *Core) SRAM() []byte { return c.cart.SRAM() }

// Title returns the cartridge's decoded, trimmed title string.
func (c *Core) Title() string { return c.cart.Title() }

// EnableThreadedAPU runs the APU's sample production on a second
// goroutine, coordinated with the scheduler's frame loop.
func (c *Core) EnableThreadedAPU(enabled bool) { c.sched.EnableThreadedAPU(enabled) }
