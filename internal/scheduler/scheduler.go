// Package scheduler drives the CPU, PPU, DMA engine, and APU from a
// single master-cycle clock, delivering NMI/IRQ at the timing
// boundaries spec.md §4.7 describes and returning control to the host
// once per completed frame.
package scheduler

import (
	"golang.org/x/sync/errgroup"

	"github.com/kestrelcore/snesgo/internal/apu"
	"github.com/kestrelcore/snesgo/internal/bus"
	"github.com/kestrelcore/snesgo/internal/cpu"
	"github.com/kestrelcore/snesgo/internal/dma"
	"github.com/kestrelcore/snesgo/internal/input"
	"github.com/kestrelcore/snesgo/internal/ppu"
)

// Scheduler owns every cycle-ticked component and steps them in
// master-cycle lockstep, the way internal/app.Emulator drove the
// teacher's NES components one CPU step at a time.
type Scheduler struct {
	CPU   *cpu.CPU
	Bus   *bus.Bus
	PPU   *ppu.PPU
	DMA   *dma.Engine
	APU   *apu.APU
	Input *input.Input

	frameDone   bool
	frameBuffer []uint32

	prevScanline, prevDot int
	virqFiredThisFrame    bool
	hirqFiredThisLine     bool

	threaded bool
}

// New wires the callbacks the scheduler needs: PPU vblank drives NMI
// delivery and frame completion signaling.
func New(c *cpu.CPU, b *bus.Bus, p *ppu.PPU, d *dma.Engine, a *apu.APU, in *input.Input) *Scheduler {
	s := &Scheduler{CPU: c, Bus: b, PPU: p, DMA: d, APU: a, Input: in}
	p.SetFrameCompleteCallback(func(buf []uint32) {
		s.frameDone = true
		s.frameBuffer = append(s.frameBuffer[:0], buf...)
	})
	return s
}

// EnableThreadedAPU runs APU.Step on a separate goroutine from the
// CPU/PPU/DMA loop. The main loop sends each step's cycle count over a
// buffered channel that the goroutine consumes in order, and RunFrame
// waits on the errgroup until every count is consumed before it
// collects the frame, so audio stays in lockstep with the main loop.
func (s *Scheduler) EnableThreadedAPU(enabled bool) { s.threaded = enabled }

// Frame is one host-facing unit of emulated output: a 256x224 pixel
// buffer (packed 0xRRGGBB, expanded from BGR555) and the interleaved
// stereo PCM samples produced while rendering it.
type Frame struct {
	Pixels  []uint32
	Samples []int16
}

// RunFrame latches pads into the input subsystem, then advances
// emulation until the PPU signals a completed frame, returning that
// frame's pixel buffer and the audio samples generated while producing
// it.
func (s *Scheduler) RunFrame(pads [4]input.PadState) (Frame, error) {
	for i, p := range pads {
		s.Input.SetPad(i, p)
	}

	s.frameDone = false

	if s.threaded {
		if err := s.runFrameThreaded(); err != nil {
			return Frame{}, err
		}
		return s.collectFrame(), nil
	}

	for !s.frameDone {
		s.stepOnce()
	}
	return s.collectFrame(), nil
}

func (s *Scheduler) collectFrame() Frame {
	samples := s.APU.Samples()
	pcm := make([]int16, len(samples))
	for i, f := range samples {
		pcm[i] = float32ToPCM16(f)
	}
	return Frame{Pixels: s.frameBuffer, Samples: pcm}
}

func float32ToPCM16(f float32) int16 {
	v := f * 32767
	if v > 32767 {
		v = 32767
	}
	if v < -32768 {
		v = -32768
	}
	return int16(v)
}

func (s *Scheduler) runFrameThreaded() error {
	cycleCh := make(chan int, 256)
	var g errgroup.Group

	g.Go(func() error {
		for cycles := range cycleCh {
			s.APU.Step(cycles)
		}
		return nil
	})

	for !s.frameDone {
		cycles := s.stepCPUAndPPU()
		cycleCh <- cycles
	}
	close(cycleCh)

	return g.Wait()
}

// stepOnce executes one CPU step (or DMA slot) and folds the resulting
// master cycles into the PPU and APU.
func (s *Scheduler) stepOnce() {
	cycles := s.stepCPUAndPPU()
	s.APU.Step(cycles)
}

func (s *Scheduler) stepCPUAndPPU() int {
	var cycles int

	if s.DMA.HDMAActive() || s.dmaPending() {
		dmaCycles := s.DMA.TakeCycles()
		if dmaCycles > 0 {
			cycles = int(dmaCycles)
			s.PPU.Tick(cycles)
			s.handleScanlineEdges()
			return cycles
		}
	}

	res := s.CPU.Step()
	cycles = int(res.Cycles)
	s.PPU.Tick(cycles)
	s.handleScanlineEdges()
	s.handleHVIRQ()
	if s.Bus.TakePendingNMIOnEnable() {
		s.CPU.RequestNMI()
	}

	return cycles
}

// dmaPending is a hook point for general-DMA-in-progress accounting;
// general DMA in this engine runs to completion synchronously inside
// TriggerGeneralDMA, so there is nothing outstanding to poll here.
func (s *Scheduler) dmaPending() bool { return false }

// handleScanlineEdges fires HDMA setup/per-line transfers and the
// vblank NMI at the scanline boundaries the PPU just crossed.
func (s *Scheduler) handleScanlineEdges() {
	scanline := s.PPU.Scanline()
	if scanline == s.prevScanline {
		return
	}
	s.prevScanline = scanline
	s.hirqFiredThisLine = false
	s.CPU.SetIRQ(false)

	switch {
	case scanline == 0:
		s.DMA.InitHDMA()
		s.virqFiredThisFrame = false
	case scanline > 0 && scanline < 225:
		s.DMA.RunHDMALine()
	case scanline == 225:
		if s.Bus.SetVBlankNMI(true) {
			s.CPU.RequestNMI()
		}
		if s.Bus.AutoJoypadEnabled() {
			s.Input.Latch()
		}
	}
}

// handleHVIRQ approximates the $4207-$420A H/V-timer IRQ: it fires
// once per matching scanline (H-IRQ) or once per frame (V-IRQ at
// H=0), checked against the PPU's current dot/scanline rather than
// modeling the comparator at full dot granularity.
func (s *Scheduler) handleHVIRQ() {
	htime := int(s.Bus.HTime())
	vtime := int(s.Bus.VTime())
	scanline := s.PPU.Scanline()
	dot := s.PPU.Dot()

	if !s.hirqFiredThisLine && dot >= htime && htime > 0 {
		s.hirqFiredThisLine = true
		if s.Bus.SetHVIRQ() {
			s.CPU.SetIRQ(true)
		}
	}
	if !s.virqFiredThisFrame && scanline == vtime && dot == 0 {
		s.virqFiredThisFrame = true
		if s.Bus.SetHVIRQ() {
			s.CPU.SetIRQ(true)
		}
	}
}
