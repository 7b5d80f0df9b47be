package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/kestrelcore/snesgo"
	"github.com/kestrelcore/snesgo/internal/input"
)

// game implements ebiten.Game, driving one snesgo.Core a frame at a
// time the way the teacher's EbitengineGame drove internal/app.Emulator.
type game struct {
	core   *snesgo.Core
	stream *audioStream

	frameImage *ebiten.Image
	imgBuffer  *image.RGBA

	windowWidth, windowHeight int
}

func newGame(core *snesgo.Core, stream *audioStream) *game {
	return &game{
		core:         core,
		stream:       stream,
		frameImage:   ebiten.NewImage(snesgo.ScreenWidth, snesgo.ScreenHeight),
		imgBuffer:    image.NewRGBA(image.Rect(0, 0, snesgo.ScreenWidth, snesgo.ScreenHeight)),
		windowWidth:  snesgo.ScreenWidth * 2,
		windowHeight: snesgo.ScreenHeight * 2,
	}
}

// keyMap is player one's default binding, named after the teacher's own
// control scheme (arrow keys / WASD for the d-pad, J/K for the face
// buttons).
var keyMap = map[ebiten.Key]input.Button{
	ebiten.KeyArrowUp:    input.ButtonUp,
	ebiten.KeyArrowDown:  input.ButtonDown,
	ebiten.KeyArrowLeft:  input.ButtonLeft,
	ebiten.KeyArrowRight: input.ButtonRight,
	ebiten.KeyW:          input.ButtonUp,
	ebiten.KeyA:          input.ButtonLeft,
	ebiten.KeyS:          input.ButtonDown,
	ebiten.KeyD:          input.ButtonRight,
	ebiten.KeyJ:          input.ButtonA,
	ebiten.KeyZ:          input.ButtonA,
	ebiten.KeyK:          input.ButtonB,
	ebiten.KeyX:          input.ButtonB,
	ebiten.KeyU:          input.ButtonX,
	ebiten.KeyI:          input.ButtonY,
	ebiten.KeyQ:          input.ButtonL,
	ebiten.KeyE:          input.ButtonR,
	ebiten.KeyEnter:      input.ButtonStart,
	ebiten.KeySpace:      input.ButtonSelect,
}

func (g *game) readPad() input.PadState {
	var state input.PadState
	for key, button := range keyMap {
		if ebiten.IsKeyPressed(key) {
			state |= input.PadState(button)
		}
	}
	return state
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	pads := [4]input.PadState{g.readPad()}
	frame, err := g.core.RunFrame(pads)
	if err != nil {
		return err
	}

	g.stream.push(frame.Samples)
	blit(g.imgBuffer, frame.Pixels)
	g.frameImage.WritePixels(g.imgBuffer.Pix)

	return nil
}

// blit expands the core's packed 0xRRGGBB pixels into an opaque RGBA
// buffer ebiten can upload directly.
func blit(dst *image.RGBA, pixels []uint32) {
	for i, p := range pixels {
		dst.Pix[i*4+0] = byte(p >> 16)
		dst.Pix[i*4+1] = byte(p >> 8)
		dst.Pix[i*4+2] = byte(p)
		dst.Pix[i*4+3] = 0xFF
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	op := &ebiten.DrawImageOptions{}
	scaleX := float64(g.windowWidth) / float64(snesgo.ScreenWidth)
	scaleY := float64(g.windowHeight) / float64(snesgo.ScreenHeight)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	offsetX := (float64(g.windowWidth) - float64(snesgo.ScreenWidth)*scale) / 2
	offsetY := (float64(g.windowHeight) - float64(snesgo.ScreenHeight)*scale) / 2
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)

	screen.DrawImage(g.frameImage, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.windowWidth, g.windowHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
