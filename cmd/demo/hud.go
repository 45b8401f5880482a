package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/font"
	"scenegl/gfx"
	"scenegl/scene"
)

// DebugOverlay draws lines of text from the top left corner of a target in
// pixel coordinates.
type DebugOverlay struct {
	ctx   *scene.Context
	face  *font.Face
	lines []*scene.Text
	used  int
}

func NewDebugOverlay(ctx *scene.Context, face *font.Face) *DebugOverlay {
	return &DebugOverlay{ctx: ctx, face: face}
}

func (do *DebugOverlay) AddLine(format string, args ...any) {
	if do.used == len(do.lines) {
		do.lines = append(do.lines, scene.NewText(do.ctx, do.face, ""))
	}
	do.lines[do.used].SetString(fmt.Sprintf(format, args...))
	do.used++
}

func (do *DebugOverlay) Clear() { do.used = 0 }

// hudDepth puts overlay geometry in front of the scene under PixelOrtho.
const hudDepth = 0.9

// Draw renders the lines in pixel coordinates.
func (do *DebugOverlay) Draw(target gfx.Target, settings scene.Settings) {
	withPixelProjection(do.ctx, target, func(w, h int) {
		lineHeight := float32(do.face.Height()) * 1.25
		for i, line := range do.lines[:do.used] {
			line.SetOrigin(mgl32.Vec3{8, float32(h) - lineHeight*float32(i+1), hudDepth})
			line.DrawWith(target, settings)
		}
	})
}

// withPixelProjection runs draw with an identity view and a pixel
// projection for target, then restores the context's matrices.
func withPixelProjection(ctx *scene.Context, target gfx.Target, draw func(w, h int)) {
	view, proj := ctx.View(), ctx.Projection()
	defer func() {
		ctx.SetView(view)
		ctx.SetProjection(proj)
	}()

	w, h := target.DrawableSize()
	ctx.ResetView()
	ctx.SetProjection(scene.PixelOrtho(w, h))
	draw(w, h)
}
