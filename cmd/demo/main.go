// Command demo opens a window and draws every kind of scenegl object: shapes,
// lit models, text and a render-to-texture minimap, under a day/night cycle.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/font"
	"scenegl/gfx"
	"scenegl/internal/opengl"
	"scenegl/lighting"
	"scenegl/scene"
	"scenegl/shader"
	"scenegl/transform"
)

const minimapSize = 256

func main() {
	configPath := flag.String("config", "cmd/demo/demo.yaml", "path to the YAML config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		cfg = core.DefaultConfig()
	}
	core.SetLogger(core.NewLogger(cfg.Log))
	log := core.Logger()

	window, err := core.NewWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	dev, err := opengl.NewDevice()
	if err != nil {
		return err
	}
	ctx := scene.NewContext(dev)
	defer ctx.Release()

	w, err := newWorld(ctx, cfg)
	if err != nil {
		return err
	}
	defer w.delete()

	face := font.Default()
	if cfg.Font != "" {
		if face, err = font.Load(cfg.Font, 0); err != nil {
			log.Warn("font unavailable, using built-in face", "path", cfg.Font, "error", err)
			face = font.Default()
		}
	}
	hud := NewDebugOverlay(ctx, face)
	label := scene.NewText(ctx, face, "scenegl")
	label.SetOrigin(mgl32.Vec3{-3, 2.5, 0})
	label.SetScale(mgl32.Vec2{0.03, 0.03})

	minimap, err := scene.NewTextureTarget(dev, minimapSize, minimapSize)
	if err != nil {
		return err
	}
	defer minimap.Delete()
	mapSprite := scene.NewSprite(ctx, minimap.Texture(), mgl32.Vec3{}, mgl32.Vec2{minimapSize, minimapSize}, 0)
	overhead := scene.NewCamera(mgl32.Vec3{0, 30, 0}, mgl32.Vec3{})

	cam := scene.NewCamera(mgl32.Vec3{0, 3, 10}, mgl32.Vec3{0, 1, 0})
	proj := scene.Perspective{FOV: mgl32.DegToRad(60), Near: 0.1, Far: 200}
	proj.UpdateAspectRatio(window.DrawableSize())
	window.SetResizeCallback(proj.UpdateAspectRatio)
	controller := NewCameraController()

	dayNight := NewDayNight()
	showAxes := false
	frames, fps := 0, 0
	fpsStart := time.Now()
	last := time.Now()

	log.Info("demo running", "model", cfg.Model, "lights", cfg.Lights)
	for !window.ShouldClose() {
		window.PollEvents()
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if window.Key(core.KeyEscape).IsInitialPress() {
			window.SetShouldClose(true)
		}
		if window.Key(core.KeyL).IsInitialPress() {
			dayNight.Active = !dayNight.Active
		}
		if window.Key(core.KeyF).IsInitialPress() {
			showAxes = !showAxes
		}
		controller.Update(window, cam, dt)
		dayNight.Update(dt)
		w.update(dt)
		sky := dayNight.Apply(w.lights, w.sun)

		ctx.SetView(overhead.View())
		ctx.SetProjection(mgl32.Ortho(-20, 20, -20, 20, 0.1, 100))
		ctx.Clear(minimap, sky)
		w.draw(minimap, false)

		ctx.SetView(cam.View())
		ctx.SetProjection(proj.Matrix())
		ctx.Clear(window, sky)
		w.draw(window, showAxes)
		label.Draw(window)

		frames++
		if since := now.Sub(fpsStart); since >= time.Second {
			fps = int(float64(frames) / since.Seconds())
			frames, fpsStart = 0, now
		}
		hud.Clear()
		hud.AddLine("%d fps", fps)
		hud.AddLine("%s%s", dayNight.Clock(), pausedSuffix(dayNight.Active))
		pos := cam.View().Inv().Col(3)
		hud.AddLine("camera %.1f %.1f %.1f", pos[0], pos[1], pos[2])
		hud.AddLine("WASD/QE move, right drag look, L time, F axes, Esc quit")
		hud.Draw(window, ctx.Settings())

		withPixelProjection(ctx, window, func(width, _ int) {
			mapSprite.SetMin(mgl32.Vec3{float32(width - minimapSize - 8), 8, hudDepth})
			mapSprite.Draw(window)
		})

		window.SwapBuffers()
		core.DrainErrors()
	}
	return nil
}

func pausedSuffix(active bool) string {
	if active {
		return ""
	}
	return " (paused)"
}

// world holds the objects drawn into both the window and the minimap.
type world struct {
	ctx    *scene.Context
	lights *lighting.Engine
	sun    int

	colorShader   *shader.Program
	textureShader *shader.Program

	ground *scene.Model
	torus  *scene.Model
	ball   *scene.Model
	model  *scene.Model

	cubes  []*scene.Cube
	axes   []*scene.Line
	points []*scene.Point3D
	sign   *scene.Rectangle

	spin float32
}

func newWorld(ctx *scene.Context, cfg core.Config) (*world, error) {
	w := &world{ctx: ctx, lights: lighting.NewEngine()}
	if err := w.build(cfg); err != nil {
		w.delete()
		return nil, err
	}
	return w, nil
}

func (w *world) build(cfg core.Config) (err error) {
	ctx := w.ctx

	if cfg.Lights != "" {
		rig, err := lighting.LoadRig(cfg.Lights)
		if err != nil {
			return err
		}
		w.lights = rig.Engine()
	}
	w.sun = w.lights.AddDirectional(lighting.DirectionalLight{})

	counts := shader.LightCounts{
		Directional: w.lights.NumDirectional(),
		Positional:  w.lights.NumPositional(),
		Spot:        w.lights.NumSpot(),
	}
	if w.colorShader, err = shader.Phong(ctx.Device(), counts, shader.Material); err != nil {
		return err
	}
	if w.textureShader, err = shader.Phong(ctx.Device(), counts, shader.TextureMaterial); err != nil {
		return err
	}

	grass := mgl32.Vec3{0.25, 0.45, 0.2}
	if w.ground, err = scene.NewModel(ctx, scene.SingleMesh(scene.PlaneData(40, 40, 8), &scene.MaterialData{Name: "grass", Diffuse: &grass, Ambient: &grass}), 0); err != nil {
		return err
	}
	gold := mgl32.Vec3{0.9, 0.7, 0.2}
	white := mgl32.Vec3{1, 1, 1}
	if w.torus, err = scene.NewModel(ctx, scene.SingleMesh(scene.TorusData(1.2, 0.35, 48, 24), &scene.MaterialData{Name: "gold", Diffuse: &gold, Specular: &white}), transform.Rotatable); err != nil {
		return err
	}
	w.torus.SetLoc(mgl32.Vec3{0, 2, 0})
	w.torus.SetRotAxis(mgl32.Vec3{0.3, 1, 0})

	checker := scene.NewSolidImage("checker", 200, 60, 60, 255)
	if w.ball, err = scene.NewModel(ctx, scene.SingleMesh(scene.SphereData(1, 32, 16), &scene.MaterialData{Name: "ball", DiffuseTextures: []*scene.Image{checker}}), 0); err != nil {
		return err
	}
	w.ball.SetLoc(mgl32.Vec3{4, 1, -2})

	if cfg.Model != "" {
		data, err := scene.LoadModel(cfg.Model)
		if err != nil {
			return err
		}
		if w.model, err = scene.NewModel(ctx, data, transform.Scalable|transform.Rotatable); err != nil {
			return err
		}
		w.model.SetLoc(mgl32.Vec3{-4, 0, -2})
	}

	for i := range 5 {
		c := scene.NewCube(ctx, mgl32.Vec3{float32(i)*1.5 - 3.5, 0, 4}, mgl32.Vec3{1, float32(i + 1), 1}, 0)
		w.cubes = append(w.cubes, c)
	}
	w.axes = []*scene.Line{
		scene.NewLine(ctx, mgl32.Vec3{}, mgl32.Vec3{5, 0, 0}, 0),
		scene.NewLine(ctx, mgl32.Vec3{}, mgl32.Vec3{0, 5, 0}, 0),
		scene.NewLine(ctx, mgl32.Vec3{}, mgl32.Vec3{0, 0, 5}, 0),
	}
	for i := range 8 {
		w.points = append(w.points, scene.NewPoint3D(ctx, mgl32.Vec3{float32(i) - 3.5, 0.05, -6}, 0.2))
	}
	w.sign = scene.NewRectangle(ctx, mgl32.Vec3{-3.2, 2.3, -0.01}, mgl32.Vec2{6.4, 1.2}, 0)
	return nil
}

func (w *world) update(dt float32) {
	w.spin += dt
	w.torus.SetAngle(w.spin)
}

// shaderFor picks the Phong variant matching the model's first mesh.
func (w *world) shaderFor(m *scene.Model) *shader.Program {
	meshes := m.Meshes()
	if len(meshes) > 0 && meshes[0].Material().Kind() == lighting.TextureMaterialKind {
		return w.textureShader
	}
	return w.colorShader
}

func (w *world) draw(target gfx.Target, axes bool) {
	for _, m := range []*scene.Model{w.ground, w.torus, w.ball, w.model} {
		if m != nil {
			m.DrawWith(target, scene.Settings{Shader: w.shaderFor(m), Lighting: w.lights})
		}
	}

	palette := []core.Color{
		{R: 0.9, G: 0.2, B: 0.2, A: 1},
		{R: 0.9, G: 0.6, B: 0.1, A: 1},
		{R: 0.9, G: 0.9, B: 0.2, A: 1},
		{R: 0.2, G: 0.7, B: 0.3, A: 1},
		{R: 0.2, G: 0.4, B: 0.9, A: 1},
	}
	for i, c := range w.cubes {
		c.DrawWith(target, scene.Settings{Color: palette[i%len(palette)]})
	}
	for _, p := range w.points {
		p.DrawWith(target, scene.Settings{Color: core.ColorWhite})
	}
	w.sign.DrawWith(target, scene.Settings{Color: core.Color{R: 0.1, G: 0.1, B: 0.15, A: 1}})

	if axes {
		for i, l := range w.axes {
			var col core.Color
			col.A = 1
			switch i {
			case 0:
				col.R = 1
			case 1:
				col.G = 1
			default:
				col.B = 1
			}
			l.DrawWith(target, scene.Settings{Color: col})
		}
	}
}

func (w *world) delete() {
	for _, m := range []*scene.Model{w.ground, w.torus, w.ball, w.model} {
		if m != nil {
			m.Delete()
		}
	}
	for _, p := range []*shader.Program{w.colorShader, w.textureShader} {
		if p != nil {
			p.Delete()
		}
	}
}
