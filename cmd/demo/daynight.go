package main

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/lighting"
)

// dayPalette is the sky and light state at one key time of day.
type dayPalette struct {
	t            float32 // 0..1
	sky          core.Color
	sunColor     mgl32.Vec3
	sunIntensity float32
	ambient      mgl32.Vec3
}

// palettes are ordered by t and wrap around at 1.
var palettes = []dayPalette{
	{t: 0.00, sky: core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1}, sunColor: mgl32.Vec3{1.00, 0.98, 0.92}, sunIntensity: 1.20, ambient: mgl32.Vec3{0.16, 0.18, 0.26}}, // noon
	{t: 0.22, sky: core.Color{R: 0.90, G: 0.52, B: 0.18, A: 1}, sunColor: mgl32.Vec3{1.00, 0.65, 0.25}, sunIntensity: 0.90, ambient: mgl32.Vec3{0.10, 0.12, 0.20}}, // golden hour
	{t: 0.30, sky: core.Color{R: 0.50, G: 0.22, B: 0.28, A: 1}, sunColor: mgl32.Vec3{0.70, 0.40, 0.55}, sunIntensity: 0.25, ambient: mgl32.Vec3{0.06, 0.07, 0.14}}, // dusk
	{t: 0.50, sky: core.Color{R: 0.04, G: 0.04, B: 0.08, A: 1}, sunColor: mgl32.Vec3{0.40, 0.45, 0.65}, sunIntensity: 0.12, ambient: mgl32.Vec3{0.03, 0.04, 0.09}}, // midnight, moonlight
	{t: 0.70, sky: core.Color{R: 0.40, G: 0.18, B: 0.24, A: 1}, sunColor: mgl32.Vec3{0.75, 0.42, 0.60}, sunIntensity: 0.20, ambient: mgl32.Vec3{0.06, 0.07, 0.14}}, // pre-dawn
	{t: 0.78, sky: core.Color{R: 0.88, G: 0.45, B: 0.22, A: 1}, sunColor: mgl32.Vec3{1.00, 0.60, 0.28}, sunIntensity: 0.70, ambient: mgl32.Vec3{0.09, 0.10, 0.17}}, // dawn
}

// DayNight animates the global light, one directional sun and the clear
// color through a day.
type DayNight struct {
	Time   float32 // 0..1: 0=noon, 0.25=sunset, 0.5=midnight, 0.75=sunrise
	Period float32 // seconds per full cycle
	Active bool
}

func NewDayNight() *DayNight {
	return &DayNight{Period: 120, Active: true}
}

func (dn *DayNight) Update(dt float32) {
	if !dn.Active {
		return
	}
	dn.Time += dt / dn.Period
	dn.Time -= math32.Floor(dn.Time)
}

func samplePalette(t float32) dayPalette {
	n := len(palettes)
	for i := range palettes {
		a, b := palettes[i], palettes[(i+1)%n]
		end := b.t
		if i == n-1 {
			end = 1
		}
		if t < a.t || t >= end {
			continue
		}
		f := (t - a.t) / (end - a.t)
		return dayPalette{
			t:            t,
			sky:          lerpColor(a.sky, b.sky, f),
			sunColor:     lerpVec(a.sunColor, b.sunColor, f),
			sunIntensity: a.sunIntensity + (b.sunIntensity-a.sunIntensity)*f,
			ambient:      lerpVec(a.ambient, b.ambient, f),
		}
	}
	return palettes[0]
}

func lerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 { return a.Add(b.Sub(a).Mul(t)) }

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.ColorFromVec4(lerpVec(a.Vec3(), b.Vec3(), t).Vec4(1))
}

// Apply writes the current state into the engine's global light and its
// directional light sun, and returns the sky color to clear with.
func (dn *DayNight) Apply(e *lighting.Engine, sun int) core.Color {
	p := samplePalette(dn.Time)
	e.SetGlobal(lighting.GlobalLight{Ambient: p.ambient})

	// full turn in the XY plane, tilted towards +Z
	s, c := math32.Sincos(dn.Time * 2 * math32.Pi)
	l := e.Directional(sun)
	l.Direction = mgl32.Vec3{s, -c, 0.35}.Normalize()
	l.Diffuse = p.sunColor.Mul(p.sunIntensity)
	l.Specular = p.sunColor.Mul(p.sunIntensity * 0.5)
	return p.sky
}

// Clock formats the time of day as a 12-hour clock starting at noon.
func (dn *DayNight) Clock() string {
	minutes := int(dn.Time*24*60+12*60) % (24 * 60)
	h, m := minutes/60, minutes%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	if h%12 == 0 {
		return fmt.Sprintf("12:%02d %s", m, period)
	}
	return fmt.Sprintf("%02d:%02d %s", h%12, m, period)
}
