package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegl/lighting"
)

func TestDayNightClock(t *testing.T) {
	dn := NewDayNight()
	for time, want := range map[float32]string{
		0:    "12:00 PM",
		0.25: "06:00 PM",
		0.5:  "12:00 AM",
		0.75: "06:00 AM",
	} {
		dn.Time = time
		assert.Equal(t, want, dn.Clock(), "time %v", time)
	}
}

func TestDayNightUpdateWraps(t *testing.T) {
	dn := NewDayNight()
	dn.Time = 0.9
	dn.Update(dn.Period * 0.2)
	assert.InDelta(t, 0.1, dn.Time, 1e-5)

	dn.Active = false
	dn.Update(10)
	assert.InDelta(t, 0.1, dn.Time, 1e-5)
}

func TestDayNightApply(t *testing.T) {
	e := lighting.NewEngine()
	sun := e.AddDirectional(lighting.DirectionalLight{})

	dn := NewDayNight()
	sky := dn.Apply(e, sun)
	assert.Equal(t, palettes[0].sky, sky)

	global, ok := e.Global()
	require.True(t, ok)
	assert.Equal(t, palettes[0].ambient, global.Ambient)

	l := e.Directional(sun)
	assert.True(t, l.Direction.ApproxEqual(mgl32.Vec3{0, -1, 0.35}.Normalize()), "noon sun points down")
	assert.True(t, l.Diffuse.ApproxEqual(palettes[0].sunColor.Mul(palettes[0].sunIntensity)))
}

func TestSamplePaletteInterpolates(t *testing.T) {
	a, b := palettes[0], palettes[1]
	mid := samplePalette((a.t + b.t) / 2)
	assert.InDelta(t, (a.sunIntensity+b.sunIntensity)/2, mid.sunIntensity, 1e-5)
	assert.True(t, mid.ambient.ApproxEqual(a.ambient.Add(b.ambient).Mul(0.5)))
}
