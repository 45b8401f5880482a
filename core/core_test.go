package core

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorChannel(t *testing.T) {
	DrainErrors()

	err := Report(Errorf(ErrShaderConfig, "bad mask %d", 3))
	assert.EqualError(t, err, "shader config: bad mask 3")

	Report(errors.New("plain"))
	Report(nil)

	assert.Len(t, Errors(), 2, "peek must not clear")
	errs := DrainErrors()
	require.Len(t, errs, 2)
	assert.Equal(t, ErrShaderConfig, errs[0].Code)
	assert.Equal(t, ErrUnknown, errs[1].Code)
	assert.Equal(t, "plain", errs[1].Message)
	assert.Empty(t, DrainErrors())
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrModelImport, fs.ErrNotExist, "open scene.obj")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, IsCode(err, ErrModelImport))
	assert.False(t, IsCode(err, ErrFontLoad))
	assert.False(t, IsCode(errors.New("x"), ErrUnknown))
	assert.Equal(t, "model import: open scene.obj: file does not exist", err.Error())
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "framebuffer", ErrFramebuffer.String())
	assert.Equal(t, "ErrorCode(99)", ErrorCode(99).String())
}

func TestReportLogsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	Report(Errorf(ErrGLInit, "no context"))
	DrainErrors()
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `code="gl init"`)
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
window:
  title: demo
  vsync: false
log:
  level: debug
lights: rig.yaml
`))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 4, cfg.Window.Samples)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "rig.yaml", cfg.Lights)
	assert.Empty(t, cfg.Font)
}

func TestParseConfigRejects(t *testing.T) {
	_, err := ParseConfig([]byte("window:\n  width: 0\n"))
	assert.ErrorContains(t, err, "not positive")

	_, err = ParseConfig([]byte("window: [1, 2"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenegl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 640\n  height: 480\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewLoggerLevels(t *testing.T) {
	l := NewLogger(LogConfig{Level: "warn"})
	assert.False(t, l.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, l.Enabled(t.Context(), slog.LevelWarn))

	l = NewLogger(LogConfig{Level: "nonsense", Format: "json"})
	assert.True(t, l.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, l.Enabled(t.Context(), slog.LevelDebug))
}

func TestKeyState(t *testing.T) {
	var k KeyState
	k.update(true)
	assert.True(t, k.IsInitialPress())
	assert.False(t, k.IsRepeated())

	k.update(true)
	assert.True(t, k.IsPressed())
	assert.True(t, k.IsRepeated())
	assert.False(t, k.IsInitialPress())

	k.update(false)
	assert.False(t, k.IsPressed())
	assert.False(t, k.IsRepeated())
}

func TestWindowToDrawable(t *testing.T) {
	// A HiDPI window: 800x600 screen coordinates, 1600x1200 pixels.
	x, y := WindowToDrawable(100, 0, 800, 600, 1600, 1200)
	assert.Equal(t, 200.0, x)
	assert.Equal(t, 1200.0, y)

	x, y = WindowToDrawable(0, 600, 800, 600, 1600, 1200)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	x, y = WindowToDrawable(10, 10, 0, 0, 100, 100)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestColor(t *testing.T) {
	c := Color{0.1, 0.2, 0.3, 0.4}
	assert.Equal(t, c, ColorFromVec4(c.Vec4()))
	assert.Equal(t, float32(0.3), c.Vec3()[2])
}
