package main

import (
	"scenegl/core"
	"scenegl/scene"
)

// CameraController flies a camera: WASD to move, Q/E down and up, right
// mouse drag to look around, shift to go faster.
type CameraController struct {
	moveSpeed float32
	lookSpeed float32

	dragging     bool
	lastX, lastY float64
}

func NewCameraController() *CameraController {
	return &CameraController{moveSpeed: 6, lookSpeed: 0.004}
}

func (cc *CameraController) Update(window *core.Window, cam *scene.Camera, dt float32) {
	// long frames would teleport the camera
	dt = min(dt, 0.05)

	if window.IsMouseButtonPressed(core.MouseButtonRight) {
		x, y := window.MousePos()
		if cc.dragging {
			cam.RotateRight(float32(x-cc.lastX) * cc.lookSpeed)
			cam.RotateUp(float32(cc.lastY-y) * cc.lookSpeed)
		}
		cc.lastX, cc.lastY, cc.dragging = x, y, true
	} else {
		cc.dragging = false
	}

	step := cc.moveSpeed * dt
	if window.IsKeyPressed(core.KeyLeftShift) {
		step *= 3
	}
	for _, k := range []struct {
		key  int
		move func(float32)
		sign float32
	}{
		{core.KeyW, cam.MoveForward, 1},
		{core.KeyS, cam.MoveForward, -1},
		{core.KeyD, cam.MoveRight, 1},
		{core.KeyA, cam.MoveRight, -1},
		{core.KeyE, cam.MoveUp, 1},
		{core.KeyQ, cam.MoveUp, -1},
	} {
		if window.IsKeyPressed(k.key) {
			k.move(k.sign * step)
		}
	}
}
