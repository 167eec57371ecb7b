package common

// Base render resolution; the world origin sits at the screen center.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Dt is the fixed simulation step. Ebiten ticks at 60 TPS.
const Dt = 1.0 / 60.0
