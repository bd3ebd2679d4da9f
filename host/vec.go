package host

// Vec2 is a two component shader vector.
type Vec2 struct {
	X, Y float32
}

// Vec4 is a four component shader vector. Colors use X=R, Y=G, Z=B, W=A.
type Vec4 struct {
	X, Y, Z, W float32
}

// Vec4FromRGBA unpacks a packed color the way the host stores color
// settings: red in the low byte, alpha in the high byte, each channel
// normalized to [0, 1].
func Vec4FromRGBA(rgba uint32) Vec4 {
	const scale = 1.0 / 255.0
	return Vec4{
		X: float32(float64(rgba&0xFF) * scale),
		Y: float32(float64((rgba>>8)&0xFF) * scale),
		Z: float32(float64((rgba>>16)&0xFF) * scale),
		W: float32(float64((rgba>>24)&0xFF) * scale),
	}
}
