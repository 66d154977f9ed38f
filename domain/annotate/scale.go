package annotate

// MaxDisplaySide bounds the longer side of a displayed image in pixels.
const MaxDisplaySide = 1000

// ScaleFactor returns the divisor that shrinks a width x height image so its
// longer side fits in MaxDisplaySide. It is never below 1, so small images
// stay at 1:1 and nothing is ever enlarged.
func ScaleFactor(width, height int) float64 {
	f := 1.0
	if w := float64(width) / MaxDisplaySide; w > f {
		f = w
	}
	if h := float64(height) / MaxDisplaySide; h > f {
		f = h
	}
	return f
}

// ToDisplay maps an original-image coordinate to display space. Truncates
// like the label files written by earlier tool versions expect.
func ToDisplay(orig int, factor float64) int {
	return int(float64(orig) / factor)
}

// ToOriginal maps a display coordinate back to original-image space. The
// round trip through ToDisplay is lossy by up to factor pixels.
func ToOriginal(display int, factor float64) int {
	return int(float64(display) * factor)
}

// DisplaySize returns the on-screen dimensions of a width x height image.
func DisplaySize(width, height int, factor float64) (int, int) {
	return ToDisplay(width, factor), ToDisplay(height, factor)
}
