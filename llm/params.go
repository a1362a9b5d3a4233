package llm

import "math/rand"

// CameraParams is the camera/lens/aperture combination reused across one
// prompt-generation run as a visual continuity hint.
type CameraParams struct {
	Camera      string `json:"camera"`
	Lens        string `json:"lens"`
	FocalLength string `json:"focal_length"`
	Aperture    string `json:"aperture"`
}

// RandomCameraParams draws one combination from the reference lists. The
// random source is a parameter so callers can seed it in tests.
func RandomCameraParams(r *rand.Rand) CameraParams {
	return CameraParams{
		Camera:      Cameras[r.Intn(len(Cameras))],
		Lens:        Lenses[r.Intn(len(Lenses))],
		FocalLength: FocalLengths[r.Intn(len(FocalLengths))],
		Aperture:    Apertures[r.Intn(len(Apertures))],
	}
}
