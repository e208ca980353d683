package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
)

// OverlayResult contains an image with keypoints drawn on it, encoded as
// base64 PNG.
type OverlayResult struct {
	// Width of the output image in pixels (same as input).
	Width int `json:"width"`

	// Height of the output image in pixels (same as input).
	Height int `json:"height"`

	// KeypointCount is the number of keypoints drawn.
	KeypointCount int `json:"keypoint_count"`

	// ImageBase64 is the annotated image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// DrawKeypoints renders keypoints on top of img.
//
// Each keypoint is drawn as a circle of diameter Size with a radial tick
// showing its orientation. Colours encode the pyramid octave: octaves are
// spread evenly around the HSV hue wheel so neighbouring levels stay
// distinguishable.
func DrawKeypoints(img image.Image, kps []features.KeyPoint) (*OverlayResult, error) {
	bounds := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)

	palette := octavePalette(kps)
	for _, kp := range kps {
		c := palette[kp.Octave]
		r := kp.Size / 2
		if r < 2 {
			r = 2
		}
		drawCircle(canvas, kp.X, kp.Y, r, c)
		if kp.Angle >= 0 {
			rad := kp.Angle * math.Pi / 180
			drawSegment(canvas, kp.X, kp.Y, kp.X+r*math.Cos(rad), kp.Y+r*math.Sin(rad), c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode keypoint overlay: %w", err)
	}

	return &OverlayResult{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		KeypointCount: len(kps),
		ImageBase64:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:      "image/png",
	}, nil
}

// octavePalette assigns one fully saturated hue per octave present in kps.
func octavePalette(kps []features.KeyPoint) map[int]color.RGBA {
	maxOctave := 0
	for _, kp := range kps {
		if kp.Octave > maxOctave {
			maxOctave = kp.Octave
		}
	}

	palette := make(map[int]color.RGBA, maxOctave+1)
	for _, kp := range kps {
		if _, ok := palette[kp.Octave]; ok {
			continue
		}
		hue := 360 * float64(kp.Octave) / float64(maxOctave+1)
		r, g, b := colorful.Hsv(hue, 1, 1).Clamped().RGB255()
		palette[kp.Octave] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return palette
}

func drawCircle(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	steps := int(2*math.Pi*r) + 8
	for i := 0; i < steps; i++ {
		t := 2 * math.Pi * float64(i) / float64(steps)
		plot(img, cx+r*math.Cos(t), cy+r*math.Sin(t), c)
	}
}

func drawSegment(img *image.RGBA, x1, y1, x2, y2 float64, c color.RGBA) {
	steps := int(math.Hypot(x2-x1, y2-y1)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		plot(img, x1+(x2-x1)*t, y1+(y2-y1)*t, c)
	}
}

func plot(img *image.RGBA, x, y float64, c color.RGBA) {
	p := image.Point{X: int(math.Round(x)), Y: int(math.Round(y))}
	if p.In(img.Rect) {
		img.SetRGBA(p.X, p.Y, c)
	}
}
