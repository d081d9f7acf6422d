package detection

import (
	"fmt"
	"math"
)

// Letterbox describes how an image was resized and padded into a square model
// input while keeping its aspect ratio.
type Letterbox struct {
	Scale         float32
	Width, Height int // resized image, before padding
	Left, Top     int
	Right, Bottom int
	srcW, srcH    int
}

func NewLetterbox(srcW, srcH, size int) Letterbox {
	r := math.Min(float64(size)/float64(srcW), float64(size)/float64(srcH))
	w := int(math.Round(float64(srcW) * r))
	h := int(math.Round(float64(srcH) * r))
	dw, dh := size-w, size-h
	return Letterbox{
		Scale:  float32(r),
		Width:  w,
		Height: h,
		Left:   dw / 2,
		Right:  dw - dw/2,
		Top:    dh / 2,
		Bottom: dh - dh/2,
		srcW:   srcW,
		srcH:   srcH,
	}
}

// Restore maps a box from model input space back to source image pixels.
func (l Letterbox) Restore(b Box) Box {
	return Box{
		X1: clamp((b.X1-float32(l.Left))/l.Scale, float32(l.srcW)),
		Y1: clamp((b.Y1-float32(l.Top))/l.Scale, float32(l.srcH)),
		X2: clamp((b.X2-float32(l.Left))/l.Scale, float32(l.srcW)),
		Y2: clamp((b.Y2-float32(l.Top))/l.Scale, float32(l.srcH)),
	}
}

func clamp(v, limit float32) float32 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

// DecodeYOLO turns a YOLOv8-style output tensor into candidate detections in
// model input coordinates. The tensor is [1, 4+classes, anchors] with rows
// cx, cy, w, h followed by one score per class; the transposed
// [1, anchors, 4+classes] layout is accepted too. Candidates scoring below
// minScore are dropped. No suppression is applied.
func DecodeYOLO(data []float32, shape []int, minScore float32) ([]Detection, error) {
	if len(shape) != 3 || shape[0] != 1 {
		return nil, fmt.Errorf("unexpected output shape %v", shape)
	}
	channels, anchors := shape[1], shape[2]
	transposed := false
	if anchors < channels {
		channels, anchors = anchors, channels
		transposed = true
	}
	if channels < 5 {
		return nil, fmt.Errorf("output shape %v has no class scores", shape)
	}
	if len(data) < channels*anchors {
		return nil, fmt.Errorf("output has %d values, shape %v needs %d", len(data), shape, channels*anchors)
	}

	at := func(c, i int) float32 {
		if transposed {
			return data[i*channels+c]
		}
		return data[c*anchors+i]
	}

	out := make([]Detection, 0)
	for i := 0; i < anchors; i++ {
		best, bestScore := -1, float32(0)
		for c := 4; c < channels; c++ {
			if s := at(c, i); s > bestScore {
				best, bestScore = c-4, s
			}
		}
		if best < 0 || bestScore < minScore {
			continue
		}
		cx, cy, w, h := at(0, i), at(1, i), at(2, i), at(3, i)
		out = append(out, Detection{
			Box:        Box{X1: cx - w/2, Y1: cy - h/2, X2: cx + w/2, Y2: cy + h/2},
			Confidence: bestScore,
			ClassID:    best,
		})
	}
	return out, nil
}
