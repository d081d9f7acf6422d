// Package detection holds the model-independent side of product detection:
// result types, the label mapping and decoding of raw YOLO output tensors.
// The OpenCV-backed detector lives in the opencv subpackage.
package detection

// Box is an axis-aligned bounding box in image pixels.
type Box struct {
	X1 float32 `json:"x1"`
	Y1 float32 `json:"y1"`
	X2 float32 `json:"x2"`
	Y2 float32 `json:"y2"`
}

func (b Box) Width() float32  { return b.X2 - b.X1 }
func (b Box) Height() float32 { return b.Y2 - b.Y1 }

// Detection is one object found in an image.
type Detection struct {
	Box        Box     `json:"box"`
	Confidence float32 `json:"confidence"`
	ClassID    int     `json:"classId"`
	Label      string  `json:"label"`
}

// Detector finds products in the image stored at imagePath.
type Detector interface {
	Detect(imagePath string) ([]Detection, error)
}
