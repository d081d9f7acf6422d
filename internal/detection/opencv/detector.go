package opencv

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sort"
	"sync"

	"github.com/wichananm65/image-price-checker/internal/config"
	"github.com/wichananm65/image-price-checker/internal/detection"
	"github.com/wichananm65/image-price-checker/internal/logger"
	"gocv.io/x/gocv"
)

// classOffset separates boxes of different classes so a single NMS pass
// only suppresses overlaps within the same class.
const classOffset = 7680

// Detector runs a YOLO model exported to ONNX through OpenCV's DNN module.
type Detector struct {
	mu        sync.Mutex
	net       gocv.Net
	labels    detection.Labels
	inputSize int
	minScore  float32
	iou       float32
	logger    *logger.Logger
}

var _ detection.Detector = (*Detector)(nil)

// Load reads the network and its label mapping. It is called once at startup.
func Load(cfg *config.Config, logger *logger.Logger) (*Detector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	labels, err := detection.LoadLabels(cfg.LabelsPath)
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNet(cfg.ModelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s", cfg.ModelPath)
	}
	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set preferable backend or target")
	}

	size := cfg.ModelInputSize
	if size <= 0 {
		size = 640
	}

	logger.Info("Detection model loaded from %s (%d classes)", cfg.ModelPath, len(labels))
	return &Detector{
		net:       net,
		labels:    labels,
		inputSize: size,
		minScore:  cfg.ConfidenceThreshold,
		iou:       cfg.IoUThreshold,
		logger:    logger,
	}, nil
}

// Detect reads the image at imagePath and returns detections above the
// confidence threshold, highest confidence first.
func (d *Detector) Detect(imagePath string) ([]detection.Detection, error) {
	img := gocv.IMRead(imagePath, gocv.IMReadColor)
	if img.Empty() {
		return nil, fmt.Errorf("failed to read image %s", imagePath)
	}
	defer img.Close()

	lb := detection.NewLetterbox(img.Cols(), img.Rows(), d.inputSize)
	blob, err := d.prepare(img, lb)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	candidates, err := d.forward(blob)
	if err != nil {
		return nil, err
	}
	out := suppress(candidates, lb, d.labels, d.minScore, d.iou)
	for _, object := range out {
		d.logger.Info("Detected %s (%.2f)", object.Label, object.Confidence)
	}
	return out, nil
}

// suppress applies class-aware non-maximum suppression to candidates in model
// input space, then maps survivors back to source pixels and names them.
// The result is ordered by confidence, highest first.
func suppress(candidates []detection.Detection, lb detection.Letterbox, labels detection.Labels, minScore, iou float32) []detection.Detection {
	if len(candidates) == 0 {
		return []detection.Detection{}
	}

	rects := make([]image.Rectangle, len(candidates))
	scores := make([]float32, len(candidates))
	for i, c := range candidates {
		off := c.ClassID * classOffset
		rects[i] = image.Rect(int(c.Box.X1)+off, int(c.Box.Y1)+off, int(c.Box.X2)+off, int(c.Box.Y2)+off)
		scores[i] = c.Confidence
	}
	keep := gocv.NMSBoxes(rects, scores, minScore, iou)

	out := make([]detection.Detection, 0, len(keep))
	for _, idx := range keep {
		c := candidates[idx]
		c.Box = lb.Restore(c.Box)
		c.Label = labels.Name(c.ClassID)
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

// prepare letterboxes img into a square blob scaled to [0,1] in RGB order.
func (d *Detector) prepare(img gocv.Mat, lb detection.Letterbox) (gocv.Mat, error) {
	resized := gocv.NewMat()
	defer resized.Close()
	if err := gocv.Resize(img, &resized, image.Pt(lb.Width, lb.Height), 0, 0, gocv.InterpolationLinear); err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to resize image: %v", err)
	}

	padded := gocv.NewMat()
	defer padded.Close()
	gray := color.RGBA{R: 114, G: 114, B: 114, A: 0}
	if err := gocv.CopyMakeBorder(resized, &padded, lb.Top, lb.Bottom, lb.Left, lb.Right, gocv.BorderConstant, gray); err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to pad image: %v", err)
	}

	return gocv.BlobFromImage(padded, 1.0/255.0, image.Pt(d.inputSize, d.inputSize), gocv.NewScalar(0, 0, 0, 0), true, false), nil
}

// forward runs one inference pass. The network holds its input between
// SetInput and Forward, so passes are serialized.
func (d *Detector) forward(blob gocv.Mat) ([]detection.Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("failed to read model output: %v", err)
	}
	return detection.DecodeYOLO(data, output.Size(), d.minScore)
}

// Close releases the network.
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
