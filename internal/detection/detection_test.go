package detection

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLabels_ListAndMap(t *testing.T) {
	list := []byte("path: ../datasets/shelf\nnc: 3\nnames: ['Cola', 'Lays', 'Pepsi']\n")
	labels, err := ParseLabels(list)
	if err != nil {
		t.Fatalf("list form failed: %v", err)
	}
	if labels.Name(1) != "Lays" || len(labels) != 3 {
		t.Fatalf("unexpected labels %v", labels)
	}

	mapping := []byte("names:\n  0: Cola\n  2: Pepsi\n")
	labels, err = ParseLabels(mapping)
	if err != nil {
		t.Fatalf("map form failed: %v", err)
	}
	if labels.Name(2) != "Pepsi" {
		t.Fatalf("unexpected labels %v", labels)
	}
	if labels.Name(1) != "class1" {
		t.Fatalf("expected placeholder for missing id, got %q", labels.Name(1))
	}
}

func TestParseLabels_MissingNames(t *testing.T) {
	if _, err := ParseLabels([]byte("nc: 2\n")); err == nil {
		t.Fatalf("expected error when names is missing")
	}
	if _, err := ParseLabels([]byte("names: []\n")); err == nil {
		t.Fatalf("expected error when names is empty")
	}
}

func TestLoadLabels_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(path, []byte("names:\n  - น้ำดื่ม\n  - Cola\n"), 0644); err != nil {
		t.Fatal(err)
	}
	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}
	if labels.Name(0) != "น้ำดื่ม" {
		t.Fatalf("unexpected label %q", labels.Name(0))
	}

	if _, err := LoadLabels(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

// two classes, eight anchors (only the first three non-empty), channels-first
func yoloOutput() ([]float32, []int) {
	const anchors = 8
	rows := [][]float32{
		{100, 300, 50},   // cx
		{100, 200, 50},   // cy
		{40, 60, 10},     // w
		{20, 80, 10},     // h
		{0.9, 0.1, 0.05}, // class 0
		{0.2, 0.8, 0.1},  // class 1
	}
	data := make([]float32, len(rows)*anchors)
	for c, row := range rows {
		copy(data[c*anchors:], row)
	}
	return data, []int{1, len(rows), anchors}
}

func TestDecodeYOLO(t *testing.T) {
	data, shape := yoloOutput()
	dets, err := DecodeYOLO(data, shape, 0.25)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(dets) != 2 {
		t.Fatalf("expected 2 candidates above threshold, got %d", len(dets))
	}

	first := dets[0]
	if first.ClassID != 0 || first.Confidence != float32(0.9) {
		t.Fatalf("unexpected first detection %+v", first)
	}
	if first.Box != (Box{X1: 80, Y1: 90, X2: 120, Y2: 110}) {
		t.Fatalf("unexpected first box %+v", first.Box)
	}
	if dets[1].ClassID != 1 || dets[1].Box.Width() != 60 || dets[1].Box.Height() != 80 {
		t.Fatalf("unexpected second detection %+v", dets[1])
	}
}

func TestDecodeYOLO_Transposed(t *testing.T) {
	data, _ := yoloOutput()
	// rebuild as [1, anchors, channels]
	channels, anchors := 6, 8
	tr := make([]float32, len(data))
	for c := 0; c < channels; c++ {
		for i := 0; i < anchors; i++ {
			tr[i*channels+c] = data[c*anchors+i]
		}
	}
	dets, err := DecodeYOLO(tr, []int{1, anchors, channels}, 0.25)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(dets) != 2 || dets[1].ClassID != 1 {
		t.Fatalf("unexpected detections %+v", dets)
	}
}

func TestDecodeYOLO_NoDetections(t *testing.T) {
	data, shape := yoloOutput()
	dets, err := DecodeYOLO(data, shape, 0.95)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(dets) != 0 {
		t.Fatalf("expected no detections, got %+v", dets)
	}
}

func TestDecodeYOLO_BadShape(t *testing.T) {
	if _, err := DecodeYOLO(make([]float32, 10), []int{1, 10}, 0.25); err == nil {
		t.Fatalf("expected error for 2-d shape")
	}
	if _, err := DecodeYOLO(make([]float32, 4), []int{1, 6, 8}, 0.25); err == nil {
		t.Fatalf("expected error for short data")
	}
}

func TestLetterbox(t *testing.T) {
	lb := NewLetterbox(1280, 640, 640)
	if lb.Scale != 0.5 || lb.Width != 640 || lb.Height != 320 {
		t.Fatalf("unexpected letterbox %+v", lb)
	}
	if lb.Top != 160 || lb.Bottom != 160 || lb.Left != 0 || lb.Right != 0 {
		t.Fatalf("unexpected padding %+v", lb)
	}

	got := lb.Restore(Box{X1: 100, Y1: 160, X2: 700, Y2: 400})
	want := Box{X1: 200, Y1: 0, X2: 1280, Y2: 480}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
