package checker

import (
	"context"

	"github.com/wichananm65/image-price-checker/internal/detection"
	"github.com/wichananm65/image-price-checker/internal/price"
)

// PriceLookup reports the price of a product label, if one is available.
type PriceLookup interface {
	GetPrice(ctx context.Context, name string) (price.Price, bool)
}

// Result is what one uploaded image produced.
type Result struct {
	Detections []detection.Detection
	Items      []price.PricedItem
}

// Found reports whether at least one detected product had a price.
func (r Result) Found() bool { return len(r.Items) > 0 }

type Service struct {
	detector detection.Detector
	prices   PriceLookup
}

func NewService(detector detection.Detector, prices PriceLookup) *Service {
	return &Service{detector: detector, prices: prices}
}

// Check detects products in the image at imagePath and resolves a price for
// each detection, in detection order. Detections without a price are left out.
func (s *Service) Check(ctx context.Context, imagePath string) (Result, error) {
	dets, err := s.detector.Detect(imagePath)
	if err != nil {
		return Result{}, err
	}

	items := make([]price.PricedItem, 0, len(dets))
	for _, d := range dets {
		p, ok := s.prices.GetPrice(ctx, d.Label)
		if !ok {
			continue
		}
		items = append(items, price.PricedItem{Product: d.Label, Price: p})
	}
	return Result{Detections: dets, Items: items}, nil
}
