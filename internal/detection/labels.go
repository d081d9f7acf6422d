package detection

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Labels maps model class indices to product names.
type Labels map[int]string

// Name returns the label for id, or a placeholder for ids the mapping lacks.
func (l Labels) Name(id int) string {
	if name, ok := l[id]; ok {
		return name
	}
	return fmt.Sprintf("class%d", id)
}

type datasetFile struct {
	Names yaml.Node `yaml:"names"`
}

// LoadLabels reads the `names:` entry of an Ultralytics dataset YAML file.
// Both the list form and the index-to-name map form are accepted.
func LoadLabels(path string) (Labels, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels file: %w", err)
	}
	return ParseLabels(b)
}

func ParseLabels(b []byte) (Labels, error) {
	var f datasetFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}

	labels := Labels{}
	switch f.Names.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := f.Names.Decode(&names); err != nil {
			return nil, fmt.Errorf("decode label list: %w", err)
		}
		for i, n := range names {
			labels[i] = n
		}
	case yaml.MappingNode:
		var names map[int]string
		if err := f.Names.Decode(&names); err != nil {
			return nil, fmt.Errorf("decode label map: %w", err)
		}
		for i, n := range names {
			labels[i] = n
		}
	default:
		return nil, errors.New("labels file has no names entry")
	}

	if len(labels) == 0 {
		return nil, errors.New("labels file has an empty names entry")
	}
	return labels, nil
}
