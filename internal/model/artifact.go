package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/heartcheck/internal/domain"
	"github.com/kailas-cloud/heartcheck/internal/preprocess"
)

// KindLogisticRegression is the only classifier kind the loader understands.
const KindLogisticRegression = "logistic_regression"

// Bundle is the on-disk artifact: the classifier plus the preprocessing state it was trained with.
type Bundle struct {
	Version       int               `yaml:"version"`
	Name          string            `yaml:"name"`
	Model         Spec              `yaml:"model"`
	Preprocessing preprocess.Params `yaml:"preprocessing"`
}

// Spec describes the serialized classifier.
type Spec struct {
	Kind         string    `yaml:"kind"`
	Classes      []int     `yaml:"classes"`
	Intercept    float64   `yaml:"intercept"`
	Coefficients []float64 `yaml:"coefficients"`
	Threshold    float64   `yaml:"threshold"`
}

// LoadBundle reads and validates an artifact bundle from disk.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	return ParseBundle(data)
}

// ParseBundle decodes and validates an artifact bundle.
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArtifact, err)
	}
	b.ApplyDefaults()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// ApplyDefaults fills empty optional fields.
func (b *Bundle) ApplyDefaults() {
	if b.Model.Threshold == 0 {
		b.Model.Threshold = DefaultThreshold
	}
	if len(b.Model.Classes) == 0 {
		b.Model.Classes = []int{0, 1}
	}
	b.Preprocessing.ApplyDefaults()
}

// Validate checks that the classifier and preprocessing state agree.
func (b *Bundle) Validate() error {
	if b.Version != 1 {
		return fmt.Errorf("%w: unsupported version %d", domain.ErrInvalidArtifact, b.Version)
	}
	if b.Model.Kind != KindLogisticRegression {
		return fmt.Errorf("%w: unsupported model kind %q", domain.ErrInvalidArtifact, b.Model.Kind)
	}
	if len(b.Model.Classes) != 2 {
		return fmt.Errorf("%w: binary classifier needs 2 classes, got %d", domain.ErrInvalidArtifact, len(b.Model.Classes))
	}
	if err := b.Preprocessing.Validate(); err != nil {
		return fmt.Errorf("%w: preprocessing: %v", domain.ErrInvalidArtifact, err)
	}
	if w := b.Preprocessing.Width(); w != len(b.Model.Coefficients) {
		return fmt.Errorf("%w: %d coefficients for %d preprocessed features",
			domain.ErrInvalidArtifact, len(b.Model.Coefficients), w)
	}
	return nil
}

// Classifier builds the classifier described by the bundle.
func (b *Bundle) Classifier() (Classifier, error) {
	return NewLogistic(
		b.Model.Coefficients,
		b.Model.Intercept,
		[2]int{b.Model.Classes[0], b.Model.Classes[1]},
		b.Model.Threshold,
	)
}
