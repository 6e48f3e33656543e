package adapter

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "compaug.dev/pkg/compaug/internal/model"
)

// AnnotationFormat selects the sidecar serialization.
type AnnotationFormat string

// Supported annotation formats.
const (
	AnnotationXML  AnnotationFormat = "xml"
	AnnotationYAML AnnotationFormat = "yaml"
)

const imageDepth = 3

// AnnotationStore writes the sidecar annotation describing where a
// component was placed on a generated image.
type AnnotationStore interface {
	Write(ctx context.Context, image m.Path, label string, placement m.Placement) (m.Path, error)
}

// Annotation is the Pascal-VOC shaped record stored next to each image.
type Annotation struct {
	XMLName   xml.Name         `xml:"annotation" yaml:"-"`
	Folder    string           `xml:"folder" yaml:"folder"`
	Filename  string           `xml:"filename" yaml:"filename"`
	Path      string           `xml:"path" yaml:"path"`
	Source    AnnotationSource `xml:"source" yaml:"source"`
	Size      AnnotationSize   `xml:"size" yaml:"size"`
	Segmented int              `xml:"segmented" yaml:"segmented"`
	Object    AnnotationObject `xml:"object" yaml:"object"`
}

// AnnotationSource names the dataset the image belongs to.
type AnnotationSource struct {
	Database string `xml:"database" yaml:"database"`
}

// AnnotationSize is the placed component size plus channel depth.
type AnnotationSize struct {
	m.Size `yaml:",inline"`
	Depth  int `xml:"depth" yaml:"depth"`
}

// AnnotationObject is the labelled bounding box.
type AnnotationObject struct {
	Name      string `xml:"name" yaml:"name"`
	Pose      string `xml:"pose" yaml:"pose"`
	Truncated int    `xml:"truncated" yaml:"truncated"`
	Difficult int    `xml:"difficult" yaml:"difficult"`
	Box       m.Box  `xml:"bndbox" yaml:"bndbox"`
}

// LocalAnnotationStore writes annotations to the filesystem.
type LocalAnnotationStore struct {
	format AnnotationFormat
}

// NewAnnotationStore returns a store writing the given format.
func NewAnnotationStore(format string) (*LocalAnnotationStore, error) {
	f := AnnotationFormat(strings.ToLower(strings.TrimSpace(format)))
	if f == "" {
		f = AnnotationXML
	}

	if f != AnnotationXML && f != AnnotationYAML {
		return nil, fmt.Errorf("unknown annotation format %q (want xml or yaml)", format)
	}

	return &LocalAnnotationStore{format: f}, nil
}

// NewAnnotation builds the record for image without writing it.
func NewAnnotation(image m.Path, label string, placement m.Placement) Annotation {
	abs, err := filepath.Abs(string(image))
	if err != nil {
		abs = string(image)
	}

	return Annotation{
		Folder:   filepath.Base(filepath.Dir(abs)),
		Filename: filepath.Base(abs),
		Path:     abs,
		Source:   AnnotationSource{Database: "Unknown"},
		Size:     AnnotationSize{Size: placement.Size, Depth: imageDepth},
		Object: AnnotationObject{
			Name: label,
			Pose: "Unspecified",
			Box:  placement.Box,
		},
	}
}

// SidecarPath returns the annotation path for image in the given format.
func SidecarPath(image m.Path, format AnnotationFormat) m.Path {
	p := string(image)
	return m.Path(strings.TrimSuffix(p, filepath.Ext(p)) + "." + string(format))
}

// Write implements AnnotationStore.
func (s *LocalAnnotationStore) Write(ctx context.Context, image m.Path, label string, placement m.Placement) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	annotation := NewAnnotation(image, label, placement)

	var (
		data []byte
		err  error
	)

	switch s.format {
	case AnnotationYAML:
		data, err = yaml.Marshal(annotation)
	default:
		data, err = xml.MarshalIndent(annotation, "", "    ")
		if err == nil {
			data = append([]byte(xml.Header), append(data, '\n')...)
		}
	}

	if err != nil {
		return "", fmt.Errorf("marshal annotation for %s: %w", image, err)
	}

	target := SidecarPath(image, s.format)
	if err := os.WriteFile(string(target), data, 0o600); err != nil {
		return "", fmt.Errorf("write annotation %s: %w", target, err)
	}

	return target, nil
}
