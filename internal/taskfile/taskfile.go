// Package taskfile reads and writes task lists in YAML or JSON form for the
// command-line client.
//
// A task file is either a bare list of tasks or a document with a top-level
// "tasks" key, matching the HTTP request body.
package taskfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format identifies a serialization format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for file extensions and format names
// other than YAML and JSON.
var ErrUnsupportedFormat = errors.New("unsupported format")

// document is the keyed form of a task file.
type document struct {
	Tasks []domain.Task `json:"tasks" yaml:"tasks"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and validates the task file at path.
func Load(path string) ([]domain.Task, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task file: %w", err)
	}
	defer f.Close()

	tasks, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file %s: %w", path, err)
	}
	return tasks, nil
}

// Decode reads tasks in the given format and validates them.
func Decode(r io.Reader, format Format) ([]domain.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	switch format {
	case FormatJSON:
		tasks, err = decodeJSON(data)
	case FormatYAML:
		tasks, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func decodeJSON(data []byte) ([]domain.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tasks []domain.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err)
		}
		return tasks, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err)
	}
	return doc.Tasks, nil
}

func decodeYAML(data []byte) ([]domain.Task, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err)
	}
	// Empty document
	if len(root.Content) == 0 {
		return []domain.Task{}, nil
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var tasks []domain.Task
		if err := node.Decode(&tasks); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err)
		}
		return tasks, nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err)
		}
		return doc.Tasks, nil
	default:
		return nil, fmt.Errorf("%w: expected a list of tasks or a tasks key (line %d)", domain.ErrInvalidFormat, node.Line)
	}
}

// Validate checks the optional numeric fields that are present. Missing
// fields are left for the scorer to default.
func Validate(tasks []domain.Task) error {
	var errs []error
	for i, task := range tasks {
		prefix := fmt.Sprintf("task %d", i)
		if task.Importance != nil && (*task.Importance < 1 || *task.Importance > 10) {
			errs = append(errs, domain.NewValidationError(prefix+".importance",
				fmt.Sprintf("must be between 1 and 10, got %d", *task.Importance), nil))
		}
		if task.EstimatedHours != nil && *task.EstimatedHours <= 0 {
			errs = append(errs, domain.NewValidationError(prefix+".estimated_hours",
				"must be greater than 0", nil))
		}
		for j, dep := range task.Dependencies {
			if strings.TrimSpace(dep) == "" {
				errs = append(errs, domain.NewValidationError(
					fmt.Sprintf("%s.dependencies[%d]", prefix, j), "must not be blank", nil))
			}
		}
	}
	return errors.Join(errs...)
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
