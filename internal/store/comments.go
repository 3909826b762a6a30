package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/commentguard/internal/moderate"
)

// LoadComments reads the input comment collection from a JSON file.
// An unreadable or malformed file is fatal: the run must abort before
// any comment is processed.
func LoadComments(path string) ([]moderate.Comment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read comments file %s: %w", path, err)
	}

	var comments []moderate.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("decode comments file %s: %w", path, err)
	}

	return comments, nil
}

// SaveAnnotated writes the annotated collection to a JSON file, indented,
// in the same order the comments were loaded.
func SaveAnnotated(path string, comments []moderate.AnnotatedComment) error {
	data, err := json.MarshalIndent(comments, "", "    ")
	if err != nil {
		return fmt.Errorf("encode annotated comments: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write annotated comments to %s: %w", path, err)
	}

	return nil
}

// LoadAnnotated reads a previously saved annotated collection, for
// re-summarizing without re-classifying.
func LoadAnnotated(path string) ([]moderate.AnnotatedComment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read annotated file %s: %w", path, err)
	}

	var comments []moderate.AnnotatedComment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("decode annotated file %s: %w", path, err)
	}

	return comments, nil
}
