package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"pet-wellness-timeline/internal/domain/timeline"

	"github.com/bytedance/sonic"
)

var ErrNoSnapshot = errors.New("snapshot file is required")

// LoadSnapshot lee un archivo JSON con las nueve colecciones + plan de nutrición.
// Un archivo vacío es un snapshot vacío.
func LoadSnapshot(path string) (timeline.Sources, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return timeline.Sources{}, ErrNoSnapshot
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return timeline.Sources{}, fmt.Errorf("read snapshot: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return timeline.Sources{}, nil
	}

	var src timeline.Sources
	if err := sonic.Unmarshal(raw, &src); err != nil {
		return timeline.Sources{}, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return src, nil
}
