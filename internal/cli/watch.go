package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pet-wellness-timeline/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"
)

const clearScreen = "\033[2J\033[H"

// watchFile llama a render una vez y de nuevo cada vez que path cambia,
// hasta que ctx se cancele. Se observa el directorio porque muchos editores
// guardan con rename y el watch sobre el archivo se pierde.
func watchFile(ctx context.Context, path string, log logger.Logger, render func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	if err := render(); err != nil {
		log.Error("render failed", map[string]any{"file": abs, "error": err})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			log.Debug("snapshot changed", map[string]any{"file": abs, "op": ev.Op.String()})
			if err := render(); err != nil {
				// un guardado a medio escribir no debe cortar el watch
				log.Error("render failed", map[string]any{"file": abs, "error": err})
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", map[string]any{"error": err})
		}
	}
}

// isTerminal indica si w es una TTY; solo ahí tiene sentido limpiar pantalla.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
