package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// outputPath builds a collision-free output filename under dir.
func outputPath(dir, prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return filepath.Join(dir, fmt.Sprintf("%s%s.png", prefix, suffix))
}

// sweepOutputs deletes rendered files older than maxAge. Purely best
// effort: concurrent renders may sweep the same directory at once, so
// failures (including files already gone) are swallowed.
func sweepOutputs(dir, prefix string, maxAge time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	now := time.Now()
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil && !os.IsNotExist(err) {
				log.Debug().Err(err).Str("file", e.Name()).Msg("output sweep skipped a file")
			}
		}
	}
}
