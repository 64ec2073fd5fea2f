package cli

import (
	"os"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/seitarof/sk-gen/internal/layout"
)

// ScriptsPathDepth reads the class path depth of overlay from a project ini
// file. Lines look like "Overlay3=-Project-Generated-C++|Generated|2", where a
// leading '-' marks a read-only overlay. The second result is false, and the
// depth is layout.DefaultDepth, when the file is unreadable or holds no
// positive depth for overlay.
func ScriptsPathDepth(iniPath, overlay string) (int, bool) {
	data, err := os.ReadFile(iniPath)
	if err != nil {
		return layout.DefaultDepth, false
	}
	re := regexp.MustCompile(`Overlay[0-9]+=-?` + regexp.QuoteMeta(overlay) + `\|.*?\|([0-9]+)`)
	m := re.FindSubmatch(data)
	if m == nil {
		return layout.DefaultDepth, false
	}
	depth, err := strconv.Atoi(string(m[1]))
	if err != nil || depth <= 0 {
		return layout.DefaultDepth, false
	}
	return depth, true
}

// resolveDepth picks the explicit --depth, then the ini depth, then the
// default.
func resolveDepth(cfg *Config, logger zerolog.Logger) int {
	if cfg.Depth > 0 {
		return cfg.Depth
	}
	if cfg.ProjectIni == "" {
		return layout.DefaultDepth
	}
	depth, ok := ScriptsPathDepth(cfg.ProjectIni, cfg.Overlay)
	if !ok {
		logger.Warn().
			Str("ini", cfg.ProjectIni).
			Str("overlay", cfg.Overlay).
			Int("depth", depth).
			Msg("overlay depth not found, using default")
	}
	return depth
}
