package reportfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// blockConfigRelPath is where the block configuration lives relative to
// the working root.
const blockConfigRelPath = "scripts/con/block_config.tcl"

// DesignName resolves the design name from the block configuration
// file under <wardRoot>/<block>/scripts/con/block_config.tcl. The
// design line is the one whose second token is "design"; the name is
// the third whitespace token. An empty result means resolution failed;
// downstream filename patterns then degrade to no-match instead of
// erroring.
func DesignName(wardRoot, block string) (string, error) {
	if wardRoot == "" || block == "" {
		return "", fmt.Errorf("working root or block not set")
	}
	path := filepath.Join(wardRoot, block, blockConfigRelPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read block config %s: %w", path, err)
	}
	for _, line := range SplitLines(data) {
		tokens := strings.Fields(line)
		if len(tokens) >= 3 && tokens[1] == "design" {
			return tokens[2], nil
		}
	}
	return "", fmt.Errorf("no design declaration in %s", path)
}
