// Package level reads and writes track grids as text files, one glyph per tile.
package level

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/wavetrack/wfc"
)

const (
	DefaultDir = "./levels"
	Extension  = ".txt"
)

var (
	ErrEmptyLevel   = errors.New("level: no rows")
	ErrRaggedLevel  = errors.New("level: rows differ in width")
	ErrUnknownGlyph = errors.New("level: unknown glyph")
)

// ReadLines returns the non-empty lines of the file at path, in order
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open level file %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading level file %s: %w", path, err)
	}
	return lines, nil
}

// Discover returns the level files in dir, skipping hidden files and subdirectories
// A missing directory yields no files and no error
func Discover(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Printf("Level directory '%s' does not exist, no levels discovered", dir)
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasSuffix(name, Extension) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	log.Printf("Discovered %d level file(s) in %s", len(files), dir)
	return files, nil
}

// Parse converts glyph rows into an output grid indexed [y][x]
func Parse(lines []string) ([][]wfc.Tile, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyLevel
	}

	out := make([][]wfc.Tile, len(lines))
	width := -1
	for y, line := range lines {
		row := make([]wfc.Tile, 0, len(line))
		for x, r := range []rune(line) {
			t, ok := wfc.TileFromGlyph(r)
			if !ok {
				return nil, fmt.Errorf("%w %q at (%d,%d)", ErrUnknownGlyph, r, x, y)
			}
			row = append(row, t)
		}
		if width >= 0 && len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrRaggedLevel, y, len(row), width)
		}
		width = len(row)
		out[y] = row
	}
	return out, nil
}

// Load reads and parses a level file
func Load(path string) ([][]wfc.Tile, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	out, err := Parse(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Format renders an output grid as glyph rows
func Format(out [][]wfc.Tile) []string {
	lines := make([]string, len(out))
	for y, row := range out {
		var sb strings.Builder
		for _, t := range row {
			sb.WriteRune(t.Glyph())
		}
		lines[y] = sb.String()
	}
	return lines
}

// Save writes an output grid to path, creating parent directories
func Save(path string, out [][]wfc.Tile) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create level directory: %w", err)
		}
	}
	data := strings.Join(Format(out), "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write level file %s: %w", path, err)
	}
	return nil
}
