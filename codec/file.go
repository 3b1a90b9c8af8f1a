package codec

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/geoweights/core"
)

// Write dispatches on f.
func Write(w io.Writer, f Format, g *core.Graph, ids IDColumn, layer string) error {
	switch f {
	case GAL:
		return WriteGAL(w, g, ids, layer)
	case GWT:
		return WriteGWT(w, g, ids, layer)
	case KWT:
		return WriteKWT(w, g, ids, layer)
	}

	return fmt.Errorf("Write: %v: %w", f, ErrUnknownFormat)
}

// Read dispatches on f. GWT and KWT share a reader.
func Read(r io.Reader, f Format, ids *IDColumn) (*core.Graph, Header, error) {
	switch f {
	case GAL:
		return ReadGAL(r, ids)
	case GWT, KWT:
		return ReadGWT(r, ids)
	}

	return nil, Header{}, fmt.Errorf("Read: %v: %w", f, ErrUnknownFormat)
}

// Save writes g to path in the format named by its extension.
func Save(path string, g *core.Graph, ids IDColumn, layer string) error {
	f, err := FormatOf(path)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	return SaveAs(path, f, g, ids, layer)
}

// SaveAs writes g to path in format f. On failure the partial file is
// removed; g is never modified.
func SaveAs(path string, f Format, g *core.Graph, ids IDColumn, layer string) (err error) {
	if err := ids.Validate(g.NumObs()); err != nil {
		return fmt.Errorf("SaveAs: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("SaveAs: %v: %w", err, ErrWrite)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("SaveAs: %v: %w", cerr, ErrWrite)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return Write(out, f, g, ids, layer)
}

// Load reads path in the format named by its extension.
func Load(path string, ids *IDColumn) (*core.Graph, Header, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("Load: %w", err)
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("Load: %w", err)
	}
	defer in.Close()

	return Read(in, f, ids)
}
