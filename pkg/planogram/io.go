package planogram

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

// Format is a planogram file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported planogram file %q (want .toml or .json)", path)
}

// ReadTOML decodes and normalizes a TOML planogram.
func ReadTOML(r io.Reader) (*Planogram, error) {
	var p Planogram
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode planogram toml")
	}
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return &p, nil
}

// WriteTOML encodes p as TOML.
func WriteTOML(w io.Writer, p *Planogram) error {
	if err := toml.NewEncoder(w).Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode planogram toml")
	}
	return nil
}

// ReadJSON decodes and normalizes a JSON planogram.
func ReadJSON(r io.Reader) (*Planogram, error) {
	var p Planogram
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode planogram json")
	}
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return &p, nil
}

// WriteJSON encodes p as indented JSON.
func WriteJSON(w io.Writer, p *Planogram) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode planogram json")
	}
	return nil
}

// Read decodes a planogram in the given format.
func Read(r io.Reader, f Format) (*Planogram, error) {
	switch f {
	case FormatTOML:
		return ReadTOML(r)
	case FormatJSON:
		return ReadJSON(r)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", f)
}

// Write encodes a planogram in the given format.
func Write(w io.Writer, p *Planogram, f Format) error {
	switch f {
	case FormatTOML:
		return WriteTOML(w, p)
	case FormatJSON:
		return WriteJSON(w, p)
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported format %q", f)
}

// ReadFile reads a planogram, choosing the format from the extension.
func ReadFile(path string) (*Planogram, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read planogram")
	}
	return Read(bytes.NewReader(data), f)
}

// WriteFile writes a planogram, choosing the format from the extension.
func WriteFile(path string, p *Planogram) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, p, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write planogram")
	}
	return nil
}
