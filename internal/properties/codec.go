package properties

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/magiconair/properties"
)

// Encoding selects the character encoding of a properties file.
type Encoding = properties.Encoding

const (
	// UTF8 reads and writes files as UTF-8.
	UTF8 = properties.UTF8
	// Latin1 reads and writes files as ISO-8859-1, non-Latin-1 runes are
	// written as \uXXXX escapes.
	Latin1 = properties.ISO_8859_1
)

// ParseEncoding maps an encoding name to an Encoding. The empty string means
// UTF-8.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return Latin1, nil
	default:
		return UTF8, fmt.Errorf("unsupported encoding %q", name)
	}
}

// Decode parses data in properties format. Placeholders are not expanded.
// Duplicate keys keep the last value. A malformed document yields an error and
// no entries.
func Decode(data []byte, enc Encoding) (Map, error) {
	loader := &properties.Loader{Encoding: enc, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}
	return Map(p.Map()), nil
}

// Read decodes the whole of r.
func Read(r io.Reader, enc Encoding) (Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, enc)
}

// ReadFile opens path, decodes it and closes it again on every path.
func ReadFile(path string, enc Encoding) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Read(f, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadFS is ReadFile for a file inside fsys.
func ReadFS(fsys fs.FS, name string, enc Encoding) (Map, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Read(f, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Encode writes m to w in properties format, one "key = value" line per entry
// in key order. Special characters are escaped so that Decode returns m.
func Encode(w io.Writer, m Map, enc Encoding) error {
	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, k := range m.Keys() {
		if _, _, err := p.Set(k, m[k]); err != nil {
			return fmt.Errorf("failed to encode %q: %w", k, err)
		}
	}
	if _, err := p.Write(w, enc); err != nil {
		return fmt.Errorf("failed to write properties: %w", err)
	}
	return nil
}
