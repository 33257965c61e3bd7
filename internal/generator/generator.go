// Package generator renders a blob as a C array declaration and a size
// constant.
package generator

import (
	"bytes"
	"io"
	"strings"
)

const (
	// BasenamePrefix is prepended to the input path when deriving an identifier.
	BasenamePrefix = "_blob_"
	// LineLen is the number of byte literals emitted per array line.
	LineLen = 8
	// perByte is the width of one "0xHH, " literal.
	perByte = 6

	// DefaultType is the array element type.
	DefaultType = "const char"
	// DefaultSizeType is the type of the size constant.
	DefaultSizeType = "size_t"
	// DefaultPrefix is emitted before the array declaration.
	DefaultPrefix = "#include <stddef.h>\n"
)

const hexChars = "0123456789ABCDEF"

var identReplacer = strings.NewReplacer("/", "_", ".", "_")

// Options controls the text surrounding the byte literals.
type Options struct {
	// Type is the element type of the array, e.g. "const unsigned char".
	Type string
	// SizeType is the type of the size constant, e.g. "size_t".
	SizeType string
	// Prefix is emitted verbatim, followed by a newline, before the array.
	Prefix string
	// Basename is the stem of the generated symbols.
	Basename string
}

// DefaultOptions returns the options used when nothing is overridden, with
// the identifier derived from path.
func DefaultOptions(path string) Options {
	return Options{
		Type:     DefaultType,
		SizeType: DefaultSizeType,
		Prefix:   DefaultPrefix,
		Basename: Identifier(path),
	}
}

// Identifier derives a symbol stem from the input path.
// Every "/" and "." in BasenamePrefix+path becomes "_"; nothing else changes.
func Identifier(path string) string {
	return identReplacer.Replace(BasenamePrefix + path)
}

// HexLines formats data as lines of at most LineLen "0xHH, " literals.
// The trailing ", " of each line is kept.
func HexLines(data []byte) []string {
	lines := make([]string, 0, (len(data)+LineLen-1)/LineLen)
	for pos := 0; pos < len(data); pos += LineLen {
		end := min(pos+LineLen, len(data))
		line := make([]byte, 0, (end-pos)*perByte)
		for _, b := range data[pos:end] {
			line = append(line, '0', 'x', hexChars[b>>4], hexChars[b&0x0F], ',', ' ')
		}
		lines = append(lines, string(line))
	}
	return lines
}

type blobData struct {
	Prefix   string
	Type     string
	SizeType string
	Basename string
	Lines    []string
	Size     uint64
}

// Render writes the array and size declarations for data to w.
// The output is built in memory first; w receives a single write, or nothing
// if rendering fails.
//
// Parameters:
//   - w: Destination of the generated source text.
//   - data: The blob contents.
//   - opts: Type strings, prefix and identifier.
//
// Returns:
//   - error: An error if the template fails or the write fails.
func Render(w io.Writer, data []byte, opts Options) error {
	var buf bytes.Buffer
	buf.Grow(len(data)*perByte + len(data)/LineLen*5 + 256)

	d := blobData{
		Prefix:   opts.Prefix,
		Type:     opts.Type,
		SizeType: opts.SizeType,
		Basename: opts.Basename,
		Lines:    HexLines(data),
		Size:     uint64(len(data)),
	}
	if err := executeTemplate("blob.c.tmpl", &buf, d); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}
