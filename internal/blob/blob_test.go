package blob

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	want := []byte{0x00, 0x7F, 0x80, 0xFF, '\n', 0}
	got, err := ReadFile(writeFile(t, "a.bin", want))
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadFile() = %v, want %v", got, want)
	}
}

func TestReadFile_Empty(t *testing.T) {
	got, err := ReadFile(writeFile(t, "empty.bin", nil))
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ReadFile() = %v, want empty non-nil slice", got)
	}
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "missing.bin"), ErrStat},
		{"directory", dir, ErrRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadFile() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadExact(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	tests := []struct {
		name string
		r    io.Reader
		size int64
		want error
	}{
		{"full", bytes.NewReader(data), 10, nil},
		{"zero size", iotest.ErrReader(errors.New("must not be read")), 0, nil},
		{"short read", iotest.HalfReader(bytes.NewReader(data)), 10, ErrRead},
		{"one byte at a time", iotest.OneByteReader(bytes.NewReader(data)), 10, ErrRead},
		{"file shrank", bytes.NewReader(data[:4]), 10, ErrRead},
		{"read error", iotest.ErrReader(errors.New("io failure")), 10, ErrRead},
		{"negative size", bytes.NewReader(data), -1, ErrAlloc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readExact(tt.r, tt.size)
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Errorf("readExact() error = %v, want %v", err, tt.want)
				}
				return
			}
			if err != nil {
				t.Fatalf("readExact() unexpected error: %v", err)
			}
			if int64(len(got)) != tt.size || !bytes.Equal(got, data[:tt.size]) {
				t.Errorf("readExact() = % X", got)
			}
		})
	}
}

func TestCheckSize(t *testing.T) {
	if err := checkSize(0); err != nil {
		t.Errorf("checkSize(0) = %v", err)
	}
	if err := checkSize(1 << 20); err != nil {
		t.Errorf("checkSize(1MiB) = %v", err)
	}
	if err := checkSize(-1); !errors.Is(err, ErrAlloc) {
		t.Errorf("checkSize(-1) = %v, want ErrAlloc", err)
	}
}

const sampleHex = ":04010000DEADBEEFC3\n" +
	":020106000102F4\n" +
	":00000001FF\n"

func TestReadIntelHex(t *testing.T) {
	path := writeFile(t, "fw.hex", []byte(sampleHex))

	tests := []struct {
		name string
		fill byte
		want []byte
	}{
		{"fill FF", 0xFF, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0xFF, 0xFF, 0x01, 0x02}},
		{"fill 00", 0x00, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x00, 0x01, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadIntelHex(path, tt.fill)
			if err != nil {
				t.Fatalf("ReadIntelHex() unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ReadIntelHex() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestReadIntelHex_NoData(t *testing.T) {
	got, err := ReadIntelHex(writeFile(t, "eof.hex", []byte(":00000001FF\n")), 0xFF)
	if err != nil {
		t.Fatalf("ReadIntelHex() unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadIntelHex() = % X, want empty", got)
	}
}

func TestReadIntelHex_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadIntelHex(filepath.Join(dir, "missing.hex"), 0); !errors.Is(err, ErrStat) {
		t.Errorf("missing file: error = %v, want ErrStat", err)
	}

	bad := writeFile(t, "bad.hex", []byte(":04010000DEADBEEF00\n:00000001FF\n"))
	if _, err := ReadIntelHex(bad, 0); !errors.Is(err, ErrFormat) {
		t.Errorf("bad checksum: error = %v, want ErrFormat", err)
	}
}
