// Package sniff classifies uploaded byte streams by content, never by the
// client-declared filename or content type.
package sniff

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxTextSize is the upper bound for plain-text attachments (100 KiB).
const MaxTextSize = 100 << 10

// textProbeSize bounds how much of a text file is actually inspected.
// Anything past the probe is accepted unseen; see the package tests.
const textProbeSize = 4096

type Kind int

const (
	Rejected Kind = iota
	Image
	Text
)

// Result is the classification of a stream. Format holds the decoded image
// format name ("jpeg", "png", ...) when Kind == Image, otherwise "".
type Result struct {
	Kind   Kind
	Format string
	Size   int64
}

// Classify inspects the stream and reports whether it is a structurally valid
// image, an acceptable text file, or neither. The read position is restored
// to where it started on every path so the caller can consume the stream
// again.
func Classify(r io.ReadSeeker, filename string) (Result, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		_, _ = r.Seek(start, io.SeekStart)
	}()

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return Result{}, err
	}
	size := end - start

	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return Result{}, err
	}

	// Full decode, not just magic bytes: a truncated or corrupt body must
	// not classify as image.
	if _, format, err := image.Decode(r); err == nil {
		return Result{Kind: Image, Format: format, Size: size}, nil
	}

	if isText(r, start, filename, size) {
		return Result{Kind: Text, Size: size}, nil
	}

	return Result{Kind: Rejected, Size: size}, nil
}

func isText(r io.ReadSeeker, start int64, filename string, size int64) bool {
	if !strings.HasSuffix(strings.ToLower(filename), ".txt") {
		return false
	}
	if size > MaxTextSize {
		return false
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return false
	}

	probe := make([]byte, textProbeSize)
	n, err := io.ReadFull(r, probe)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false
	}
	probe = probe[:n]

	if bytes.IndexByte(probe, 0) >= 0 {
		return false
	}

	for mt := mimetype.Detect(probe); mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return true
		}
	}
	return false
}
