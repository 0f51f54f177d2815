// Package fs reads render inputs and writes results back safely.
package fs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/antimoji/emojify/internal/types"
)

// sniffSize is how much of the input LooksLikeText inspects.
const sniffSize = 1024

// ReadFile reads the entire contents of a file.
func ReadFile(path string) types.Result[[]byte] {
	data, err := os.ReadFile(path) // #nosec G304 - paths come from the command line
	if err != nil {
		return types.Err[[]byte](err)
	}
	return types.Ok(data)
}

// ReadAll reads r to the end, refusing more than limit bytes when limit > 0.
func ReadAll(r io.Reader, limit int64) types.Result[[]byte] {
	if limit <= 0 {
		data, err := io.ReadAll(r)
		return types.TryFrom(data, err)
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return types.Err[[]byte](err)
	}
	if int64(len(data)) > limit {
		return types.Err[[]byte](fmt.Errorf("input exceeds %d bytes", limit))
	}
	return types.Ok(data)
}

// LooksLikeText reports whether the start of data looks like text rather
// than a binary format.
func LooksLikeText(data []byte) bool {
	if len(data) > sniffSize {
		return IsTextContent(data[:sniffSize], true)
	}
	return IsTextContent(data, false)
}

// IsTextContent applies the text heuristics to a sample. When truncated is
// set, a multi-byte sequence cut off at the end of the sample is tolerated.
func IsTextContent(data []byte, truncated bool) bool {
	if len(data) == 0 {
		return true
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}

	if truncated {
		data = trimPartialRune(data)
	}
	if !utf8.Valid(data) {
		return false
	}

	control := 0
	for _, b := range data {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			control++
		}
	}

	// more than 30% control bytes means binary
	return control*10 <= len(data)*3
}

// trimPartialRune drops an incomplete UTF-8 sequence from the end of data.
func trimPartialRune(data []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(data); i++ {
		b := data[len(data)-i]
		if !utf8.RuneStart(b) {
			continue
		}
		if !utf8.FullRune(data[len(data)-i:]) {
			return data[:len(data)-i]
		}
		break
	}
	return data
}
