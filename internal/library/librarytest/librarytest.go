// Package librarytest writes small FLAC files for tests.
package librarytest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// Frames are the audio bytes appended to every file written by WriteFLAC
var Frames = []byte{0xff, 0xf8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03, 0x04}

// WriteFLAC writes a minimal FLAC file: a zeroed STREAMINFO block, a Vorbis
// comment block with the given KEY=value comments and Frames.
func WriteFLAC(t testing.TB, path string, comments ...string) {
	t.Helper()

	comment := flacvorbis.New()
	comment.Comments = append(comment.Comments, comments...)
	vorbis := comment.Marshal()

	var buf bytes.Buffer
	buf.WriteString("fLaC")
	writeBlock(&buf, byte(flac.StreamInfo), make([]byte, 34), false)
	writeBlock(&buf, byte(flac.VorbisComment), vorbis.Data, true)
	buf.Write(Frames)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeBlock(buf *bytes.Buffer, blockType byte, data []byte, last bool) {
	header := blockType
	if last {
		header |= 0x80
	}
	buf.WriteByte(header)
	buf.Write([]byte{byte(len(data) >> 16), byte(len(data) >> 8), byte(len(data))})
	buf.Write(data)
}
