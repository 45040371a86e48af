// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/loudplayer/audio"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	samples    []int16 // interleaved stereo
	offset     int     // in samples
	length     int64   // bytes, -1 when unknown
	chunk      int     // max bytes per Read, 0 for unlimited
	fail       error
}

func newMock(sampleRate int, samples []int16) *mockMP3Reader {
	return &mockMP3Reader{
		sampleRate: sampleRate,
		samples:    samples,
		length:     int64(len(samples) * 2),
	}
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }
func (m *mockMP3Reader) Length() int64   { return m.length }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.fail != nil {
		return 0, m.fail
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	size := len(buf)
	if m.chunk > 0 {
		size = min(size, m.chunk)
	}
	count := min(size/2, len(m.samples)-m.offset)

	for i := range count {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(m.samples[m.offset+i]))
	}
	m.offset += count

	return count * 2, nil
}

func (m *mockMP3Reader) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, errors.New("mock only supports io.SeekStart")
	}
	m.offset = int(offset / 2)

	return offset, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not an mp3 stream at all"))); err == nil {
		t.Error("Decode() error = nil, want error")
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(newMock(44100, make([]int16, 20)))

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.Frames() != 10 {
		t.Errorf("Frames() = %d, want 10", src.Frames())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadSamples_Conversion(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 1}
	src := newSource(newMock(44100, samples))

	buf := make([]float32, 6)
	n, err := src.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 6 {
		t.Fatalf("ReadSamples() n = %d, want 6", n)
	}

	for i, s := range samples {
		if want := float32(s) / 32768; buf[i] != want {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want)
		}
	}
}

func TestSource_ReadSamples_ShortReads(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 100)
	for i := range samples {
		samples[i] = int16(i)
	}
	mock := newMock(44100, samples)
	mock.chunk = 6 // the decoder hands back at most three samples per call
	src := newSource(mock)

	buf := make([]float32, 40)
	n, err := src.ReadSamples(buf)
	if err != nil || n != 40 {
		t.Fatalf("ReadSamples() = (%d, %v), want (40, nil)", n, err)
	}
	if want := float32(39) / 32768; buf[39] != want {
		t.Errorf("buf[39] = %v, want %v", buf[39], want)
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newSource(newMock(44100, make([]int16, 10)))
	buf := make([]float32, 16)

	n, err := src.ReadSamples(buf)
	if n != 10 || err != io.EOF {
		t.Fatalf("first read = (%d, %v), want (10, EOF)", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("second read = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt frame")
	mock := newMock(44100, make([]int16, 10))
	mock.fail = boom

	if _, err := newSource(mock).ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_SeekFrame(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 40)
	for i := range samples {
		samples[i] = int16(i / 2 * 1000)
	}
	src := newSource(newMock(44100, samples))

	if err := src.SeekFrame(15); err != nil {
		t.Fatalf("SeekFrame() error = %v", err)
	}

	buf := make([]float32, 2)
	if _, err := src.ReadSamples(buf); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if want := float32(15000) / 32768; buf[0] != want || buf[1] != want {
		t.Errorf("frame after seek = %v, want [%v %v]", buf, want, want)
	}
}

func TestSource_UnknownLength(t *testing.T) {
	t.Parallel()

	mock := newMock(44100, make([]int16, 10))
	mock.length = -1
	src := newSource(mock)

	if src.Frames() != -1 {
		t.Errorf("Frames() = %d, want -1", src.Frames())
	}
	if err := src.SeekFrame(1); !errors.Is(err, audio.ErrNotSeekable) {
		t.Errorf("SeekFrame() error = %v, want ErrNotSeekable", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	mock := newMock(44100, make([]int16, 1<<16))
	src := newSource(mock)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for range b.N {
		if _, err := src.ReadSamples(buf); err != nil {
			mock.offset = 0
		}
	}
}
