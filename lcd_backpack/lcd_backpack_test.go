package lcd_backpack

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"gotest.tools/assert"
)

// fakeBus records every frame written to the expander so tests can check
// the bit-level protocol
type fakeBus struct {
	frames    []byte
	failAfter int // fail the Nth write from now; -1 never fails
	closes    int
}

func newFakeBus() *fakeBus {
	return &fakeBus{failAfter: -1}
}

func (fb *fakeBus) WriteByte(single byte) (int, error) {
	if fb.failAfter == 0 {
		return 0, fmt.Errorf("nack")
	}
	if fb.failAfter > 0 {
		fb.failAfter--
	}
	fb.frames = append(fb.frames, single)
	return 1, nil
}

func (fb *fakeBus) Close() error {
	fb.closes++
	return nil
}

func (fb *fakeBus) reset() {
	fb.frames = nil
}

func setup(t *testing.T) (*Lcd, *fakeBus) {
	fb := newFakeBus()
	display, err := open(fb, false)
	assert.NilError(t, err)
	fb.reset()
	return display, fb
}

// nibbles validates the enable-pulse framing (three frames per nibble, EN
// set only on the middle one, data and mode bits identical across all
// three) and returns the data nibble of each pulse
func nibbles(t *testing.T, frames []byte) []byte {
	assert.Equal(t, len(frames)%3, 0, "frame count must be a multiple of 3")
	var out []byte
	for i := 0; i < len(frames); i += 3 {
		lo1, hi, lo2 := frames[i], frames[i+1], frames[i+2]
		assert.Equal(t, lo1&enableBit, byte(0), "first frame must have EN clear")
		assert.Equal(t, hi&enableBit, enableBit, "middle frame must have EN set")
		assert.Equal(t, lo2&enableBit, byte(0), "last frame must have EN clear")
		assert.Equal(t, lo1, lo2, "frames around the pulse must match")
		assert.Equal(t, hi&^enableBit, lo1, "pulse frame may only differ by EN")
		out = append(out, lo1>>4)
	}
	return out
}

func TestEncodeChar(t *testing.T) {
	// the mapped range is ASCII-aligned
	for c := byte(' '); c <= '}'; c++ {
		if c == '\\' {
			continue
		}
		assert.Equal(t, encodeChar(c), c, "char %c", c)
	}
	// everything else is a question mark
	for _, c := range []byte{0x00, 0x1F, '\\', 0x7E, 0x7F, 0x80, 0xFF} {
		assert.Equal(t, encodeChar(c), byte(glyphUnknown), "char 0x%02x", c)
	}
}

func TestInitSequence(t *testing.T) {
	fb := newFakeBus()
	_, err := open(fb, false)
	assert.NilError(t, err)

	nibs := nibbles(t, fb.frames)
	// 4-bit function set nibbles, then display off, clear, entry mode,
	// display on as full command bytes, then the 15-char test message
	assert.Equal(t, len(nibs), 2+4*2+15*2)
	assert.Equal(t, nibs[0], byte(0x2))
	assert.Equal(t, nibs[1], byte(0x8))
	for i, cmd := range []byte{cmdDisplayOff, cmdClearDisplay, cmdEntryMode, cmdDisplayOn} {
		assert.Equal(t, nibs[2+i*2], cmd>>4)
		assert.Equal(t, nibs[3+i*2], cmd&0x0F)
	}
	// the bring-up itself runs with the backlight off and in command mode
	for _, f := range fb.frames[:30] {
		assert.Equal(t, f&backlightBit, byte(0))
		assert.Equal(t, f&regSelectBit, byte(0))
		assert.Equal(t, f&rdwrBit, byte(0))
	}
	// the test message is character data with the backlight on
	for _, f := range fb.frames[30:] {
		assert.Equal(t, f&backlightBit, byte(backlightBit))
		assert.Equal(t, f&regSelectBit, byte(regSelectBit))
	}
}

func TestCommandFraming(t *testing.T) {
	display, fb := setup(t)

	assert.NilError(t, display.Command(0xA5))
	nibs := nibbles(t, fb.frames)
	assert.Equal(t, len(nibs), 2)
	assert.Equal(t, nibs[0], byte(0xA), "high nibble goes first")
	assert.Equal(t, nibs[1], byte(0x5))
	for _, f := range fb.frames {
		assert.Equal(t, f&regSelectBit, byte(0), "commands target the command register")
		assert.Equal(t, f&backlightBit, byte(backlightBit), "backlight set after init")
	}
}

func TestPrintEmpty(t *testing.T) {
	display, fb := setup(t)
	assert.NilError(t, display.Print(""))
	assert.Equal(t, len(fb.frames), 0)
}

func TestPrintOneChar(t *testing.T) {
	display, fb := setup(t)
	assert.NilError(t, display.Print("A"))
	nibs := nibbles(t, fb.frames)
	assert.Equal(t, len(nibs), 2)
	assert.Equal(t, nibs[0], byte(0x4))
	assert.Equal(t, nibs[1], byte(0x1))
	for _, f := range fb.frames {
		assert.Equal(t, f&regSelectBit, byte(regSelectBit), "characters target the data register")
	}
}

func TestPrintUnknownChar(t *testing.T) {
	display, fb := setup(t)
	assert.NilError(t, display.Print("\x01"))
	nibs := nibbles(t, fb.frames)
	assert.Equal(t, nibs[0], byte(0x3))
	assert.Equal(t, nibs[1], byte(0xF))
}

func TestClearAndHome(t *testing.T) {
	display, fb := setup(t)

	assert.NilError(t, display.Clear())
	nibs := nibbles(t, fb.frames)
	assert.Equal(t, nibs[0], byte(0x0))
	assert.Equal(t, nibs[1], byte(cmdClearDisplay))

	fb.reset()
	assert.NilError(t, display.Home())
	nibs = nibbles(t, fb.frames)
	assert.Equal(t, nibs[0], byte(0x0))
	assert.Equal(t, nibs[1], byte(cmdReturnHome))
}

func TestGoTo(t *testing.T) {
	display, fb := setup(t)

	// row 1 col 3 -> DDRAM address 0x43
	assert.NilError(t, display.GoTo(1, 3))
	nibs := nibbles(t, fb.frames)
	assert.Equal(t, nibs[0], byte(0xC))
	assert.Equal(t, nibs[1], byte(0x3))

	fb.reset()
	assert.NilError(t, display.GoTo(0, 0))
	nibs = nibbles(t, fb.frames)
	assert.Equal(t, nibs[0], byte(0x8))
	assert.Equal(t, nibs[1], byte(0x0))

	assert.ErrorContains(t, display.GoTo(2, 0), "out of range")
	assert.ErrorContains(t, display.GoTo(0, 16), "out of range")
	assert.ErrorContains(t, display.GoTo(-1, 0), "out of range")
}

func TestBacklightBitRidesAlong(t *testing.T) {
	display, fb := setup(t)

	assert.NilError(t, display.Backlight(false))
	assert.Equal(t, fb.frames[0], byte(0x00), "bare frame latches the level")

	fb.reset()
	assert.NilError(t, display.Command(cmdReturnHome))
	for _, f := range fb.frames {
		assert.Equal(t, f&backlightBit, byte(0))
	}

	fb.reset()
	assert.NilError(t, display.Backlight(true))
	assert.Equal(t, fb.frames[0], byte(backlightBit))

	fb.reset()
	assert.NilError(t, display.Print("z"))
	for _, f := range fb.frames {
		assert.Equal(t, f&backlightBit, byte(backlightBit))
	}
}

func TestWriteFailureSurfaces(t *testing.T) {
	display, fb := setup(t)

	fb.failAfter = 0
	err := display.Print("A")
	assert.ErrorContains(t, err, "transport write failed")
	assert.ErrorContains(t, pkgerrors.Cause(err), "nack")

	// a failure mid-sequence stops the sequence
	fb.reset()
	fb.failAfter = 2
	err = display.Command(cmdReturnHome)
	assert.ErrorContains(t, err, "transport write failed")
	assert.Equal(t, len(fb.frames), 2)
}

func TestOpenCloseReopen(t *testing.T) {
	display, err := Open(0x27, 1, true)
	assert.NilError(t, err)
	assert.NilError(t, display.Close())

	// the bus handle is released, so a second open must succeed
	display, err = Open(0x27, 1, true)
	assert.NilError(t, err)
	assert.NilError(t, display.Close())
}

func TestCloseReleasesBus(t *testing.T) {
	display, fb := setup(t)
	assert.NilError(t, display.Close())
	assert.Equal(t, fb.closes, 1)
}
