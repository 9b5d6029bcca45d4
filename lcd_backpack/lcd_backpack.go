package lcd_backpack

import (
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"

	"attendpi/i2c"
)

// Driver for a 16x2 HD44780-style character LCD behind a PCF8574 I2C
// backpack (the usual default address is 0x27).
//
// The backpack maps its 8 expander pins onto the LCD like this:
//   bit 0  register select (0 = command, 1 = character data)
//   bit 1  read/write      (held at 0, we never read)
//   bit 2  enable strobe
//   bit 3  backlight
//   bits 4-7  data nibble (D4-D7)
//
// The LCD runs in 4-bit mode, so every 8-bit command or character goes out
// as two nibbles, high first.  Each nibble is latched by pulsing the enable
// bit: write the frame with EN low, again with EN high, then low again,
// sleeping between writes to satisfy the controller's setup/hold timing.

const (
	regSelectBit byte = 0x01
	rdwrBit      byte = 0x02
	enableBit    byte = 0x04
	backlightBit byte = 0x08
)

// HD44780 command opcodes
const (
	cmdClearDisplay = 0x01
	cmdReturnHome   = 0x02
	cmdEntryMode    = 0x06 // increment right, no display shift
	cmdDisplayOff   = 0x08 // display off, cursor off, blink off
	cmdDisplayOn    = 0x0C // display on, cursor off, blink off
	cmdSetDDRAMAddr = 0x80
)

const (
	// settle time between the three writes of an enable pulse
	dNibbleSettle = 1500 * time.Microsecond
	// extra settle time after a full command byte
	dCommandSettle = 5 * time.Millisecond
)

// DDRAM address of column 0 for each row
var rowOffsets = []byte{0x00, 0x40, 0x14, 0x54}

// bus is the write side of attendpi/i2c, split out so tests can
// substitute a recording fake
type bus interface {
	WriteByte(single byte) (int, error)
	Close() error
}

type Lcd struct {
	i2cDev    bus
	backlight bool
	regSelect bool
	rows      int
	cols      int
	sim       bool
}

func (this *Lcd) simLog(v string, args ...interface{}) {
	if !this.sim {
		return
	}
	log.Printf(v, args...)
}

// Open connects to the backpack on the given bus and runs the controller
// bring-up sequence.  Failure to open the bus is fatal for the caller:
// without a bus there is no display to drive.
func Open(address uint8, busNum int, simulated bool) (*Lcd, error) {
	i2cDev, err := i2c.Open(address, busNum, simulated)
	if err != nil {
		return nil, errors.Wrap(err, "lcd: i2c bus unavailable")
	}
	this, err := open(i2cDev, simulated)
	if err != nil {
		i2cDev.Close()
		return nil, err
	}
	return this, nil
}

func open(dev bus, simulated bool) (*Lcd, error) {
	this := &Lcd{
		i2cDev: dev,
		rows:   2,
		cols:   16,
		sim:    simulated,
	}
	if err := this.init(); err != nil {
		return nil, err
	}
	return this, nil
}

// init shifts the controller into 4-bit mode and configures it: 2-line 5x8
// font, cursor and blink off, cleared display, auto-increment addressing.
// Every step gets a settle delay on top of the per-nibble timing because
// the controller executes configuration commands slowly.
func (this *Lcd) init() error {
	this.regSelect = false
	this.backlight = false

	// function set, sent as bare nibbles: first 0x2 switches the interface
	// to 4-bit, then 0x8 selects 2 lines and the 5x8 font
	if err := this.writeNibble(0x02); err != nil {
		return err
	}
	time.Sleep(dCommandSettle)
	if err := this.writeNibble(0x08); err != nil {
		return err
	}
	time.Sleep(dCommandSettle)

	for _, cmd := range []byte{cmdDisplayOff, cmdClearDisplay, cmdEntryMode, cmdDisplayOn} {
		if err := this.Command(cmd); err != nil {
			return err
		}
	}

	this.backlight = true

	// visible proof of life
	return this.Print("TESTING TESTING")
}

// Close releases the bus handle.  The display keeps whatever is on it.
func (this *Lcd) Close() error {
	this.simLog("Close")
	return this.i2cDev.Close()
}

// writeNibble sends the low 4 bits of nibble to the controller with an
// enable pulse.  The backlight and register-select bits ride along on every
// frame, so callers must settle the target register before starting a
// nibble sequence, never in the middle of one.
func (this *Lcd) writeNibble(nibble byte) error {
	frame := nibble << 4
	if this.backlight {
		frame |= backlightBit
	}
	if this.regSelect {
		frame |= regSelectBit
	}

	for _, b := range []byte{frame, frame | enableBit, frame} {
		if _, err := this.i2cDev.WriteByte(b); err != nil {
			return errors.Wrap(err, "lcd: transport write failed")
		}
		time.Sleep(dNibbleSettle)
	}
	return nil
}

// writeByte splits b into nibbles, high first, per the 4-bit bus convention
func (this *Lcd) writeByte(b byte) error {
	if err := this.writeNibble(b >> 4); err != nil {
		return err
	}
	return this.writeNibble(b & 0x0F)
}

// Command writes an 8-bit command to the controller's command register
func (this *Lcd) Command(cmd byte) error {
	this.regSelect = false
	if err := this.writeByte(cmd); err != nil {
		return err
	}
	time.Sleep(dCommandSettle)
	return nil
}

func (this *Lcd) writeChar(c byte) error {
	code := encodeChar(c)
	this.regSelect = true
	return this.writeByte(code)
}

// Print writes msg at the current cursor position, one encoded character
// at a time.  No wrapping or scrolling; what doesn't fit falls off the
// right edge of DDRAM.
func (this *Lcd) Print(msg string) error {
	this.simLog("Print: %s", msg)
	for i := 0; i < len(msg); i++ {
		if err := this.writeChar(msg[i]); err != nil {
			return err
		}
	}
	return nil
}

// Clear blanks the display and returns the cursor to home
func (this *Lcd) Clear() error {
	this.simLog("Clear")
	return this.Command(cmdClearDisplay)
}

// Home returns the cursor to position 0,0 without clearing
func (this *Lcd) Home() error {
	this.simLog("Home")
	return this.Command(cmdReturnHome)
}

// GoTo moves the cursor to the given zero-based row and column
func (this *Lcd) GoTo(row, col int) error {
	if row < 0 || row >= this.rows || col < 0 || col >= this.cols {
		return errors.Errorf("lcd: position %d,%d out of range for %dx%d display",
			row, col, this.rows, this.cols)
	}
	this.simLog("GoTo: %d,%d", row, col)
	return this.Command(cmdSetDDRAMAddr | (rowOffsets[row] + byte(col)))
}

// Backlight turns the LED backlight on or off.  The new level is latched
// immediately with a bare frame write; no enable pulse, so the controller
// never sees it as data.
func (this *Lcd) Backlight(on bool) error {
	this.simLog("Backlight: %t", on)
	this.backlight = on
	frame := byte(0)
	if on {
		frame |= backlightBit
	}
	if _, err := this.i2cDev.WriteByte(frame); err != nil {
		return errors.Wrap(err, "lcd: transport write failed")
	}
	return nil
}

func (this *Lcd) String() string {
	return fmt.Sprintf("lcd_backpack %dx%d", this.cols, this.rows)
}
