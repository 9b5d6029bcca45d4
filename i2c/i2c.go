package i2c

import (
	"fmt"
	"os"
	"syscall"
)

// I2C is a write-only handle to a single slave device on a /dev/i2c-N bus.
// In simulated mode every write is logged instead of hitting hardware so
// the appliance can run on a desktop machine.
type I2C struct {
	fd      *os.File
	address uint8
	bus     int
	fdSim   bool
}

const (
	i2cSlave = 0x0703
)

func logWrite(buf []uint8) error {
	fmt.Printf("Write : ")
	for i := 0; i < len(buf); i++ {
		fmt.Printf("%02x ", buf[i])
	}
	fmt.Printf("\n")
	return nil
}

func logMsg(msg string) error {
	fmt.Println(msg)
	return nil
}

// Open a connection to the slave at address on /dev/i2c-{bus}
func Open(address uint8, bus int, simulated bool) (*I2C, error) {
	if simulated {
		return &I2C{fdSim: true, address: address, bus: bus, fd: nil}, nil
	}
	f, err := os.OpenFile(fmt.Sprintf("/dev/i2c-%d", bus), os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	if err := ioctl(f.Fd(), i2cSlave, uintptr(address)); err != nil {
		f.Close()
		return nil, err
	}
	return &I2C{fd: f, address: address, bus: bus, fdSim: false}, nil
}

func (this *I2C) Close() error {
	if this.fdSim {
		return logMsg(fmt.Sprintf("Close: 0x%02x", this.address))
	}
	return this.fd.Close()
}

// WriteByte writes a single command-style byte to the device
func (this *I2C) WriteByte(single byte) (int, error) {
	var buf [1]byte
	buf[0] = single
	// not MT safe for i2c
	if err := selectLine(this); err != nil {
		return 0, err
	}

	if this.fdSim {
		return 1, logWrite(buf[:])
	}
	return this.fd.Write(buf[:])
}

func (this *I2C) Write(buf []uint8) (int, error) {
	// not MT safe for i2c
	if err := selectLine(this); err != nil {
		return 0, err
	}
	if this.fdSim {
		return len(buf), logWrite(buf)
	}
	return this.fd.Write(buf)
}

func (this *I2C) String() string {
	return fmt.Sprintf("i2c-%d @ 0x%02x", this.bus, this.address)
}

func selectLine(this *I2C) error {
	if this.fdSim {
		return logMsg(fmt.Sprintf("ioctl: I2C_SLAVE @ 0x%02x", this.address))
	}
	return ioctl(this.fd.Fd(), i2cSlave, uintptr(this.address))
}

func ioctl(fd, cmd, arg uintptr) error {
	_, _, err := syscall.Syscall6(syscall.SYS_IOCTL, fd, cmd, arg, 0, 0, 0)
	if err != 0 {
		return err
	}
	return nil
}
