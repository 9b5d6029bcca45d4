// +build nolcd

package main

// build with -tags nolcd on hosts without the i2c headers

type lcdShim struct {
}

func (this *lcdShim) OpenDisplay(settings configSettings) error {
	return nil
}

func (this *lcdShim) CloseDisplay() error {
	return nil
}

func (this *lcdShim) Print(msg string) error {
	return nil
}

func (this *lcdShim) Clear() error {
	return nil
}

func (this *lcdShim) Home() error {
	return nil
}

func (this *lcdShim) GoTo(row, col int) error {
	return nil
}

func (this *lcdShim) Backlight(on bool) error {
	return nil
}
