// +build !nolcd

package main

import "attendpi/lcd_backpack"

type lcdShim struct {
	lcd *lcd_backpack.Lcd
}

func (this *lcdShim) OpenDisplay(settings configSettings) error {
	lcd, err := lcd_backpack.Open(
		settings.GetByte(sI2CDevice),
		settings.GetInt(sI2CBus),
		settings.GetBool(sI2CSim))
	if err != nil {
		return err
	}
	this.lcd = lcd
	return nil
}

func (this *lcdShim) CloseDisplay() error {
	return this.lcd.Close()
}

func (this *lcdShim) Print(msg string) error {
	return this.lcd.Print(msg)
}

func (this *lcdShim) Clear() error {
	return this.lcd.Clear()
}

func (this *lcdShim) Home() error {
	return this.lcd.Home()
}

func (this *lcdShim) GoTo(row, col int) error {
	return this.lcd.GoTo(row, col)
}

func (this *lcdShim) Backlight(on bool) error {
	return this.lcd.Backlight(on)
}
