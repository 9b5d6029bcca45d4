package main

import (
	"log"
)

type logDisplay struct {
	i2cBus     int
	curDisplay string
	debugDump  bool
	backlight  bool
	row        int
	col        int
	open       bool
	audit      []string
}

func (ld *logDisplay) OpenDisplay(settings configSettings) error {
	ld.i2cBus = settings.GetInt(sI2CBus)
	ld.curDisplay = ""
	ld.debugDump = settings.GetBool(sDebug)
	ld.backlight = true
	ld.row = 0
	ld.col = 0
	ld.open = true
	ld.audit = []string{}
	return nil
}

func (ld *logDisplay) CloseDisplay() error {
	ld.open = false
	return nil
}

func (ld *logDisplay) Print(e string) error {
	if e != ld.curDisplay {
		log.Println(e)
		ld.audit = append(ld.audit, e)
	}
	ld.curDisplay = e
	return nil
}

func (ld *logDisplay) Clear() error {
	ld.curDisplay = ""
	ld.row = 0
	ld.col = 0
	return nil
}

func (ld *logDisplay) Home() error {
	ld.row = 0
	ld.col = 0
	return nil
}

func (ld *logDisplay) GoTo(row, col int) error {
	ld.row = row
	ld.col = col
	return nil
}

func (ld *logDisplay) Backlight(on bool) error {
	ld.backlight = on
	return nil
}
