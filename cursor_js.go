package main

import (
	"syscall/js"
)

type cursor string

const (
	cursorDefault   cursor = "default"
	cursorPointer   cursor = "pointer"
	cursorCrosshair cursor = "crosshair"
	cursorMove      cursor = "move"
	cursorWait      cursor = "wait"
)

func setCursor(canvas js.Value, c cursor) {
	canvas.Get("style").Set("cursor", string(c))
}

// idleCursor is the cursor when no node is hovered.
func idleCursor(steering bool) cursor {
	if steering {
		return cursorCrosshair
	}
	return cursorDefault
}
