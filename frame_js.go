package main

import (
	"syscall/js"
	"time"
)

// animationFrames returns a channel ticking on requestAnimationFrame.
// Frames are dropped while the receiver is busy.
func animationFrames() <-chan time.Time {
	ch := make(chan time.Time, 1)
	raf := js.Global().Get("requestAnimationFrame")
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		select {
		case ch <- time.Now():
		default:
		}
		raf.Invoke(cb)
		return nil
	})
	raf.Invoke(cb)
	return ch
}
