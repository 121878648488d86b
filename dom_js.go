package main

import (
	"errors"
	"fmt"
	"syscall/js"
)

var errContextLostEvent = errors.New("received context lost event")

func errorToJS(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}

// pageLog prints to the browser console and, if present, to a log element
// on the page.
type pageLog struct {
	div js.Value
}

func newPageLog(div js.Value) *pageLog {
	return &pageLog{div: div}
}

func (l *pageLog) Print(msg ...interface{}) {
	s := fmt.Sprint(msg...)
	println(s)
	if l.div.Truthy() {
		html := l.div.Get("innerHTML").String()
		l.div.Set("innerHTML", fmt.Sprintf("%s%s<br/>", html, s))
	}
}

func dispatchEvent(target js.Value, name string, detail map[string]interface{}) {
	ev := js.Global().Get("CustomEvent").New(name, map[string]interface{}{
		"bubbles": true,
		"detail":  detail,
	})
	target.Call("dispatchEvent", ev)
}

func dispatchPreview(target js.Value, p preview) {
	dispatchEvent(target, "preview", map[string]interface{}{
		"name":         p.Name,
		"dependencies": p.Dependencies,
		"dependents":   p.Dependents,
	})
}

func dispatchTooltip(target js.Value, t nodeTooltip) {
	dispatchEvent(target, "show-node-tooltip", map[string]interface{}{
		"name": t.Name,
		"x":    t.X,
		"y":    t.Y,
	})
}

// showSteering toggles every element with the steering class.
func showSteering(doc js.Value, on bool) {
	display := "none"
	if on {
		display = "block"
	}
	els := doc.Call("querySelectorAll", ".steering")
	for i := 0; i < els.Length(); i++ {
		els.Index(i).Get("style").Set("display", display)
	}
}

// onEvent adds a raw DOM listener for events webgl-go does not wrap.
func onEvent(target js.Value, name string, cb func(js.Value)) {
	target.Call("addEventListener", name,
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cb(args[0])
			return nil
		}),
	)
}

func stringArg(args []js.Value, i int) string {
	if i >= len(args) || args[i].IsUndefined() || args[i].IsNull() {
		return ""
	}
	return args[i].String()
}
