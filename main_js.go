package main

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/go-gl/mathgl/mgl64"
	webgl "github.com/seqsense/webgl-go"
)

var initialCameraTarget = mgl64.Vec3{-9000, -9000, 9000}

type pointerEventKind int

const (
	pointerEventDown pointerEventKind = iota
	pointerEventMove
	pointerEventUp
)

type pointerEvent struct {
	kind pointerEventKind
	e    webgl.PointerEvent
}

type keyEvent struct {
	code string
	down bool
}

type loadResult struct {
	data *graphData
	err  error
}

func main() {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "graphCanvas")
	log := newPageLog(doc.Call("getElementById", "log"))
	ctx := context.Background()

	cfg := defaultSettings()
	if path := canvas.Get("dataset").Get("settings"); path.Truthy() {
		b, err := fetchGet(ctx, path.String())
		if err != nil {
			log.Print(err)
			return
		}
		if cfg, err = parseSettings(b); err != nil {
			log.Print(err)
			return
		}
	}

	gl, err := webgl.New(canvas)
	if err != nil {
		log.Print(err)
		return
	}
	showDebugInfo(gl, log)

	renderer, err := newRenderer(gl)
	if err != nil {
		log.Print(err)
		return
	}

	cam := newCamera(cfg.Camera.FOV, 1, cfg.Camera.Near, cfg.Camera.Far)
	cam.lookAt(initialCameraTarget)

	loop := newRenderLoop(&scene{}, cam, renderer, &tweenGroup{})
	model := newGraphModel()
	sv := newSceneView(model, loop, renderer, cfg)
	sv.focusCanvas = gl.Canvas.Focus
	cons := &console{scene: sv}

	sv.OnPreview(func(p preview) {
		dispatchPreview(canvas, p)
	})
	sv.OnNodeTooltip(func(t nodeTooltip) {
		dispatchTooltip(canvas, t)
		if t.Name != "" {
			setCursor(canvas, cursorPointer)
		} else {
			setCursor(canvas, idleCursor(sv.input.Steering()))
		}
	})
	sv.OnSteeringModeChanged(func(on bool) {
		showSteering(doc, on)
		setCursor(canvas, idleCursor(on))
		dispatchEvent(canvas, "steeringModeChanged", map[string]interface{}{"on": on})
	})
	showSteering(doc, false)

	g := newGesture(pointerInput{hit: sv.hit, input: sv.input})

	chCall := make(chan func())
	call := func(fn func()) js.Func {
		return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			chCall <- fn
			return nil
		})
	}
	js.Global().Set("depgraph", map[string]interface{}{
		"search": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			pattern := stringArg(args, 0)
			chCall <- func() { sv.Search(pattern) }
			return nil
		}),
		"subgraph": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			name := stringArg(args, 0)
			chCall <- func() { sv.Subgraph(name) }
			return nil
		}),
		"focus": call(sv.Focus),
		"focusOnPackage": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			name := stringArg(args, 0)
			chCall <- func() { sv.FocusOnPackage(name) }
			return nil
		}),
		"toggleSteering": call(sv.input.ToggleSteering),
		"run": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			line := stringArg(args, 0)
			return newPromise(func() (interface{}, error) {
				type ret struct {
					s   string
					err error
				}
				ch := make(chan ret, 1)
				chCall <- func() {
					s, err := cons.Run(line)
					ch <- ret{s, err}
				}
				r := <-ch
				return r.s, r.err
			})
		}),
	})

	chWheel := make(chan float64)
	gl.Canvas.OnWheel(func(e webgl.WheelEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chWheel <- e.DeltaY
	})
	chClick := make(chan webgl.MouseEvent)
	gl.Canvas.OnClick(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chClick <- e
	})
	chDblClick := make(chan [2]int)
	onEvent(canvas, "dblclick", func(e js.Value) {
		e.Call("preventDefault")
		chDblClick <- [2]int{e.Get("offsetX").Int(), e.Get("offsetY").Int()}
	})
	gl.Canvas.OnContextMenu(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
	})
	chPointer := make(chan pointerEvent)
	gl.Canvas.OnPointerDown(func(e webgl.PointerEvent) {
		e.PreventDefault()
		chPointer <- pointerEvent{kind: pointerEventDown, e: e}
	})
	gl.Canvas.OnPointerMove(func(e webgl.PointerEvent) {
		e.PreventDefault()
		chPointer <- pointerEvent{kind: pointerEventMove, e: e}
	})
	gl.Canvas.OnPointerUp(func(e webgl.PointerEvent) {
		e.PreventDefault()
		chPointer <- pointerEvent{kind: pointerEventUp, e: e}
	})
	chLeave := make(chan struct{})
	gl.Canvas.OnPointerOut(func(e webgl.PointerEvent) {
		chLeave <- struct{}{}
	})
	chKey := make(chan keyEvent)
	gl.Canvas.OnKeyDown(func(e webgl.KeyboardEvent) {
		if !boundKey(e.Code) {
			return
		}
		e.PreventDefault()
		e.StopPropagation()
		chKey <- keyEvent{code: e.Code, down: true}
	})
	gl.Canvas.OnKeyUp(func(e webgl.KeyboardEvent) {
		chKey <- keyEvent{code: e.Code}
	})
	chBlur := make(chan struct{})
	onEvent(canvas, "blur", func(js.Value) {
		chBlur <- struct{}{}
	})
	chContextLost := make(chan struct{})
	gl.Canvas.OnWebGLContextLost(func(e webgl.WebGLContextEvent) {
		e.PreventDefault()
		chContextLost <- struct{}{}
	})

	chLoaded := make(chan loadResult, 1)
	setCursor(canvas, cursorWait)
	go func() {
		d, err := loadGraph(ctx, fetchGet, cfg.Data)
		chLoaded <- loadResult{data: d, err: err}
	}()

	frames := animationFrames()
	var width, height int

	for {
		select {
		case now := <-frames:
			newWidth := gl.Canvas.ClientWidth()
			newHeight := gl.Canvas.ClientHeight()
			if newWidth != width || newHeight != height {
				width, height = newWidth, newHeight
				sv.Resize(width, height)
			}
			loop.Frame(now)
		case fn := <-chCall:
			fn()
		case res := <-chLoaded:
			setCursor(canvas, cursorDefault)
			if res.err != nil {
				log.Print(res.err)
				break
			}
			if err := res.data.apply(model); err != nil {
				log.Print(err)
				break
			}
			log.Print(fmt.Sprintf("%d packages loaded", model.Len()))
		case d := <-chWheel:
			sv.input.Wheel(d)
		case e := <-chClick:
			if e.Button == mouseButtonLeft {
				sv.hit.Click(e.OffsetX, e.OffsetY)
			}
			sv.Focus()
		case p := <-chDblClick:
			sv.hit.DblClick(p[0], p[1])
		case p := <-chPointer:
			switch p.kind {
			case pointerEventDown:
				g.pointerDown(p.e)
			case pointerEventMove:
				g.pointerMove(p.e)
			case pointerEventUp:
				g.pointerUp(p.e)
			}
		case <-chLeave:
			sv.hit.PointerLeave()
		case k := <-chKey:
			if k.down {
				sv.input.KeyDown(k.code)
			} else {
				sv.input.KeyUp(k.code)
			}
		case <-chBlur:
			sv.input.ReleaseAll()
		case <-chContextLost:
			log.Print(errContextLostEvent)
			return
		}
	}
}
