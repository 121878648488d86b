package main

// pointerInput fans canvas pointer input out to picking and camera control.
type pointerInput struct {
	hit   *hitTest
	input *userInput
}

func (p pointerInput) PointerDown(x, y int) {
	p.hit.PointerDown(x, y)
}

func (p pointerInput) PointerUp() {
	p.hit.PointerUp()
}

func (p pointerInput) PointerMove(x, y int) {
	p.hit.PointerMove(x, y)
	p.input.MouseMove(x, y)
}

func (p pointerInput) DragStart(x, y, button int) {
	p.input.MouseDown(x, y, button)
}

func (p pointerInput) DragEnd(x, y int) {
	p.input.MouseUp(x, y)
}

func (p pointerInput) Zoom(deltaY float64) {
	p.input.Wheel(deltaY)
}
