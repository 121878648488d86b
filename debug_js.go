package main

import (
	webgl "github.com/seqsense/webgl-go"
)

func showDebugInfo(gl *webgl.WebGL, log *pageLog) {
	defer func() {
		if r := recover(); r != nil {
			log.Print("Failed to get debug info")
		}
	}()

	ri, ok := gl.GetExtension("WEBGL_debug_renderer_info")
	if !ok {
		log.Print("GPU info: hidden by the browser privacy setting")
		return
	}
	log.Print("GPU: ",
		gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String(), " ",
		gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String(),
	)
	log.Print("Max point size: ",
		gl.GetParameter(gl.JS().Get("ALIASED_POINT_SIZE_RANGE").Int()).Index(1).Float(),
	)
}
