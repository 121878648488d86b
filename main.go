//go:build !js

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "depgraph3d runs in the browser: build with GOOS=js GOARCH=wasm and serve with examples/serve")
	os.Exit(1)
}
