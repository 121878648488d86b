package main

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"
)

var errFetch = errors.New("failed to fetch file")

// await blocks until the promise settles. It must not be called from a JS
// callback goroutine.
func await(ctx context.Context, p js.Value) (js.Value, error) {
	type result struct {
		v   js.Value
		err error
	}
	ch := make(chan result, 1)
	onResolve := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		ch <- result{v: args[0]}
		return nil
	})
	defer onResolve.Release()
	onReject := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		msg := "rejected"
		if len(args) > 0 && args[0].Truthy() {
			msg = args[0].Call("toString").String()
		}
		ch <- result{err: errors.New(msg)}
		return nil
	})
	defer onReject.Release()
	p.Call("then", onResolve, onReject)

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		return js.Undefined(), ctx.Err()
	}
}

func fetchGet(ctx context.Context, path string) ([]byte, error) {
	res, err := await(ctx, js.Global().Call("fetch", path, map[string]interface{}{
		"credentials": "include",
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errFetch, err)
	}
	if !res.Get("ok").Bool() {
		return nil, fmt.Errorf("%w: %s %s", errFetch, path, res.Get("statusText").String())
	}
	buf, err := await(ctx, res.Call("arrayBuffer"))
	if err != nil {
		return nil, fmt.Errorf("failed to handle received data: %w", err)
	}
	array := js.Global().Get("Uint8Array").New(buf)
	b := make([]byte, array.Get("byteLength").Int())
	js.CopyBytesToGo(b, array)
	return b, nil
}

// newPromise runs fn on its own goroutine and settles the returned promise
// with its result.
func newPromise(fn func() (interface{}, error)) js.Value {
	var executor js.Func
	executor = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolve, reject := args[0], args[1]
		go func() {
			defer executor.Release()
			v, err := fn()
			if err != nil {
				reject.Invoke(errorToJS(err))
				return
			}
			resolve.Invoke(v)
		}()
		return nil
	})
	return js.Global().Get("Promise").New(executor)
}
