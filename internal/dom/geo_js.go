//go:build js && wasm

package dom

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/0nxb/my-weather-app/internal/widget"
)

// Geolocator asks navigator.geolocation for the device position.
type Geolocator struct{}

type position struct {
	lat, lon float64
	err      error
}

func (Geolocator) Locate(ctx context.Context) (float64, float64, error) {
	geo := js.Global().Get("navigator").Get("geolocation")
	if geo.IsUndefined() || geo.IsNull() {
		return 0, 0, widget.ErrGeolocationUnsupported
	}

	ch := make(chan position, 1)
	var onSuccess, onError js.Func
	onSuccess = js.FuncOf(func(_ js.Value, args []js.Value) any {
		coords := args[0].Get("coords")
		ch <- position{lat: coords.Get("latitude").Float(), lon: coords.Get("longitude").Float()}
		return nil
	})
	onError = js.FuncOf(func(_ js.Value, args []js.Value) any {
		msg := "unknown"
		if len(args) > 0 {
			msg = args[0].Get("message").String()
		}
		ch <- position{err: fmt.Errorf("%w: %s", widget.ErrPermissionDenied, msg)}
		return nil
	})
	geo.Call("getCurrentPosition", onSuccess, onError)

	select {
	case p := <-ch:
		onSuccess.Release()
		onError.Release()
		return p.lat, p.lon, p.err
	case <-ctx.Done():
		// The callbacks stay alive; the browser may still answer.
		return 0, 0, ctx.Err()
	}
}
