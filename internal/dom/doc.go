// Package dom runs the widget in a browser. It is only built for js/wasm.
package dom
