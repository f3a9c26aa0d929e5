//go:build !(js && wasm)

package glx

import "net/http"

// setFetchMode is a no-op outside the browser; CORS does not apply.
func setFetchMode(*http.Request, CrossOrigin) {}

// resolveSource returns src unchanged. Relative sources are file paths.
func resolveSource(src string) string { return src }
