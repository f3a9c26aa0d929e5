//go:build js && wasm

package glx

import (
	"net/http"
	"net/url"
	"syscall/js"
)

// setFetchMode passes the CORS mode to the browser's fetch through the
// headers the wasm net/http transport understands.
func setFetchMode(req *http.Request, mode CrossOrigin) {
	switch mode {
	case CrossOriginAnonymous:
		req.Header.Set("js.fetch:mode", "cors")
		req.Header.Set("js.fetch:credentials", "same-origin")
	case CrossOriginUseCredentials:
		req.Header.Set("js.fetch:mode", "cors")
		req.Header.Set("js.fetch:credentials", "include")
	}
}

// resolveSource makes src absolute against the page location, so relative
// texture paths behave as they would in an <img> element.
func resolveSource(src string) string {
	loc := js.Global().Get("location")
	if loc.IsUndefined() || loc.IsNull() {
		return src
	}
	base, err := url.Parse(loc.Get("href").String())
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}
