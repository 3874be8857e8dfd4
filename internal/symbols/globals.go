package symbols

import (
	"fmt"
	"strings"
)

// Env selects a predefined set of global names.
type Env uint8

const (
	EnvES2021 Env = 1 << iota
	EnvBrowser
	EnvNode

	// DefaultEnvs matches the validator setup: browser, node and es2021.
	DefaultEnvs = EnvES2021 | EnvBrowser | EnvNode
)

// ParseEnvs converts a comma separated list ("browser,node") into a mask.
func ParseEnvs(list string) (Env, error) {
	var env Env
	for _, part := range strings.Split(list, ",") {
		switch strings.TrimSpace(part) {
		case "":
		case "es2021", "es6", "builtin":
			env |= EnvES2021
		case "browser":
			env |= EnvBrowser
		case "node":
			env |= EnvNode
		default:
			return 0, fmt.Errorf("unknown environment %q", part)
		}
	}
	return env, nil
}

func (e Env) String() string {
	var parts []string
	if e&EnvES2021 != 0 {
		parts = append(parts, "es2021")
	}
	if e&EnvBrowser != 0 {
		parts = append(parts, "browser")
	}
	if e&EnvNode != 0 {
		parts = append(parts, "node")
	}
	return strings.Join(parts, ",")
}

// GlobalSet is the set of names an environment predefines.
type GlobalSet map[string]struct{}

func (g GlobalSet) Has(name string) bool {
	_, ok := g[name]
	return ok
}

// Globals returns the union of the global names of every environment in e.
func Globals(e Env) GlobalSet {
	set := make(GlobalSet, len(es2021Globals)+len(browserGlobals)+len(nodeGlobals))
	add := func(names []string) {
		for _, n := range names {
			set[n] = struct{}{}
		}
	}
	if e&EnvES2021 != 0 {
		add(es2021Globals)
	}
	if e&EnvBrowser != 0 {
		add(browserGlobals)
	}
	if e&EnvNode != 0 {
		add(nodeGlobals)
	}
	return set
}

var es2021Globals = []string{
	"AggregateError", "Array", "ArrayBuffer", "Atomics", "BigInt", "BigInt64Array",
	"BigUint64Array", "Boolean", "DataView", "Date", "decodeURI", "decodeURIComponent",
	"encodeURI", "encodeURIComponent", "Error", "escape", "eval", "EvalError",
	"FinalizationRegistry", "Float32Array", "Float64Array", "Function", "globalThis",
	"Infinity", "Int16Array", "Int32Array", "Int8Array", "isFinite", "isNaN", "JSON",
	"Map", "Math", "NaN", "Number", "Object", "parseFloat", "parseInt", "Promise",
	"Proxy", "RangeError", "ReferenceError", "Reflect", "RegExp", "Set",
	"SharedArrayBuffer", "String", "Symbol", "SyntaxError", "TypeError", "Uint16Array",
	"Uint32Array", "Uint8Array", "Uint8ClampedArray", "undefined", "unescape",
	"URIError", "WeakMap", "WeakRef", "WeakSet",
}

var nodeGlobals = []string{
	"__dirname", "__filename", "AbortController", "AbortSignal", "atob", "Blob",
	"BroadcastChannel", "btoa", "Buffer", "clearImmediate", "clearInterval",
	"clearTimeout", "console", "crypto", "DOMException", "Event", "EventTarget",
	"exports", "fetch", "FormData", "global", "Headers", "Intl", "MessageChannel",
	"MessageEvent", "MessagePort", "module", "performance", "process",
	"queueMicrotask", "ReadableStream", "Request", "require", "Response",
	"setImmediate", "setInterval", "setTimeout", "structuredClone", "TextDecoder",
	"TextDecoderStream", "TextEncoder", "TextEncoderStream", "TransformStream", "URL",
	"URLSearchParams", "WebAssembly", "WritableStream",
}

var browserGlobals = []string{
	"AbortController", "AbortSignal", "addEventListener", "alert", "Animation",
	"atob", "Audio", "AudioContext", "blur", "Blob", "BroadcastChannel", "btoa",
	"caches", "cancelAnimationFrame", "cancelIdleCallback", "CanvasRenderingContext2D",
	"CharacterData", "clearInterval", "clearTimeout", "clientInformation",
	"ClipboardEvent", "close", "closed", "Comment", "confirm", "console",
	"createImageBitmap", "crypto", "CSS", "CSSStyleDeclaration", "CustomEvent",
	"customElements", "devicePixelRatio", "dispatchEvent", "document", "Document",
	"DocumentFragment", "DOMException", "DOMParser", "DOMRect", "DragEvent",
	"Element", "ErrorEvent", "event", "Event", "EventSource", "EventTarget",
	"external", "fetch", "File", "FileList", "FileReader", "find", "focus",
	"FocusEvent", "FormData", "frameElement", "frames", "getComputedStyle",
	"getSelection", "Headers", "history", "History", "HTMLAnchorElement",
	"HTMLButtonElement", "HTMLCanvasElement", "HTMLCollection", "HTMLDivElement",
	"HTMLDocument", "HTMLElement", "HTMLFormElement", "HTMLIFrameElement",
	"HTMLImageElement", "HTMLInputElement", "HTMLMediaElement", "HTMLOptionElement",
	"HTMLScriptElement", "HTMLSelectElement", "HTMLSpanElement", "HTMLTemplateElement",
	"HTMLTextAreaElement", "HTMLVideoElement", "IDBKeyRange", "Image", "ImageData",
	"indexedDB", "innerHeight", "innerWidth", "InputEvent", "IntersectionObserver",
	"Intl", "isSecureContext", "KeyboardEvent", "length", "localStorage", "location",
	"Location", "locationbar", "matchMedia", "MediaQueryList", "menubar",
	"MessageChannel", "MessageEvent", "MessagePort", "MouseEvent", "moveBy",
	"moveTo", "MutationObserver", "name", "navigator", "Navigator", "Node",
	"NodeFilter", "NodeList", "Notification", "offscreenBuffering", "onblur",
	"onchange", "onclick", "onerror", "onfocus", "oninput", "onkeydown", "onkeyup",
	"onload", "onmessage", "onresize", "onscroll", "onsubmit", "onunload", "open",
	"opener", "Option", "origin", "outerHeight", "outerWidth", "pageXOffset",
	"pageYOffset", "parent", "performance", "Performance", "PointerEvent",
	"postMessage", "print", "ProgressEvent", "prompt", "queueMicrotask", "Range",
	"ReadableStream", "removeEventListener", "Request", "requestAnimationFrame",
	"requestIdleCallback", "ResizeObserver", "Response", "screen", "Screen",
	"screenLeft", "screenTop", "screenX", "screenY", "scroll", "scrollbars",
	"scrollBy", "scrollTo", "scrollX", "scrollY", "self", "Selection",
	"sessionStorage", "setInterval", "setTimeout", "ShadowRoot", "status",
	"statusbar", "stop", "Storage", "StorageEvent", "structuredClone", "SubmitEvent",
	"SVGElement", "SVGSVGElement", "Text", "TextDecoder", "TextEncoder", "toolbar",
	"top", "TouchEvent", "TransformStream", "TreeWalker", "UIEvent", "URL",
	"URLSearchParams", "WebAssembly", "WebSocket", "WheelEvent", "window", "Window",
	"Worker", "WritableStream", "XMLDocument", "XMLHttpRequest", "XMLSerializer",
	"XPathResult",
}
