package http

import "net/http"

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a pure JSON handler for POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}

// PostRaw mounts a Response-returning handler for POST, for endpoints that
// consume multipart bodies or return attachments
func PostRaw(r Router, path string, h func(*http.Request) Response) {
	r.Post(path, Handle(h))
}
