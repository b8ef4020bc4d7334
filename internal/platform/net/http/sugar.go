package http

import "net/http"

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// DeleteJSON mounts a pure JSON handler for DELETE without a request body
func DeleteJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, JSONHandlerNoBody(h))
}

// DeleteJSONBody mounts a DELETE handler that binds a JSON body (bulk deletes)
func DeleteJSONBody[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Delete(path, JSONHandler(h))
}

// PostJSON mounts a pure JSON handler for POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}

// PutJSON mounts a pure JSON handler for PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, JSONHandler(h))
}
