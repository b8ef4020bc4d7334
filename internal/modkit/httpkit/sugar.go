package httpkit

import (
	"net/http"

	phttp "airwatch/internal/platform/net/http"
	"airwatch/internal/platform/net/http/bind"
)

// PostJSON mounts a pure JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PutJSON mounts a pure JSON handler under PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PutJSON(r, path, h)
}

// DeleteJSON mounts a DELETE handler that binds a JSON body
func DeleteJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.DeleteJSONBody(r, path, h)
}

// GetQuery mounts a GET handler whose input is bound from the query string
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, Call(func(req *http.Request) (any, error) {
		in, err := bind.Query[T](req)
		if err != nil {
			return nil, err
		}
		return h(req, in)
	}))
}

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// Delete registers a no-body DELETE handler
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.DeleteJSON(r, path, h)
}

// Upload mounts a multipart POST handler; T binds the text fields by `form` tag
func Upload[T any](r Router, path, fileField string, maxBytes int64, h func(*http.Request, T, bind.Upload) (any, error)) {
	r.Post(path, Call(func(req *http.Request) (any, error) {
		in, up, err := bind.Multipart[T](req, fileField, maxBytes)
		if err != nil {
			return nil, err
		}
		return h(req, in, up)
	}))
}
