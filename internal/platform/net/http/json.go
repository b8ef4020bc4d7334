package http

import (
	"net/http"

	"airwatch/internal/platform/net/http/bind"
)

// JSONHandler adapts a pure JSON handler to a platform Handler
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn without parsing a request body and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return result(fn(r))
	})
}

// result turns a handler return into a Response; a Reply keeps its status and message
func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	switch v := out.(type) {
	case Reply:
		return v.Response()
	case Response:
		return v
	}
	return OK(out)
}
