package bind

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	perr "airwatch/internal/platform/errors"

	"github.com/mitchellh/mapstructure"
)

// Query decodes r.URL.Query() into T using `query` tags, then validates it
// Values are weakly typed so "2" binds to an int and "true" to a bool
func Query[T any](r *http.Request) (T, error) {
	return decodeValues[T](r.URL.Query(), "query")
}

func decodeValues[T any](vals url.Values, tag string) (T, error) {
	var dst, zero T
	in := make(map[string]any, len(vals))
	for k, vv := range vals {
		switch len(vv) {
		case 0:
		case 1:
			if v := strings.TrimSpace(vv[0]); v != "" {
				in[k] = v
			}
		default:
			in[k] = vv
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          tag,
		WeaklyTypedInput: true,
		Result:           &dst,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return zero, perr.Wrapf(err, perr.ErrorCodeUnknown, "query decoder")
	}
	if err := dec.Decode(in); err != nil {
		return zero, perr.Newf(perr.ErrorCodeValidation, "invalid %s parameters: %s", tag, firstDecodeError(err))
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// firstDecodeError trims mapstructure's multi-error banner down to the first cause
func firstDecodeError(err error) string {
	var me *mapstructure.Error
	if errors.As(err, &me) && len(me.Errors) > 0 {
		return me.Errors[0]
	}
	return err.Error()
}

// Upload is one file read from a multipart request
type Upload struct {
	Name        string
	Ext         string // lower case without dot
	ContentType string
	Size        int64
	Header      *multipart.FileHeader
}

// Open returns a reader over the uploaded bytes
func (u Upload) Open() (multipart.File, error) { return u.Header.Open() }

// Multipart parses a multipart form, binds its text fields into T using `form` tags
// and returns the file under fileField. A missing file is a Validation error
func Multipart[T any](r *http.Request, fileField string, maxBytes int64) (T, Upload, error) {
	var zero T
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return zero, Upload{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "invalid multipart body")
	}

	fhs := r.MultipartForm.File[fileField]
	if len(fhs) == 0 {
		return zero, Upload{}, perr.WithField(perr.Validationf("No file uploaded"), fileField)
	}
	fh := fhs[0]
	up := Upload{
		Name:        fh.Filename,
		Ext:         strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), "."),
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Header:      fh,
	}

	in, err := decodeValues[T](url.Values(r.MultipartForm.Value), "form")
	if err != nil {
		return zero, Upload{}, err
	}
	return in, up, nil
}
