package bind

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "airwatch/internal/platform/errors"
)

type registerIn struct {
	DeviceID string `json:"device_id" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

type userIn struct {
	Name     string `json:"name" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name   string
		method string
		body   string
		code   perr.ErrorCode
		field  string
	}{
		{name: "ok", method: http.MethodPost, body: `{"device_id":"dev-1","is_active":false}`},
		{name: "empty post", method: http.MethodPost, body: ``, code: perr.ErrorCodeJSON},
		{name: "bad json", method: http.MethodPost, body: `{"device_id":`, code: perr.ErrorCodeJSON},
		{name: "unknown field", method: http.MethodPost, body: `{"device_id":"d","x":1}`, code: perr.ErrorCodeJSON},
		{name: "trailing data", method: http.MethodPost, body: `{"device_id":"d"} {}`, code: perr.ErrorCodeJSON},
		{name: "missing required", method: http.MethodPut, body: `{"is_active":true}`, code: perr.ErrorCodeValidation, field: "device_id"},
		{name: "empty delete still validated", method: http.MethodDelete, body: ``, code: perr.ErrorCodeValidation, field: "device_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/", strings.NewReader(tc.body))
			got, err := ParseJSON[registerIn](req)
			if tc.code == perr.ErrorCodeUnknown {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.DeviceID != "dev-1" || got.IsActive == nil || *got.IsActive {
					t.Fatalf("got %+v", got)
				}
				return
			}
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("code = %v (%v), want %v", perr.CodeOf(err), err, tc.code)
			}
			if e, _ := perr.As(err); tc.field != "" && e.Field() != tc.field {
				t.Fatalf("field = %q, want %q", e.Field(), tc.field)
			}
		})
	}
}

func TestParseJSON_AllowEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if _, err := ParseJSON[map[string]any](req, JSONOptions{AllowEmptyBody: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseJSON_MaxBytes(t *testing.T) {
	body := `{"device_id":"` + strings.Repeat("x", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	_, err := ParseJSON[registerIn](req, JSONOptions{MaxBytes: 16, DisallowUnknown: true})
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected JSON error, got %v", err)
	}
}

func TestValidate_Messages(t *testing.T) {
	cases := []struct {
		in    userIn
		field string
		msg   string
	}{
		{userIn{Name: "A", Password: "longenough"}, "name", "name must be at least 2"},
		{userIn{Name: "Asha", Password: "short"}, "password", "password must be at least 8"},
	}
	for _, tc := range cases {
		err := Validate(tc.in)
		e, ok := perr.As(err)
		if !ok || e.Field() != tc.field || !strings.Contains(e.Message(), tc.msg) {
			t.Fatalf("Validate(%+v) = %v", tc.in, err)
		}
	}
	if err := Validate(map[string]int{}); err != nil {
		t.Fatalf("non-struct should pass, got %v", err)
	}
}

type eventsQuery struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=1000"`
	DeviceID string `query:"deviceId"`
	Types    string `query:"types" validate:"omitempty,comma_ints"`
	Sort     string `query:"sort" validate:"omitempty,oneof=asc desc"`
	Live     *bool  `query:"live"`
	Date     string `query:"date" validate:"omitempty,ymd"`
}

func TestQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=2&limit=50&deviceId=+d1+&types=1,2&sort=asc&live=true&date=2024-02-29", nil)
	got, err := Query[eventsQuery](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Page != 2 || got.Limit != 50 || got.DeviceID != "d1" || got.Types != "1,2" || got.Sort != "asc" || got.Live == nil || !*got.Live {
		t.Fatalf("got %+v", got)
	}

	bad := []string{
		"/?page=abc",
		"/?limit=5000",
		"/?types=1,x",
		"/?sort=up",
		"/?date=2024-02-30",
	}
	for _, u := range bad {
		_, err := Query[eventsQuery](httptest.NewRequest(http.MethodGet, u, nil))
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("Query(%s) = %v, want validation error", u, err)
		}
	}
}

type uploadForm struct {
	ChannelName string `form:"channel_name" validate:"required"`
	Date        string `form:"date" validate:"required,ymd"`
}

func multipartRequest(t *testing.T, fields map[string]string, file string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if file != "" {
		fw, err := mw.CreateFormFile("file", file)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write([]byte("a,b\n1,2\n"))
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMultipart(t *testing.T) {
	req := multipartRequest(t, map[string]string{"channel_name": "Star", "date": "2024-05-01"}, "Schedule.CSV")
	in, up, err := Multipart[uploadForm](req, "file", 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.ChannelName != "Star" || up.Name != "Schedule.CSV" || up.Ext != "csv" || up.Size == 0 {
		t.Fatalf("got %+v %+v", in, up)
	}
	f, err := up.Open()
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	_, _, err = Multipart[uploadForm](multipartRequest(t, map[string]string{"channel_name": "Star", "date": "2024-05-01"}, ""), "file", 1<<20)
	if e, ok := perr.As(err); !ok || e.Message() != "No file uploaded" || e.Field() != "file" {
		t.Fatalf("missing file = %v", err)
	}

	_, _, err = Multipart[uploadForm](multipartRequest(t, map[string]string{"date": "2024-05-01"}, "a.csv"), "file", 1<<20)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("missing channel = %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if _, _, err = Multipart[uploadForm](req, "file", 1<<20); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("non multipart = %v", err)
	}
}

func TestTagNames_UseJSON(t *testing.T) {
	type tagged struct {
		A string `json:"alpha,omitempty" validate:"required"`
	}
	err := Get().Validator.Struct(tagged{})
	field, _ := ValidationFieldAndMessage(err)
	if field != "alpha" {
		t.Fatalf("field = %q", field)
	}
	raw, _ := json.Marshal(tagged{A: "x"})
	if !strings.Contains(string(raw), "alpha") {
		t.Fatalf("sanity: %s", raw)
	}
}
