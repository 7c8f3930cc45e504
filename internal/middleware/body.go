package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-viper/mapstructure/v2"

	"github.com/sitecms/internal/errs"
)

const requestKey = "normalized_request"

// Request is the body, files and cookies of an incoming request in one
// shape, whatever the content type was.
type Request struct {
	Fields  map[string]interface{}
	Files   map[string][]*multipart.FileHeader
	Cookies map[string]string
}

// File returns the first uploaded file for field.
func (r *Request) File(field string) (*multipart.FileHeader, bool) {
	files := r.Files[field]
	if len(files) == 0 {
		return nil, false
	}
	return files[0], true
}

// BodyLimit caps the request body at max bytes.
func BodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max > 0 && c.Request.Body != nil {
			if c.Request.ContentLength > max {
				Abort(c, errs.NewRequestTooLargeError("Request body too large"))
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}

// ParseRequest normalises JSON, urlencoded and multipart bodies into a
// Request stored on the context. Malformed bodies are rejected with 400.
func ParseRequest(maxMemory int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := parseRequest(c.Request, maxMemory)
		if err != nil {
			Abort(c, err)
			return
		}
		c.Set(requestKey, req)
		c.Next()
	}
}

// CurrentRequest returns the normalised request. Without ParseRequest in
// the chain it is parsed lazily.
func CurrentRequest(c *gin.Context) (*Request, error) {
	if value, ok := c.Get(requestKey); ok {
		if req, ok := value.(*Request); ok {
			return req, nil
		}
	}
	req, err := parseRequest(c.Request, 32<<20)
	if err != nil {
		return nil, err
	}
	c.Set(requestKey, req)
	return req, nil
}

func parseRequest(r *http.Request, maxMemory int64) (*Request, error) {
	req := &Request{
		Fields:  map[string]interface{}{},
		Files:   map[string][]*multipart.FileHeader{},
		Cookies: map[string]string{},
	}
	for _, cookie := range r.Cookies() {
		req.Cookies[cookie.Name] = cookie.Value
	}

	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
		return req, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case binding.MIMEJSON:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, bodyReadError(err)
		}
		r.Body = io.NopCloser(bytes.NewReader(data))
		if len(bytes.TrimSpace(data)) == 0 {
			return req, nil
		}
		if err := json.Unmarshal(data, &req.Fields); err != nil {
			return nil, errs.NewBadRequestError("Invalid JSON body")
		}

	case binding.MIMEPOSTForm:
		if err := r.ParseForm(); err != nil {
			return nil, bodyReadError(err)
		}
		collectValues(req.Fields, r.PostForm)

	case binding.MIMEMultipartPOSTForm:
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, bodyReadError(err)
		}
		collectValues(req.Fields, r.MultipartForm.Value)
		for name, files := range r.MultipartForm.File {
			req.Files[name] = files
		}
	}

	return req, nil
}

func collectValues(dst map[string]interface{}, values map[string][]string) {
	for key, list := range values {
		key = strings.TrimSuffix(key, "[]")
		switch len(list) {
		case 0:
		case 1:
			dst[key] = list[0]
		default:
			items := make([]interface{}, len(list))
			for i, v := range list {
				items[i] = v
			}
			dst[key] = items
		}
	}
}

func bodyReadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errs.NewRequestTooLargeError("Request body too large")
	}
	return errs.NewBadRequestError("Invalid request body")
}

// Bind decodes the normalised request fields into dst and validates it
// with gin's validator. Form values are converted to the target types.
func Bind(c *gin.Context, dst interface{}) error {
	req, err := CurrentRequest(c)
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			blankToNilHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(req.Fields); err != nil {
		return errs.NewBadRequestError("Invalid request body")
	}

	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return errs.ValidationError(err)
	}
	return nil
}

// blankToNilHook treats an empty form value as absent for pointer and
// time targets, so optional fields submitted blank stay unset.
func blankToNilHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if s, _ := data.(string); strings.TrimSpace(s) != "" {
		return data, nil
	}
	if to.Kind() == reflect.Ptr && to.Elem().Kind() != reflect.String {
		return nil, nil
	}
	if to == reflect.TypeOf(time.Time{}) {
		return time.Time{}, nil
	}
	return data, nil
}
