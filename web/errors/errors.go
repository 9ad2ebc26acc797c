package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/cozy/cozy-barcode/pkg/barcode"
	build "github.com/cozy/cozy-barcode/pkg/config"
	"github.com/cozy/cozy-barcode/pkg/ean13"
	"github.com/cozy/cozy-barcode/pkg/logger"
	"github.com/golang/gddo/httputil"
	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
)

var contentTypeOffers = []string{
	echo.MIMEApplicationJSON,
	echo.MIMETextPlain,
}

const defaultContentTypeOffer = echo.MIMEApplicationJSON

// ErrorNormalized is created by the error handler to normalize any error into
// a struct containing all the elements to create a full HTTP error response.
type ErrorNormalized struct {
	status int
	title  string
	detail string
	inner  error
}

// ErrorJSON is the JSON document sent for an error.
type ErrorJSON struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// ToJSON return the document to send for the normalized error
func (e *ErrorNormalized) ToJSON() *ErrorJSON {
	return &ErrorJSON{
		Status: e.Status(),
		Title:  e.Title(),
		Detail: e.Detail(),
	}
}

// Status return the HTTP status code associated with the normalized error.
func (e *ErrorNormalized) Status() int {
	return e.status
}

// Title returns the error title string value.
func (e *ErrorNormalized) Title() string {
	if e.title != "" {
		return e.title
	}
	return http.StatusText(e.status)
}

// Detail returns the error detailed string value.
func (e *ErrorNormalized) Detail() string {
	if e.detail != "" {
		return e.detail
	}
	return e.inner.Error()
}

// NormalizeError creates a normalized version of the given error that can be
// used to create an HTTP response.
func NormalizeError(err error) *ErrorNormalized {
	if err == nil {
		return nil
	}

	n := ErrorNormalized{inner: err}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		n.status = he.Code
		if he.Internal != nil {
			n.detail = he.Internal.Error()
			err = he.Internal
		} else {
			n.detail = fmt.Sprintf("%v", he.Message)
		}
	}

	var verr *ean13.ValidationError
	var ferr *ean13.FormatError
	var eerr *ean13.EncodingError
	var merr *multierror.Error
	switch {
	case errors.As(err, &merr):
		n.status = http.StatusBadRequest
		n.title = "Invalid codes"
		n.detail = multiDetail(merr)
	case errors.As(err, &verr), errors.As(err, &ferr):
		n.status = http.StatusBadRequest
		n.title = "Invalid code"
	case errors.As(err, &eerr):
		n.status = http.StatusUnprocessableEntity
		n.title = "Unprocessable code"
	case errors.Is(err, ean13.ErrInvalidParams),
		errors.Is(err, barcode.ErrUnknownFormat),
		errors.Is(err, barcode.ErrEmptySheet),
		errors.Is(err, barcode.ErrSheetTooLarge):
		n.status = http.StatusBadRequest
	case n.status == 0:
		n.status = http.StatusInternalServerError
		n.detail = err.Error()
	}

	return &n
}

func multiDetail(merr *multierror.Error) string {
	var b bytes.Buffer
	for i, err := range merr.Errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// ErrorHandler is the default error handler of our APIs.
func ErrorHandler(err error, c echo.Context) {
	WriteError(err, c.Response(), c)
}

// WriteError can be used to write an error response in a specific
// http.ResponseWriter different than the echo.Content response.
func WriteError(err error, res http.ResponseWriter, c echo.Context) {
	req := c.Request()
	errn := NormalizeError(err)

	log := logger.WithNamespace("http")
	if build.IsDevRelease() || errn.Status() >= http.StatusInternalServerError {
		log.Errorf("[http] %s %s %s", req.Method, req.URL.Path, err)
	}

	if c.Response().Committed {
		return
	}

	contentTypeOffer := httputil.NegotiateContentType(req, contentTypeOffers, defaultContentTypeOffer)

	b := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		b.Reset()
		bufferPool.Put(b)
	}()

	var contentType string
	switch contentTypeOffer {
	case echo.MIMETextPlain:
		contentType = echo.MIMETextPlainCharsetUTF8
		title, detail := errn.Title(), errn.Detail()
		if detail != "" {
			fmt.Fprintf(b, "%s: %s", title, detail)
		} else {
			b.WriteString(title)
		}
	default:
		contentType = echo.MIMEApplicationJSON
		_ = json.NewEncoder(b).Encode(errn.ToJSON())
	}

	res.Header().Set("Content-Type", contentType)
	res.Header().Set("Content-Length", strconv.Itoa(b.Len()))
	res.WriteHeader(errn.Status())
	_, errw := res.Write(b.Bytes())

	if errw != nil {
		log.Errorf("[http] could not write out request: %s %s: %s",
			req.Method, req.URL.Path, err)
	}
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}
