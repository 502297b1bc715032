package httpcodec

import (
	"fmt"
	"strings"
)

// Response is an HTTP response, the Go analogue of HttpResponse.
type Response struct {
	Status  Status
	Version uint8
	Close   bool
	Body    []byte
	Reason  string
	Header  Header
}

// NewResponse constructs a default response (200 OK, HTTP/1.1, close),
// the Go analogue of HttpResponse's default constructor.
func NewResponse() *Response {
	return &Response{
		Status:  StatusOK,
		Version: 0x11,
		Close:   true,
		Header:  Header{},
	}
}

// String renders the status line, headers, and body, the Go analogue
// of HttpResponse::dump/toString.
func (r *Response) String() string {
	var b strings.Builder
	reason := r.Reason
	if reason == "" {
		reason = r.Status.String()
	}
	fmt.Fprintf(&b, "HTTP/%d.%d %d %s\r\n", r.Version>>4, r.Version&0x0f, r.Status, reason)

	for k, v := range r.Header {
		if k == "connection" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\r\n", k, v)
	}
	if r.Close {
		b.WriteString("connection: close\r\n")
	} else {
		b.WriteString("connection: keep-alive\r\n")
	}
	if len(r.Body) > 0 {
		fmt.Fprintf(&b, "content-length: %d\r\n\r\n", len(r.Body))
		b.Write(r.Body)
	} else {
		b.WriteString("\r\n")
	}
	return b.String()
}
