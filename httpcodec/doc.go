// Package httpcodec is a minimal HTTP/1.x request/response codec: line
// and header parsing plus content-length body framing, re-expressed
// from the original's http.h/http_parser.h/http_session.h rather than
// reused from net/http, since the codec itself — not a web framework —
// is what this package is for.
//
// RequestParser/ResponseParser consume bytes incrementally through
// Execute, the Go analogue of HttpRequestParer::execute/
// HttpResponseParer::execute; Session pairs a parser with an
// io.ReadWriter the way HttpSession pairs one with a SocketStream.
package httpcodec
