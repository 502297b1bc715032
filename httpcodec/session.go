package httpcodec

import (
	"errors"
	"io"

	"github.com/joeycumines/go-fibernet/rtconfig"
)

// DefaultRequestBufferSize is the read chunk size recvRequest uses
// before the parser has seen a complete request line and header
// block, the Go analogue of HttpSession::recvRequest's local
// buff_size (there: a fixed 150-byte stack buffer; here: the same
// default, overridable per-Session, with rtconfig's
// http.request.buffer_size variable as the process-wide default).
const DefaultRequestBufferSize = 150

var ErrRequestTooLarge = errors.New("httpcodec: request exceeds buffer size without completing headers")
var ErrBodyTooLarge = errors.New("httpcodec: request body exceeds http.request.max_body")

// Session pairs a parser with an io.ReadWriter, the Go analogue of
// HttpSession (a SocketStream-backed request/response exchange).
// Any connected byte stream works, including a tcpserver connection
// whose Read/Write go through hook.Read/hook.Write.
type Session struct {
	conn       io.ReadWriter
	bufferSize int
}

// NewSession wraps conn for request/response exchange. bufferSize <= 0
// falls back to rtconfig.HTTPRequestBufferSize, then
// DefaultRequestBufferSize if that's also unset.
func NewSession(conn io.ReadWriter, bufferSize int) *Session {
	if bufferSize <= 0 {
		bufferSize = rtconfig.HTTPRequestBufferSize.Get()
	}
	if bufferSize <= 0 {
		bufferSize = DefaultRequestBufferSize
	}
	return &Session{conn: conn, bufferSize: bufferSize}
}

// RecvRequest reads and parses one request, including its body, the
// Go analogue of HttpSession::recvRequest.
func (s *Session) RecvRequest() (*Request, error) {
	parser := NewRequestParser()
	buf := make([]byte, s.bufferSize)
	total := 0

	for {
		n, err := s.conn.Read(buf)
		if n <= 0 {
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		total += n
		if _, err := parser.Execute(buf[:n]); err != nil {
			return nil, err
		}
		if parser.IsFinished() {
			break
		}
		if total >= s.bufferSize {
			return nil, ErrRequestTooLarge
		}
	}

	length := parser.ContentLength()
	if maxBody := rtconfig.HTTPRequestMaxBody.Get(); maxBody > 0 && int64(length) > maxBody {
		return nil, ErrBodyTooLarge
	}
	if length > 0 {
		body := make([]byte, length)
		n := copy(body, parser.Leftover())
		if uint64(n) < length {
			if _, err := io.ReadFull(s.conn, body[n:]); err != nil {
				return nil, err
			}
		}
		parser.Data().Body = body
	}
	return parser.Data(), nil
}

// SendResponse writes rsp, the Go analogue of
// HttpSession::sendResponse.
func (s *Session) SendResponse(rsp *Response) error {
	_, err := io.WriteString(s.conn, rsp.String())
	return err
}
