package httpcodec

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-fibernet/rtconfig"
)

func TestRequestParser_ParsesStartLineHeadersAcrossExecuteCalls(t *testing.T) {
	p := NewRequestParser()
	n, err := p.Execute([]byte("GET /foo?a=1#frag HTTP/1.1\r\nHost: "))
	require.NoError(t, err)
	assert.Equal(t, len("GET /foo?a=1#frag HTTP/1.1\r\nHost: "), n)
	assert.False(t, p.IsFinished())

	_, err = p.Execute([]byte("example.com\r\nContent-Length: 5\r\n\r\nhello"))
	require.NoError(t, err)
	assert.True(t, p.IsFinished())

	req := p.Data()
	assert.Equal(t, MethodGET, req.Method)
	assert.Equal(t, "/foo", req.Path)
	assert.Equal(t, "a=1", req.Query)
	assert.Equal(t, "frag", req.Fragment)
	assert.Equal(t, uint8(0x11), req.Version)
	assert.Equal(t, "example.com", req.Header.Get("host", ""))
	assert.Equal(t, uint64(5), p.ContentLength())
	assert.Equal(t, "hello", string(p.Leftover()))
}

func TestRequestParser_InvalidMethodSetsError(t *testing.T) {
	p := NewRequestParser()
	_, err := p.Execute([]byte("BOGUS / HTTP/1.1\r\n\r\n"))
	assert.Error(t, err)
	assert.True(t, p.HasError())
	assert.Equal(t, ErrInvalidMethod, p.ErrorCode())
}

func TestRequestParser_MalformedVersionSetsError(t *testing.T) {
	p := NewRequestParser()
	_, err := p.Execute([]byte("GET / HTTP/x\r\n\r\n"))
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidVersion, p.ErrorCode())
}

func TestResponseParser_ParsesStatusLineAndHeaders(t *testing.T) {
	p := NewResponseParser()
	_, err := p.Execute([]byte("HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n"))
	require.NoError(t, err)
	assert.True(t, p.IsFinished())
	rsp := p.Data()
	assert.Equal(t, Status(404), rsp.Status)
	assert.Equal(t, "Not Found", rsp.Reason)
}

func TestRequest_StringRoundTripsThroughParser(t *testing.T) {
	req := NewRequest()
	req.Method = MethodPOST
	req.Path = "/submit"
	req.Header.Set("X-Test", "yes")
	req.Body = []byte("payload")
	req.Close = false

	p := NewRequestParser()
	data := []byte(req.String())
	_, err := p.Execute(data)
	require.NoError(t, err)
	require.True(t, p.IsFinished())
	assert.Equal(t, MethodPOST, p.Data().Method)
	assert.Equal(t, "/submit", p.Data().Path)
	assert.Equal(t, "yes", p.Data().Header.Get("x-test", ""))
	assert.Equal(t, uint64(len("payload")), p.ContentLength())
	assert.Equal(t, "payload", string(p.Leftover()))
}

func TestResponse_StringIncludesReasonAndConnectionHeader(t *testing.T) {
	rsp := NewResponse()
	rsp.Status = StatusNotFound
	rsp.Close = true
	s := rsp.String()
	assert.Contains(t, s, "HTTP/1.1 404 Not Found")
	assert.Contains(t, s, "connection: close")
}

func TestSession_RecvRequestAndSendResponseOverRealSocket(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		sess := NewSession(conn, 0)
		req, err := sess.RecvRequest()
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, MethodGET, req.Method)
		assert.Equal(t, "/ping", req.Path)

		rsp := NewResponse()
		rsp.Body = []byte("pong")
		assert.NoError(t, sess.SendResponse(rsp))
	}()

	conn, err := net.DialTimeout("tcp", ln.Addr().String(), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET /ping HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	tmp := make([]byte, 256)
	conn.SetReadDeadline(time.Now().Add(time.Second))
	for {
		n, err := conn.Read(tmp)
		buf.Write(tmp[:n])
		if err != nil {
			break
		}
	}

	rp := NewResponseParser()
	_, err = rp.Execute(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Status(200), rp.Data().Status)

	<-done
}

func TestSession_RecvRequestWithBodyInSameRead(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		client.Write([]byte("POST /x HTTP/1.1\r\nContent-Length: 5\r\n\r\nhowdy"))
	}()

	sess := NewSession(server, 0)
	req, err := sess.RecvRequest()
	require.NoError(t, err)
	assert.Equal(t, "howdy", string(req.Body))
}

func TestSession_RecvRequestRejectsBodyOverMaxBody(t *testing.T) {
	old := rtconfig.HTTPRequestMaxBody.Get()
	rtconfig.HTTPRequestMaxBody.Set(4)
	defer rtconfig.HTTPRequestMaxBody.Set(old)

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		client.Write([]byte("POST /x HTTP/1.1\r\nContent-Length: 5\r\n\r\nhowdy"))
	}()

	sess := NewSession(server, 0)
	_, err := sess.RecvRequest()
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}
