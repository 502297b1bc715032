// Command echoserver runs a TCP echo server atop the fiber runtime:
// bind 0.0.0.0:8020, read up to 1024 bytes per iteration, echo them
// back, and log when a client closes.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joeycumines/go-fibernet/ioruntime"
	"github.com/joeycumines/go-fibernet/netaddr"
	"github.com/joeycumines/go-fibernet/rtconfig"
	"github.com/joeycumines/go-fibernet/runtimelog"
	"github.com/joeycumines/go-fibernet/tcpserver"
)

func main() {
	logger := runtimelog.Default()

	if path := os.Getenv("FIBERNET_CONFIG"); path != "" {
		if err := rtconfig.LoadYAMLFile(path); err != nil {
			logger.Warning("echoserver: config load failed", "path", path, "err", err)
		}
	}

	m := ioruntime.Default()
	srv := tcpserver.New(m, m)
	srv.Handle = handleEcho(logger)

	addr := netaddr.NewIPv4([4]byte{0, 0, 0, 0}, 8020)
	if err := srv.Bind(addr); err != nil {
		logger.Emergency("echoserver: bind failed", "addr", addr.String(), "err", err)
		os.Exit(1)
	}
	if err := srv.Start(); err != nil {
		logger.Emergency("echoserver: start failed", "err", err)
		os.Exit(1)
	}
	logger.Info("echoserver: listening", "addr", addr.String())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("echoserver: shutting down")
	srv.Stop()
}

func handleEcho(logger *runtimelog.Logger) tcpserver.HandleFunc {
	return func(c *tcpserver.Conn) {
		buf := make([]byte, 1024)
		for {
			n, err := c.Read(buf)
			if err != nil {
				logger.Warning("echoserver: read failed", "remote", remoteStr(c), "err", err)
				return
			}
			if n == 0 {
				// unix.Read returning (0, nil) is EOF: the peer closed
				// its write side.
				logger.Info("echoserver: client close", "remote", remoteStr(c))
				return
			}
			if _, werr := c.Write(buf[:n]); werr != nil {
				logger.Warning("echoserver: write failed", "remote", remoteStr(c), "err", werr)
				return
			}
		}
	}
}

func remoteStr(c *tcpserver.Conn) string {
	if a := c.RemoteAddr(); a != nil {
		return a.String()
	}
	return "<unknown>"
}
