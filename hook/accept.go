package hook

import (
	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-fibernet/fdreg"
	"github.com/joeycumines/go-fibernet/ioruntime"
)

// Accept parks the calling fiber until fd (a listening socket) has a
// pending connection, then accepts it non-blocking+close-on-exec and
// registers the new fd with the default fdreg.Registry.
func Accept(fd int) (int, unix.Sockaddr, error) {
	var nfd int
	var sa unix.Sockaddr
	_, err := DoIO(fd, ioruntime.EventRead, fdreg.TimeoutRead, func() (int, error) {
		n, s, e := unix.Accept4(fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if e != nil {
			return 0, e
		}
		nfd, sa = n, s
		return n, nil
	})
	if err != nil {
		return 0, nil, err
	}
	fdreg.Default().GetOrCreate(nfd)
	return nfd, sa, nil
}
