package rtconfig

import "time"

// Well-known configuration variables consumed elsewhere in this module.
// Registering them here, rather than lazily at first use, means Names()
// and a loaded YAML document can always see the full set up front.
var (
	FiberStackSize = Register("fiber.stack_size", uint32(128*1024),
		"default stack size recorded on fibers created without an explicit size")

	SchedulerThreads = Register("scheduler.threads", 1,
		"number of worker goroutines a Scheduler starts with")

	TCPConnectTimeout = Register("tcp.connect.timeout", 5*time.Second,
		"deadline for an outbound TCP connect before it is cancelled")

	TCPAcceptBacklog = Register("tcp.accept.backlog", 128,
		"listen backlog passed to the TCP listener")

	HTTPRequestBufferSize = Register("http.request.buffer_size", 4096,
		"initial read buffer size used by the HTTP request codec")

	HTTPRequestMaxBody = Register("http.request.max_body", int64(10<<20),
		"maximum request body size the HTTP codec will buffer before rejecting")
)
