// Set-request client: the unprivileged side of C6 (spec.md §4.6). Set
// sends one fixed-size message to the property service over a UNIX
// stream socket and waits briefly for it to hang up.
package sysprop

import (
	"fmt"
	"net"
	"time"
)

// PropServiceName is the service's socket name under /dev/socket,
// matching the original's property_service.
const PropServiceName = "property_service"

// propSocketDir is the fixed directory the service's socket lives in.
const propSocketDir = "/dev/socket/"

// dialSocketPath is the path Set dials. It is a variable, not a
// constant, so tests can point it at a fake service listening in a
// temp directory instead of the real /dev/socket path.
var dialSocketPath = propSocketDir + PropServiceName

// ackPollTimeout is the maximum time Set waits for the service to close
// its end of the connection before treating the request as successful
// anyway (spec.md §4.6 step 5 — a deliberate, documented compromise: the
// service is single-threaded and may be slow, and read-after-write is
// already best-effort under this protocol, not a hard guarantee).
const ackPollTimeout = 250 * time.Millisecond

// Set asks the property service to set key to value. It validates the
// same length constraints Add does, dials the well-known UNIX socket,
// sends the fixed-size request, and waits up to ackPollTimeout for the
// service to hang up. A timeout is treated as success, matching the
// original protocol exactly; only a connect or send failure is reported
// as an error.
func Set(key, value string) error {
	if len(key) < 1 || len(key) >= NameMax {
		return fmt.Errorf("%w: key length", ErrInvalid)
	}
	if len(value) >= ValueMax {
		return fmt.Errorf("%w: value length", ErrInvalid)
	}

	conn, err := net.Dial("unix", dialSocketPath)
	if err != nil {
		return fmt.Errorf("%w: connect: %w", ErrIOFailure, err)
	}
	defer conn.Close()

	msg := encodeMessage(SetProperty, key, value)
	if n, err := conn.Write(msg); err != nil {
		return fmt.Errorf("%w: send: %w", ErrIOFailure, err)
	} else if n != len(msg) {
		return fmt.Errorf("%w: short send", ErrIOFailure)
	}

	waitForHangup(conn)
	return nil
}

// waitForHangup blocks until conn's peer closes its end, or ackPollTimeout
// elapses — whichever comes first. Either outcome is treated as success
// by Set; only the initial connect/send can fail this request.
func waitForHangup(conn net.Conn) {
	conn.SetReadDeadline(time.Now().Add(ackPollTimeout))
	buf := make([]byte, 1)
	conn.Read(buf) // EOF (hangup) or deadline exceeded — both are fine here
}
