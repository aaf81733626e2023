// Wire message for the set-request IPC bridge (spec.md C6, §4.6): a
// fixed-size, packed little-endian struct sent whole over a UNIX stream
// socket by an unprivileged client asking the privileged service to set
// a property.
package sysprop

// SetProperty is the only command this wire format defines. Additional
// commands may be added later without breaking the layout (spec.md
// §4.6's closing note).
const SetProperty uint32 = 1

// messageSize is the fixed byte length of every request: cmd (4 bytes)
// plus the name and value fields, each zero-padded to their max length.
const messageSize = 4 + NameMax + ValueMax

// encodeMessage packs cmd, name, and value into a messageSize-byte
// buffer. name and value must already have been validated by the
// caller (Set, in setrequest.go) against NameMax/ValueMax.
func encodeMessage(cmd uint32, name, value string) []byte {
	buf := make([]byte, messageSize)
	le.PutUint32(buf[0:4], cmd)
	copy(buf[4:4+NameMax], name)
	copy(buf[4+NameMax:], value)
	return buf
}
