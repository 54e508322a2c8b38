// Package errmap restores sentinel errors from replies that crossed a
// request/reply boundary, where only the error text survives.
package errmap

import (
	"errors"
	"fmt"
	"strings"

	monoerrors "github.com/go-monolith/mono/pkg/errors"
)

// Match returns an error wrapping the first target that the reply message
// starts with, keeping whatever detail followed it. For a remote error the
// reply message is the handler's own error text; otherwise it is err's
// message. Unmatched errors are returned unchanged.
func Match(err error, targets ...error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	var remote *monoerrors.RemoteError
	if errors.As(err, &remote) {
		msg = remote.Message
	}
	for _, target := range targets {
		text := target.Error()
		if strings.HasPrefix(msg, text) {
			return fmt.Errorf("%w%s", target, msg[len(text):])
		}
	}
	return err
}
