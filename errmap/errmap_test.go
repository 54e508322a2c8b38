package errmap

import (
	"errors"
	"fmt"
	"testing"

	monoerrors "github.com/go-monolith/mono/pkg/errors"
)

var (
	errNotFound = errors.New("thing not found")
	errInvalid  = errors.New("invalid thing")
)

func remote(message string) error {
	return fmt.Errorf("failed to call service 'get': %w",
		monoerrors.WrapRemoteError("get", "things", message, "*errors.errorString"))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		wantMsg string
	}{
		{"nil", nil, nil, ""},
		{"plain sentinel", errors.New("thing not found"), errNotFound, "thing not found"},
		{"remote sentinel with detail", remote("invalid thing: name is required"), errInvalid, "invalid thing: name is required"},
		{"remote sentinel only", remote("thing not found"), errNotFound, "thing not found"},
		{"sentinel text inside detail", remote("invalid thing: id x thing not found"), errInvalid, "invalid thing: id x thing not found"},
		{"sentinel text not leading", errors.New("lookup failed: thing not found"), nil, "lookup failed: thing not found"},
		{"unmatched", errors.New("nats: timeout"), nil, "nats: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.err, errNotFound, errInvalid)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("Match(nil) = %v, want nil", got)
				}
				return
			}
			if tt.want != nil && !errors.Is(got, tt.want) {
				t.Errorf("Match() = %v, want wrapping %v", got, tt.want)
			}
			if tt.want != nil && tt.want != errNotFound && errors.Is(got, errNotFound) {
				t.Errorf("Match() = %v, must not wrap %v", got, errNotFound)
			}
			if tt.want == nil && (errors.Is(got, errNotFound) || errors.Is(got, errInvalid)) {
				t.Errorf("Match() = %v, want no sentinel", got)
			}
			if tt.want == nil && got != tt.err {
				t.Errorf("Match() = %v, want the original error", got)
			}
			if tt.want != nil && got.Error() != tt.wantMsg {
				t.Errorf("Match().Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
		})
	}
}
