package formhttp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// IsDataStar reports whether the request comes from the datastar client,
// which expects an SSE response of patches.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get("Datastar-Request") == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	return r.URL.Query().Has("datastar")
}

func errorTarget(field string) string {
	return field + "-error"
}

// patchErrors sends one element patch per field, in the given order.
func patchErrors(sse *datastar.ServerSentEventGenerator, fields []fieldView) error {
	for _, f := range fields {
		if err := sse.PatchElementTempl(ErrorFragment(f.Name, f.Error)); err != nil {
			return err
		}
	}
	return nil
}

// readSignalValue extracts the value of a field from datastar signals. The
// client may send the field under its own name or as "value".
func readSignalValue(r *http.Request, field string) (string, error) {
	signals := make(map[string]any)
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	raw, ok := signals[field]
	if !ok {
		raw, ok = signals["value"]
	}
	if !ok {
		return "", fmt.Errorf("%w: signal %q missing", ErrBadRequest, field)
	}

	switch v := raw.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: signal %q must be a scalar", ErrBadRequest, field)
	}
}
