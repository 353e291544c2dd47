package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a gateway failure by origin.
type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindPermissionDenied
	KindUnauthorized
	KindServer
	KindNetwork
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnauthorized:
		return "unauthorized"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	default:
		return "other"
	}
}

// ErrRecommendationPending is returned when the AI recommendation for an
// activity has not been generated yet.
var ErrRecommendationPending = errors.New("AI recommendation is being generated. Please check back in a moment.")

// Error is returned by every Client operation that fails.
type Error struct {
	Kind    Kind
	Op      string // "GET /activities/42"
	Status  int    // zero for transport and decode failures
	Message string // the gateway's "message" field, when it sent one
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("gateway: %s returned %d: %s", e.Op, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("gateway: %s returned %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("gateway: %s failed", e.Op)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusForbidden:
		return KindPermissionDenied
	case code == http.StatusUnauthorized:
		return KindUnauthorized
	case code >= 500:
		return KindServer
	default:
		return KindOther
	}
}

// statusError builds the Error for a non-2xx response. Spring-style bodies
// of the form {"message": "..."} are surfaced in Message.
func statusError(op string, code int, body []byte) *Error {
	e := &Error{Kind: kindForStatus(code), Op: op, Status: code}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Message = payload.Message
	}
	return e
}

// KindOf returns the Kind of err, or KindOther when err is not a gateway error.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindOther
}

// IsNotFound reports whether err is a 404 from the gateway.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// Describe converts err into the message shown to the user. It never
// returns an empty string for a non-nil error.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrRecommendationPending) {
		return ErrRecommendationPending.Error()
	}
	var ge *Error
	if !errors.As(err, &ge) {
		return "Request failed. Please try again."
	}
	switch ge.Kind {
	case KindNotFound:
		return resourceNoun(ge.Op) + " not found. It may have been deleted."
	case KindPermissionDenied:
		return "You do not have permission to view this " + strings.ToLower(resourceNoun(ge.Op)) + "."
	case KindUnauthorized:
		return "Your session has expired. Please log in again."
	case KindServer:
		return "Server error. Please try again later."
	case KindNetwork:
		return "Could not reach the server. Please check your connection and try again."
	default:
		if ge.Message != "" {
			return ge.Message
		}
		return "Request failed. Please try again."
	}
}

// resourceNoun names the resource an operation addresses, for messages.
func resourceNoun(op string) string {
	_, path, _ := strings.Cut(op, " ")
	switch {
	case strings.HasPrefix(path, "/activities"):
		return "Activity"
	case strings.HasPrefix(path, "/templates"):
		return "Template"
	case strings.HasPrefix(path, "/workout-sessions"):
		return "Workout session"
	case strings.HasPrefix(path, "/recommendations"):
		return "Recommendation"
	case strings.HasPrefix(path, "/users"):
		return "Profile"
	default:
		return "Resource"
	}
}
