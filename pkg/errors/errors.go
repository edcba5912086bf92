// ================== pkg/errors/errors.go =================
package errors

// Kind classifies a guard/request failure per the service's error
// taxonomy. Only Auth, Platform, Session and NotFound ever reach the
// client; Upstream, Signer and Tracking are always absorbed locally,
// tagging the warn-level log line at the point they're swallowed.
type Kind int

const (
	KindAuth Kind = iota
	KindPlatform
	KindSession
	KindNotFound
	KindUpstream
	KindSigner
	KindTracking
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindPlatform:
		return "platform"
	case KindSession:
		return "session"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindSigner:
		return "signer"
	case KindTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Guard wraps a short, client-safe message with its taxonomy Kind and
// the HTTP status it maps to. Guards and the controller return these;
// everything else is swallowed and logged.
type Guard struct {
	Kind    Kind
	Status  int
	Message string
}

func (g *Guard) Error() string {
	return g.Message
}

func NewGuard(kind Kind, status int, message string) *Guard {
	return &Guard{Kind: kind, Status: status, Message: message}
}
