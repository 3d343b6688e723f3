package session

import "errors"

// State is where the identity gate puts a caller.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StatePending         State = "pending"
	StateBlocked         State = "blocked"
	StateAuthenticated   State = "authenticated"
)

const (
	RoleAdmin   = "admin"
	RoleUser    = "user"
	RolePending = "pending"
	RoleBlocked = "blocked"
)

const (
	ReasonSessionExpired = "session_expired"
	ReasonBlocked        = "blocked"
	ReasonSignedOut      = "signed_out"
)

const (
	MessagePending = "Sua conta foi criada com sucesso, mas ainda precisa ser aprovada por um administrador. Você receberá um email quando sua conta estiver ativa."
	MessageBlocked = "Sua conta foi bloqueada. Entre em contato com o administrador para mais informações."
)

// ErrUnknownPrincipal is returned by a Store when the profile is gone.
var ErrUnknownPrincipal = errors.New("principal not found")

// Principal is the slice of a profile the gate needs.
type Principal struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	TokenVersion int    `json:"-"`
}

// Decision is the outcome of resolving a principal.
type Decision struct {
	State   State  `json:"state"`
	Role    string `json:"role,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// Allowed reports whether protected handlers may run.
func (d Decision) Allowed() bool {
	return d.State == StateAuthenticated
}

// Resolve maps a loaded principal to a gate state. Unknown roles fail closed.
func Resolve(p *Principal) Decision {
	if p == nil {
		return Decision{State: StateUnauthenticated}
	}
	switch p.Role {
	case RoleAdmin, RoleUser:
		return Decision{State: StateAuthenticated, Role: p.Role}
	case RolePending:
		return Decision{State: StatePending, Role: p.Role, Message: MessagePending}
	case RoleBlocked:
		return Decision{State: StateBlocked, Role: p.Role, Reason: ReasonBlocked, Message: MessageBlocked}
	default:
		return Decision{State: StateUnauthenticated}
	}
}

// signedOut is what a blocked principal turns into once its tokens are revoked.
func signedOut(reason, message string) Decision {
	return Decision{State: StateUnauthenticated, Reason: reason, Message: message}
}
