package auth

import "errors"

// Kind classifies an auth/authz failure so transport code can select an HTTP
// status by switching on it directly, never by matching error text.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthenticationRequired
	KindInvalidToken
	KindTokenExpired
	KindInvalidCredentials
	KindSamePassword
	KindPermissionDenied
	KindHospitalNotAssigned
	KindRoleHierarchyViolation
	KindCorruptCredential
	KindInvalidArgument
	KindServiceUnavailable
	KindTooManyAttempts
	KindNotFound
)

// String returns the wire-visible error code used in response envelopes.
func (k Kind) String() string {
	switch k {
	case KindAuthenticationRequired:
		return "AuthenticationRequired"
	case KindInvalidToken:
		return "InvalidToken"
	case KindTokenExpired:
		return "TokenExpired"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindSamePassword:
		return "SamePassword"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindHospitalNotAssigned:
		return "HospitalNotAssigned"
	case KindRoleHierarchyViolation:
		return "RoleHierarchyViolation"
	case KindCorruptCredential:
		return "CorruptCredential"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindServiceUnavailable:
		return "ServiceUnavailable"
	case KindTooManyAttempts:
		return "TooManyAttempts"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

var (
	// ErrAuthenticationRequired covers both "no usable token" and
	// "cryptographically valid token for an account that no longer qualifies".
	ErrAuthenticationRequired = errors.New("authentication required")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidCredentials is deliberately the single error for unknown
	// username, wrong password and inactive account, so responses never
	// reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrSamePassword           = errors.New("new password must differ from the current password")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrHospitalNotAssigned    = errors.New("no hospital assigned to this account")
	ErrRoleHierarchyViolation = errors.New("cannot manage an account of equal or higher role")
	ErrCorruptCredential      = errors.New("stored credential digest is malformed")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrServiceUnavailable     = errors.New("service unavailable")
	ErrTooManyAttempts        = errors.New("too many login attempts, try again later")

	// ErrUserNotFound comes from storage lookups. Credential paths map it
	// to ErrInvalidCredentials or ErrAuthenticationRequired so responses
	// never confirm account existence; administrative reads surface it
	// as a plain not-found.
	ErrUserNotFound = errors.New("user not found")
)

// KindOf maps an error chain to its Kind. Unrecognized errors are KindUnknown
// and should be treated as internal faults by the transport layer.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		return KindAuthenticationRequired
	case errors.Is(err, ErrTokenExpired):
		return KindTokenExpired
	case errors.Is(err, ErrInvalidToken):
		return KindInvalidToken
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrSamePassword):
		return KindSamePassword
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrHospitalNotAssigned):
		return KindHospitalNotAssigned
	case errors.Is(err, ErrRoleHierarchyViolation):
		return KindRoleHierarchyViolation
	case errors.Is(err, ErrCorruptCredential):
		return KindCorruptCredential
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrServiceUnavailable):
		return KindServiceUnavailable
	case errors.Is(err, ErrTooManyAttempts):
		return KindTooManyAttempts
	case errors.Is(err, ErrUserNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}
