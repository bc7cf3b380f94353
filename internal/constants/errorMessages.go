package constants

const (
	MsgInvalidCredentials   = "invalid username or password"
	MsgUsernameTaken        = "username is already taken"
	MsgSetHomeAirportFirst  = "set your home airport first"
	MsgAccessDenied         = "access denied"
	MsgInvalidRequestBody   = "invalid request body"
	MsgMissingBearerToken   = "missing bearer token"
	MsgInvalidToken         = "invalid or expired token"
	MsgInternalServerError  = "internal server error"
	MsgRateLimited          = "rate limit exceeded"
	MsgUnknownPredicate     = "unknown match predicate"
	MsgUnknownScope         = "unknown scope, use global, state or home-airport"
	MsgProfileAlreadyExists = "profile already exists"
)
