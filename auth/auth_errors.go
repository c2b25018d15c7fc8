package auth

import "errors"

var (
	InvalidEmailErr = errors.New("invalid email address")
	UnknownTierErr  = errors.New("unrecognised subscription tier")
)
