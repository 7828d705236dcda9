package token

// Outcome classifies the result of a decryption.
type Outcome int

const (
	// Success means the token verified and the plaintext is available.
	Success Outcome = iota
	// AuthenticationFailure means the tag did not verify, or the token expired.
	AuthenticationFailure
	// MalformedToken means the token could not be parsed.
	MalformedToken
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case AuthenticationFailure:
		return "authentication failure"
	case MalformedToken:
		return "malformed token"
	default:
		return "unknown"
	}
}

// Result represents the outcome of decrypting a single token.
type Result struct {
	// Outcome of the decryption
	Outcome Outcome

	// Plaintext, only set on Success
	Plaintext []byte

	// Err wraps ErrAuthentication or ErrMalformedToken, nil on Success
	Err error
}

// OK reports whether the decryption succeeded.
func (r Result) OK() bool {
	return r.Outcome == Success
}

func succeeded(plaintext []byte) Result {
	if plaintext == nil {
		plaintext = []byte{}
	}

	return Result{Outcome: Success, Plaintext: plaintext}
}

func failed(outcome Outcome, err error) Result {
	return Result{Outcome: outcome, Err: err}
}
