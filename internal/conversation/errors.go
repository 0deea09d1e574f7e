package conversation

import "errors"

var (
	ErrPriming      = errors.New("conversation: priming failed")
	ErrBackend      = errors.New("conversation: backend call failed")
	ErrEmptyBackend = errors.New("conversation: backend returned no response")
)
