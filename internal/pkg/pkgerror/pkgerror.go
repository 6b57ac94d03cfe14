package pkgerror

import "errors"

// Code classifies a business error so transports can map it without string
// matching.
type Code int

const (
	CodeUnknown Code = iota
	CodeInvalidInput
	CodeNotFound
	CodeUnauthenticated
	CodeUpstreamUnavailable
	CodeInternal
)

// Business is an error caused by the request itself rather than by the
// process, carrying a machine-readable code alongside the message.
type Business struct {
	Message string
	Code    Code
	err     error
}

func NewBusiness(message string, code Code) *Business {
	return &Business{Message: message, Code: code}
}

// WrapBusiness attaches a cause that survives errors.Is / errors.As chains.
func WrapBusiness(err error, message string, code Code) *Business {
	return &Business{Message: message, Code: code, err: err}
}

func (b *Business) Error() string {
	return b.Message
}

func (b *Business) Unwrap() error {
	return b.err
}

// CodeOf extracts the business code from an error chain, CodeUnknown when the
// chain holds no Business error.
func CodeOf(err error) Code {
	var business *Business
	if errors.As(err, &business) {
		return business.Code
	}
	return CodeUnknown
}
