package httperr

import "errors"

// Business error codes shared between use cases and handlers.
const (
	CodeExistingAppointment = "existing_appointment"
	CodeNotFound            = "not_found"
	CodeInvalidUpload       = "unsupported_file_type"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
