package apperr

import (
	"errors"

	"github.com/tuanvumaihuynh/product-report/pkg/zerror"
)

const (
	ValidationErrorCode  = "VALIDATION_FAILED"
	StoreUnavailableCode = "STORE_UNAVAILABLE"
	QueryFailedCode      = "QUERY_FAILED"
	SeedFailedCode       = "SEED_FAILED"
)

var (
	ValidationErr       = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	StoreUnavailableErr = zerror.NewServiceUnavailable(StoreUnavailableCode, "cannot open store session")
	QueryFailedErr      = zerror.NewInternalServerError(QueryFailedCode, "report query failed")
	SeedFailedErr       = zerror.NewInternalServerError(SeedFailedCode, "loading sample products failed")
)

// Exit codes follow sysexits(3).
const (
	ExitFailure     = 1
	ExitUsage       = 64
	ExitUnavailable = 69
	ExitSoftware    = 70
)

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	var zErr zerror.ZError
	if !errors.As(err, &zErr) {
		return ExitFailure
	}

	return ZErrorStatusToExitCode(zErr.Status())
}

func ZErrorStatusToExitCode(status zerror.Status) int {
	switch status {
	case zerror.StatusValidationFailed:
		return ExitUsage
	case zerror.StatusServiceUnavailable:
		return ExitUnavailable
	case zerror.StatusInternalServerError:
		return ExitSoftware
	case zerror.StatusUnknown:
		return ExitFailure
	default:
		return ExitFailure
	}
}
