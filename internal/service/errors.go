package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/auth"
	"github.com/mmynk/splitcollect/internal/storage"
)

// toConnectError maps core errors onto Connect codes. Anything unrecognized
// is logged and reported as internal.
func toConnectError(logger *slog.Logger, op string, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrAllocationOverflow),
		errors.Is(err, apperrors.ErrInvalidCode):
		code = connect.CodeInvalidArgument
	case errors.Is(err, apperrors.ErrDuplicateReference),
		errors.Is(err, auth.ErrEmailExists):
		code = connect.CodeAlreadyExists
	case errors.Is(err, apperrors.ErrAlreadyDeclared):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrStatusConflict):
		code = connect.CodeAborted
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		logger.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
	return connect.NewError(code, err)
}

func permissionDenied(what string) error {
	return connect.NewError(connect.CodePermissionDenied, errors.New(what+" belongs to another collector"))
}
