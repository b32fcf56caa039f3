package handle

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Kind string

const (
	KindMissingField        Kind = "MissingField"
	KindNoFileSelected      Kind = "NoFileSelected"
	KindInvalidFileType     Kind = "InvalidFileType"
	KindFileTooLarge        Kind = "FileTooLarge"
	KindResponseDecodeError Kind = "ResponseDecodeError"
	KindUnexpectedError     Kind = "UnexpectedError"
)

const (
	msgMissingField    = "No image part"
	msgNoFileSelected  = "No selected file"
	msgInvalidFileType = "Invalid file type. Allowed types: jpg, jpeg, png"
	msgFileTooLarge    = "File size exceeds the limit (5MB)"
	msgDecode          = "Failed to process the image. Please try again."
	msgUnexpected      = "An unexpected error occurred. Please try again."
)

// UploadError is what every handler failure is turned into before it
// reaches the client. Only Message is rendered.
type UploadError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *UploadError) Unwrap() error { return e.Err }

func newError(kind Kind, status int, msg string, cause error) *UploadError {
	return &UploadError{Kind: kind, Status: status, Message: msg, Err: cause}
}

func ErrMissingField(cause error) *UploadError {
	return newError(KindMissingField, http.StatusBadRequest, msgMissingField, cause)
}

func ErrNoFileSelected() *UploadError {
	return newError(KindNoFileSelected, http.StatusBadRequest, msgNoFileSelected, nil)
}

func ErrInvalidFileType(filename string) *UploadError {
	return newError(KindInvalidFileType, http.StatusBadRequest, msgInvalidFileType,
		fmt.Errorf("extension of %q is not allowed", filename))
}

func ErrFileTooLarge(limit int64) *UploadError {
	return newError(KindFileTooLarge, http.StatusBadRequest, msgFileTooLarge,
		fmt.Errorf("payload exceeds %d bytes", limit))
}

func ErrResponseDecode(cause error) *UploadError {
	return newError(KindResponseDecodeError, http.StatusInternalServerError, msgDecode, cause)
}

func ErrUnexpected(cause error) *UploadError {
	return newError(KindUnexpectedError, http.StatusInternalServerError, msgUnexpected, cause)
}

// ErrorHandler renders any error as {"error": <message>}.
// Usage: e.HTTPErrorHandler = handle.ErrorHandler(log)
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			ue *UploadError
			he *echo.HTTPError
		)
		switch {
		case errors.As(err, &ue):
		case errors.As(err, &he):
			ue = newError(KindUnexpectedError, he.Code, fmt.Sprint(he.Message), he.Internal)
			if he.Code >= http.StatusInternalServerError {
				ue.Message = msgUnexpected
			}
		default:
			log.Error("unhandled error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
			ue = ErrUnexpected(err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(ue.Status)
		} else {
			err = c.JSON(ue.Status, map[string]string{"error": ue.Message})
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}
