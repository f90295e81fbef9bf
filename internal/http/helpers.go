package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-salepage/internal/catalog"
	"github.com/goliatone/go-salepage/internal/document"
	"github.com/goliatone/go-salepage/internal/importer"
)

const (
	codeNotFound     = "NOT_FOUND"
	codeInvalidInput = "INVALID_INPUT"
	codeInternal     = "INTERNAL_ERROR"
)

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func readAll(r *http.Request) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, io.EOF
	}
	return io.ReadAll(r.Body)
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(wrapError(err))
	writeJSON(w, status, payload)
}

// wrapError classifies service errors at the transport boundary. Errors the
// services already wrapped pass through untouched.
func wrapError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	switch {
	case errors.Is(err, document.ErrBlockNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "resource not found").
			WithTextCode(codeNotFound)
	case errors.Is(err, document.ErrBlockTypeUnknown),
		errors.Is(err, document.ErrBlockVariantChanged),
		errors.Is(err, document.ErrNotProductGrid),
		errors.Is(err, document.ErrProductIndexOutOfRange),
		errors.Is(err, document.ErrProjectInvalid),
		errors.Is(err, catalog.ErrShopRequired),
		errors.Is(err, catalog.ErrNoDataset),
		errors.Is(err, importer.ErrEmptyFile),
		isValidationErrors(err):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid input").
			WithTextCode(codeInvalidInput)
	default:
		return goerrors.Wrap(err, goerrors.CategoryInternal, "operation failed").
			WithTextCode(codeInternal)
	}
}

func isValidationErrors(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	switch {
	case goerrors.IsCategory(err, goerrors.CategoryNotFound):
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Code:    codeNotFound,
			Message: err.Error(),
		}
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Code:    codeInvalidInput,
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorResponse{
			Error:   "internal_error",
			Code:    codeInternal,
			Message: err.Error(),
		}
	}
}
