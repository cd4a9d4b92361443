package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"notes/notes/utils/apierror"
	"notes/notes/utils/logging"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			var resp apierror.ErrorResponse
			if !errors.As(err, &resp) && status < http.StatusInternalServerError {
				// untyped client errors keep the status the handler chose
				err = apierror.NewSimple(status, http.StatusText(status))
			}
			writeError(w, r, err)
			return
		}
		writeJSON(w, status, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.ErrorLogger.Error("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := apierror.From(err)
	if resp.Code() >= http.StatusInternalServerError {
		logging.ErrorLogger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	writeJSON(w, resp.Code(), resp)
}

// decodeBody reads a single JSON value into dst. Type mismatches are reported
// against the offending field.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return apierror.MissingBodyError
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apierror.NewInvalidParamTypeError(field, "a "+jsonKind(typeErr.Type.Kind().String()))
	case errors.As(err, &maxErr):
		return apierror.NewSimple(http.StatusRequestEntityTooLarge, "Request body is too large")
	default:
		return apierror.MalformedJSONError
	}
}

func jsonKind(goKind string) string {
	switch goKind {
	case "bool":
		return "boolean"
	case "string":
		return "string"
	case "int", "int64", "int32", "float64":
		return "number"
	default:
		return "JSON " + goKind
	}
}

// queryInt parses an optional integer query parameter; empty yields fallback.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError(name, "an integer")
	}
	return n, nil
}
