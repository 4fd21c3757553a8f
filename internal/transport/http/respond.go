package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/pagination"
	"github.com/gumwoo/umc-pr/internal/validation"
	"github.com/gumwoo/umc-pr/pkg/logger/sl"
)

const (
	resultSuccess = "SUCCESS"
	resultFail    = "FAIL"
)

// envelope is the body of every response, successful or not.
type envelope struct {
	ResultType string     `json:"resultType"`
	Error      *errorBody `json:"error"`
	Success    any        `json:"success"`
}

type errorBody struct {
	ErrorCode string         `json:"errorCode"`
	Reason    string         `json:"reason"`
	Data      map[string]any `json:"data"`
}

type listPayload[T any] struct {
	Data       []T            `json:"data"`
	Pagination pageCursorBody `json:"pagination"`
}

type pageCursorBody struct {
	Cursor *int64 `json:"cursor"`
}

func newListPayload[S, T any](page pagination.Page[S], convert func(S) T) listPayload[T] {
	data := make([]T, len(page.Items))
	for i, item := range page.Items {
		data[i] = convert(item)
	}

	return listPayload[T]{Data: data, Pagination: pageCursorBody{Cursor: page.NextCursor}}
}

func (s *Server) write(w http.ResponseWriter, code int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", sl.Err(err))
	}
}

// respond writes a SUCCESS envelope around payload.
func (s *Server) respond(w http.ResponseWriter, code int, payload any) {
	s.write(w, code, envelope{ResultType: resultSuccess, Success: payload})
}

// respondError writes a FAIL envelope for err. Errors without a domain kind are
// reported as a database failure and their text never reaches the client.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperrors.KindUnknown {
		appErr = apperrors.New(apperrors.KindDatabase, "", nil)
	}

	s.write(w, appErr.Kind.Status(), envelope{
		ResultType: resultFail,
		Error: &errorBody{
			ErrorCode: appErr.Kind.Code(),
			Reason:    appErr.Reason,
			Data:      appErr.Data,
		},
	})
}

// handleServiceError logs err with the handler op and writes the error envelope.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)

	if kind := apperrors.KindOf(err); kind == apperrors.KindUnknown || kind.Status() >= http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Info("request rejected", slog.String("code", kind.Code()), sl.Err(err))
	}

	s.respondError(w, err)
}

// decodeAndValidate reads a JSON body into v and validates it. Both kinds of
// failure are reported as kind, with validator messages in data.fields.
func (s *Server) decodeAndValidate(r *http.Request, v any, kind apperrors.Kind) error {
	if err := s.decode(r.Body, v); err != nil {
		return apperrors.Wrap(kind, err, "malformed request body", nil)
	}

	if err := validation.ValidateStruct(v); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			return verr.AsKind(kind)
		}

		return apperrors.Wrap(kind, err, "", nil)
	}

	return nil
}

func (s *Server) decode(body io.ReadCloser, v any) error {
	defer body.Close()

	return json.NewDecoder(body).Decode(v)
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.New(apperrors.KindInvalidRequest, name+" must be a positive integer",
			map[string]any{name: raw})
	}

	return id, nil
}

func (s *Server) pageQuery(r *http.Request) (pagination.Request, error) {
	q := r.URL.Query()
	return pagination.ParseQuery(q.Get("cursor"), q.Get("limit"), s.opts.DefaultLimit)
}

// caller returns the principal set by the principal middleware.
func caller(r *http.Request) (domain.Principal, error) {
	p, ok := principalFrom(r.Context())
	if !ok {
		return domain.Principal{}, apperrors.New(apperrors.KindAuthentication, "caller is not identified", nil)
	}

	return p, nil
}
