package http

import (
	"net/http"

	"github.com/gumwoo/umc-pr/internal/apperrors"
)

func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.SignUp"

	var req signUpRequest
	if err := s.decodeAndValidate(r, &req, apperrors.KindInvalidUserData); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.userService.SignUp(r.Context(), req.toDomain())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, toUserResponse(*user))
}
