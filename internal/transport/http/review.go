package http

import (
	"net/http"

	"github.com/gumwoo/umc-pr/internal/apperrors"
)

func (s *Server) CreateStoreReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CreateStoreReview"

	storeID, err := pathID(r, "storeId")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req reviewBody
	if err := s.decodeAndValidate(r, &req, apperrors.KindInvalidRequest); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.createReview(w, r, op, req, storeID)
}

func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CreateReview"

	var req createReviewRequest
	if err := s.decodeAndValidate(r, &req, apperrors.KindInvalidRequest); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.createReview(w, r, op, req.reviewBody, req.StoreID)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request, op string, body reviewBody, storeID int64) {
	principal, err := caller(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	review, err := s.reviewService.CreateReview(r.Context(), principal, body.toDomain(storeID))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, toReviewResponse(*review))
}

func (s *Server) ListStoreReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ListStoreReviews"

	storeID, err := pathID(r, "storeId")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	page, err := s.pageQuery(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	reviews, err := s.reviewService.ListStoreReviews(r.Context(), storeID, page)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, newListPayload(reviews, toReviewResponse))
}

func (s *Server) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ListMyReviews"

	principal, err := caller(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	page, err := s.pageQuery(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	reviews, err := s.reviewService.ListMyReviews(r.Context(), principal, page)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, newListPayload(reviews, toReviewResponse))
}
