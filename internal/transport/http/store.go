package http

import (
	"net/http"

	"github.com/gumwoo/umc-pr/internal/apperrors"
)

func (s *Server) ListRegions(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ListRegions"

	regions, err := s.storeService.ListRegions(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	resp := make([]regionResponse, len(regions))
	for i, region := range regions {
		resp[i] = toRegionResponse(region)
	}

	s.respond(w, http.StatusOK, resp)
}

func (s *Server) ListRegionStores(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ListRegionStores"

	regionID, err := pathID(r, "regionId")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	stores, err := s.storeService.ListRegionStores(r.Context(), regionID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	resp := make([]storeResponse, len(stores))
	for i, store := range stores {
		resp[i] = toStoreResponse(store)
	}

	s.respond(w, http.StatusOK, resp)
}

func (s *Server) CreateRegionStore(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CreateRegionStore"

	regionID, err := pathID(r, "regionId")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req storeBody
	if err := s.decodeAndValidate(r, &req, apperrors.KindInvalidRequest); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.createStore(w, r, op, req, regionID)
}

func (s *Server) CreateStore(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CreateStore"

	var req createStoreRequest
	if err := s.decodeAndValidate(r, &req, apperrors.KindInvalidRequest); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.createStore(w, r, op, req.storeBody, req.RegionID)
}

func (s *Server) createStore(w http.ResponseWriter, r *http.Request, op string, body storeBody, regionID int64) {
	store, err := s.storeService.CreateStore(r.Context(), body.toDomain(regionID))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, toStoreResponse(*store))
}

func (s *Server) GetStore(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetStore"

	storeID, err := pathID(r, "storeId")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	store, err := s.storeService.GetStore(r.Context(), storeID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toStoreResponse(*store))
}
