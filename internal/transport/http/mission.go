package http

import (
	"net/http"

	"github.com/gumwoo/umc-pr/internal/apperrors"
)

func (s *Server) CreateStoreMission(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CreateStoreMission"

	storeID, err := pathID(r, "storeId")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req missionBody
	if err := s.decodeAndValidate(r, &req, apperrors.KindInvalidRequest); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.createMission(w, r, op, req, storeID)
}

func (s *Server) CreateMission(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CreateMission"

	var req createMissionRequest
	if err := s.decodeAndValidate(r, &req, apperrors.KindInvalidRequest); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.createMission(w, r, op, req.missionBody, req.StoreID)
}

func (s *Server) createMission(w http.ResponseWriter, r *http.Request, op string, body missionBody, storeID int64) {
	mission, err := s.missionService.CreateMission(r.Context(), body.toDomain(storeID))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, toMissionResponse(*mission))
}

func (s *Server) ListStoreMissions(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ListStoreMissions"

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

	missions, err := s.missionService.ListStoreMissions(r.Context(), storeID, page)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, newListPayload(missions, toMissionResponse))
}

func (s *Server) ListMyChallenges(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ListMyChallenges"

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

	challenges, err := s.missionService.ListMyChallenges(r.Context(), principal, page)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, newListPayload(challenges, toChallengeResponse))
}

func (s *Server) StartChallenge(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.StartChallenge"

	s.startChallenge(w, r, op)
}

// StartMemberChallenge is the member-scoped form of StartChallenge. The member in
// the path must be the caller.
func (s *Server) StartMemberChallenge(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.StartMemberChallenge"

	memberID, err := pathID(r, "memberId")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	principal, err := caller(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if memberID != principal.UserID {
		s.handleServiceError(w, r, op, apperrors.New(apperrors.KindPermissionDenied,
			"cannot start a challenge for another member", map[string]any{"memberId": memberID}))
		return
	}

	s.startChallenge(w, r, op)
}

func (s *Server) startChallenge(w http.ResponseWriter, r *http.Request, op string) {
	missionID, err := pathID(r, "missionId")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	principal, err := caller(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	challenge, err := s.missionService.StartChallenge(r.Context(), principal, missionID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, toChallengeResponse(*challenge))
}

func (s *Server) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CompleteChallenge"

	challengeID, err := pathID(r, "challengeId")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	principal, err := caller(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	challenge, err := s.missionService.CompleteChallenge(r.Context(), principal, challengeID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toChallengeResponse(*challenge))
}
