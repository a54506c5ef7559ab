package httpapi

import (
	"net/http"
	"time"

	"github.com/vladislavdragonenkov/burger-oms/internal/usecase"
)

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateUserInput
	if err := decodeJSON(w, r, usecase.SchemaUserCreate, &in); err != nil {
		respondOutcome(w, err)
		return
	}

	started := time.Now()
	user, err := h.uc.CreateUser.Execute(r.Context(), &in)
	h.observe("create_user", started, err)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUser(user))
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateSessionInput
	if err := decodeJSON(w, r, usecase.SchemaSessionCreate, &in); err != nil {
		respondOutcome(w, err)
		return
	}

	started := time.Now()
	session, err := h.uc.CreateSession.Execute(r.Context(), &in)
	h.observe("create_session", started, err)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{
		userResponse: toUser(session.User),
		Token:        session.Token,
	})
}
