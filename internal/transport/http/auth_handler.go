package http

import (
	"net/http"

	"campusswap/internal/dto"
	"campusswap/internal/httpx"
	"campusswap/internal/service"
)

type authHandler struct {
	auth service.AuthService
}

var authMessages = messages{validation: msgCredentialsRequired}

func (h authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, msgBadBody)
		return
	}
	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err, authMessages)
		return
	}
	httpx.JSON(w, http.StatusCreated, res)
}

func (h authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, msgBadBody)
		return
	}
	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err, authMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
