package handler

import (
	"encoding/json"
	"net/http"

	"rihla/internal/auth/service"
	httputil "rihla/pkg/http"
	"rihla/pkg/logger"
	"rihla/pkg/middleware"
	"rihla/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AuthHandler struct {
	service service.AuthService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, resp)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	view, err := h.service.Me(r.Context(), middleware.CallerID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, view)
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.GET("/api/users/me", h.auth(h.Me))
}
