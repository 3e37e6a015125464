package handler

import (
	"encoding/json"
	"net/http"

	"rihla/internal/reservations/service"
	httputil "rihla/pkg/http"
	"rihla/pkg/logger"
	"rihla/pkg/middleware"
	"rihla/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *ReservationHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.TicketBooking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Book(r.Context(), middleware.CallerID(r.Context()), &booking); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, booking)
}

func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	views, err := h.service.ListMine(r.Context(), middleware.CallerID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, views)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.Cancel(r.Context(), middleware.CallerID(r.Context()), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bus/bookings", h.auth(h.Book))
	router.GET("/api/bus/bookings/me", h.auth(h.ListMine))
	router.PUT("/api/bus/bookings/:id/cancel", h.auth(h.Cancel))
}
