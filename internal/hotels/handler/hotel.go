package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rihla/internal/hotels/repository"
	"rihla/internal/hotels/service"
	apperrors "rihla/pkg/errors"
	httputil "rihla/pkg/http"
	"rihla/pkg/logger"
	"rihla/pkg/middleware"
	"rihla/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type HotelHandler struct {
	service service.HotelService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewHotelHandler(service service.HotelService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var hotel model.Hotel
	if err := json.NewDecoder(r.Body).Decode(&hotel); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.CreateHotel(r.Context(), &hotel); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, hotel)
}

func (h *HotelHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	filter := repository.HotelFilter{City: r.URL.Query().Get("city")}
	if starsStr := r.URL.Query().Get("min_stars"); starsStr != "" {
		stars, err := strconv.Atoi(starsStr)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput("invalid min_stars parameter: "+starsStr))
			return
		}
		filter.MinStars = stars
	}

	hotels, total, err := h.service.ListHotels(r.Context(), filter, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, hotels, total, limit, int(offset))
}

func (h *HotelHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hotel, err := h.service.GetHotel(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, hotel)
}

func (h *HotelHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.HotelSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	hotels, err := h.service.SearchHotels(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, hotels)
}

func (h *HotelHandler) CreateRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var room model.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.CreateRoom(r.Context(), &room); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, room)
}

func (h *HotelHandler) ListRooms(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rooms, err := h.service.ListRooms(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rooms)
}

func (h *HotelHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.HotelBooking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.CreateBooking(r.Context(), middleware.CallerID(r.Context()), &booking); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, booking)
}

func (h *HotelHandler) ListMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.ListMyBookings(r.Context(), middleware.CallerID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, bookings)
}

func (h *HotelHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/hotels", h.auth(h.Create))
	router.GET("/api/hotels", h.List)
	router.GET("/api/hotels/:id", h.GetByID)
	router.POST("/api/search/hotels", h.Search)
	router.POST("/api/rooms", h.auth(h.CreateRoom))
	router.GET("/api/rooms/hotel/:id", h.ListRooms)
	router.POST("/api/bookings", h.auth(h.CreateBooking))
	router.GET("/api/bookings/me", h.auth(h.ListMyBookings))
}
