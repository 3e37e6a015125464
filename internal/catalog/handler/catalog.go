package handler

import (
	"encoding/json"
	"net/http"

	"rihla/internal/catalog/service"
	httputil "rihla/pkg/http"
	"rihla/pkg/logger"
	"rihla/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CatalogHandler struct {
	service service.CatalogService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *CatalogHandler) CreateCompany(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var company model.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.CreateCompany(r.Context(), &company); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, company)
}

func (h *CatalogHandler) ListCompanies(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	companies, total, err := h.service.ListCompanies(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, companies, total, limit, int(offset))
}

func (h *CatalogHandler) CreateRoute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var route model.Route
	if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.CreateRoute(r.Context(), &route); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, route)
}

func (h *CatalogHandler) ListRoutes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	routes, total, err := h.service.ListRoutes(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, routes, total, limit, int(offset))
}

func (h *CatalogHandler) CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var trip model.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.CreateTrip(r.Context(), &trip); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, trip)
}

func (h *CatalogHandler) GenerateSeats(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	seats, err := h.service.GenerateSeats(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, seats)
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.TripSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	results, err := h.service.Search(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, results)
}

func (h *CatalogHandler) GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	detail, err := h.service.GetTrip(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, detail)
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bus/companies", h.auth(h.CreateCompany))
	router.GET("/api/bus/companies", h.ListCompanies)
	router.POST("/api/bus/routes", h.auth(h.CreateRoute))
	router.GET("/api/bus/routes", h.ListRoutes)
	router.POST("/api/bus/trips", h.auth(h.CreateTrip))
	router.POST("/api/bus/trips/:id/seats", h.auth(h.GenerateSeats))
	router.POST("/api/bus/search", h.Search)
	router.GET("/api/bus/trips/:id", h.GetTrip)
}
