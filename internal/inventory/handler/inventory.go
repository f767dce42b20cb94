package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"hostelhub/internal/inventory/service"
	apperrors "hostelhub/pkg/errors"
	httputil "hostelhub/pkg/http"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type InventoryHandler struct {
	service service.InventoryService
	log     *logger.Logger
}

func NewInventoryHandler(service service.InventoryService, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		log:     log,
	}
}

func (h *InventoryHandler) CreateHostels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var batch []model.HostelCreate
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		h.writeError(w, "CreateHostels", apperrors.InvalidInput("Invalid request body"))
		return
	}

	hostels, err := h.service.CreateHostels(r.Context(), batch)
	if err != nil {
		h.writeError(w, "CreateHostels", err)
		return
	}

	if err := httputil.WriteCreated(w, hostels); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateHostels", "error", err)
	}
}

func (h *InventoryHandler) ListHostels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hostels, err := h.service.ListHostels(r.Context())
	if err != nil {
		h.writeError(w, "ListHostels", err)
		return
	}

	if err := httputil.WriteSuccess(w, hostels); err != nil {
		h.log.Error("failed to write success response", "handler", "ListHostels", "error", err)
	}
}

func (h *InventoryHandler) CreateRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var batch []model.RoomCreate
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		h.writeError(w, "CreateRooms", apperrors.InvalidInput("Invalid request body"))
		return
	}

	rooms, err := h.service.CreateRooms(r.Context(), batch)
	if err != nil {
		h.writeError(w, "CreateRooms", err)
		return
	}

	if err := httputil.WriteCreated(w, rooms); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateRooms", "error", err)
	}
}

func (h *InventoryHandler) ListRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var hostelID *int
	if s := r.URL.Query().Get("hostel_id"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			h.writeError(w, "ListRooms", apperrors.InvalidInput(fmt.Sprintf("invalid hostel_id parameter: %s", s)))
			return
		}
		hostelID = &v
	}

	rooms, err := h.service.ListRooms(r.Context(), hostelID)
	if err != nil {
		h.writeError(w, "ListRooms", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "ListRooms", "error", err)
	}
}

func (h *InventoryHandler) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetRoom", apperrors.InvalidInput("Room ID must be an integer"))
		return
	}

	room, err := h.service.FindRoom(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetRoom", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRoom", "error", err)
	}
}

func (h *InventoryHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *InventoryHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/hostels", h.CreateHostels)
	router.GET("/hostels", h.ListHostels)
	router.POST("/rooms", h.CreateRooms)
	router.GET("/rooms", h.ListRooms)
	router.GET("/rooms/:id", h.GetRoom)
}
