package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	application "gym_service/service"
)

type GymHandler struct {
	service *application.GymService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewGymHandler(service *application.GymService, tracer trace.Tracer, logger *logrus.Logger) *GymHandler {
	return &GymHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *GymHandler) Init(router *mux.Router) {
	router.HandleFunc("/gyms", handler.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/gyms", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/gyms/{id}", handler.Get).Methods(http.MethodGet)
	router.HandleFunc("/gyms/{id}", handler.Update).Methods(http.MethodPut)
	router.HandleFunc("/gyms/{id}", handler.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/gyms/{id}/reviews", handler.AddReview).Methods(http.MethodPost)
}

// GetAll lists gyms with the optional filter and sort query parameters:
// filterBy=Showers, brand, size, equipmentType, sortBy.
func (handler *GymHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "GymHandler.GetAll")
	defer span.End()

	query := req.URL.Query()
	filter := domain.GymFilter{
		Showers:       query.Get("filterBy") == "Showers",
		Brand:         query.Get("brand"),
		Size:          query.Get("size"),
		EquipmentType: query.Get("equipmentType"),
	}

	gyms, err := handler.service.GetAll(ctx, filter, query.Get("sortBy"))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusOK, apiResponse{
		Success: true,
		Count:   countOf(len(gyms)),
		Data:    gyms,
	})
}

func (handler *GymHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "GymHandler.Get")
	defer span.End()

	gym, err := handler.service.Get(ctx, mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusOK, apiResponse{Success: true, Data: gym})
}

func (handler *GymHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "GymHandler.Create")
	defer span.End()

	var gym domain.Gym
	if err := gym.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(ctx, &gym)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusCreated, apiResponse{
		Success: true,
		Message: "gym created successfully",
		Data:    created,
	})
}

func (handler *GymHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "GymHandler.Update")
	defer span.End()

	var fields map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&fields); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(ctx, mux.Vars(req)["id"], fields)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusOK, apiResponse{
		Success: true,
		Message: "gym updated successfully",
		Data:    updated,
	})
}

func (handler *GymHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "GymHandler.Delete")
	defer span.End()

	if err := handler.service.Delete(ctx, mux.Vars(req)["id"]); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusOK, apiResponse{
		Success: true,
		Message: "gym deleted successfully",
		Data:    struct{}{},
	})
}

type reviewRequest struct {
	UserID  string `json:"userId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (handler *GymHandler) AddReview(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "GymHandler.AddReview")
	defer span.End()

	var payload reviewRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	gym, err := handler.service.AddReview(ctx, mux.Vars(req)["id"], payload.UserID, payload.Rating, payload.Comment)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusCreated, apiResponse{
		Success: true,
		Message: "review added successfully",
		Data:    gym,
	})
}
