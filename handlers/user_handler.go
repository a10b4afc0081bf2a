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

type UserHandler struct {
	service *application.UserService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewUserHandler(service *application.UserService, tracer trace.Tracer, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *UserHandler) Init(router *mux.Router) {
	router.HandleFunc("/users", handler.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/users", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", handler.Get).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", handler.Update).Methods(http.MethodPut)
	router.HandleFunc("/users/{id}", handler.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/users/{id}/favorites", handler.AddFavorite).Methods(http.MethodPost)
}

func (handler *UserHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.GetAll")
	defer span.End()

	users, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusOK, apiResponse{
		Success: true,
		Count:   countOf(len(users)),
		Data:    users,
	})
}

func (handler *UserHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Get")
	defer span.End()

	profile, err := handler.service.Get(ctx, mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusOK, apiResponse{Success: true, Data: profile})
}

func (handler *UserHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Create")
	defer span.End()

	var user domain.User
	if err := user.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(ctx, &user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusCreated, apiResponse{
		Success: true,
		Message: "user account created successfully",
		Data:    created,
	})
}

func (handler *UserHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Update")
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
		Message: "user updated successfully",
		Data:    updated,
	})
}

func (handler *UserHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Delete")
	defer span.End()

	if err := handler.service.Delete(ctx, mux.Vars(req)["id"]); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusOK, apiResponse{
		Success: true,
		Message: "user deleted successfully",
		Data:    struct{}{},
	})
}

type favoriteRequest struct {
	GymID string `json:"gymId"`
}

func (handler *UserHandler) AddFavorite(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.AddFavorite")
	defer span.End()

	var payload favoriteRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := handler.service.AddFavorite(ctx, mux.Vars(req)["id"], payload.GymID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	jsonResponse(writer, http.StatusOK, apiResponse{
		Success: true,
		Message: "gym added to favorites",
		Data:    user,
	})
}
