package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"taskflow/internal/handlers/dto"
	"taskflow/internal/logger"
	"taskflow/internal/service"

	"go.uber.org/zap"
)

func (h *TaskHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	users := h.Service.Users()

	logger.Info("HTTP_OUT: users listed",
		zap.Int("count", len(users)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("users", dto.FromUserList(users)))
}

func (h *TaskHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	contacts := h.Service.Contacts()

	logger.Info("HTTP_OUT: contacts listed",
		zap.Int("count", len(contacts)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("contacts", dto.FromContactList(contacts)))
}

func (h *TaskHandler) PostContact(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: wrong content type",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	contact, err := h.Service.CreateContact(r.Context(), viewerFrom(r), service.ContactInput{
		Name:              request.Name,
		Email:             request.Email,
		Phone:             request.Phone,
		Address:           request.Address,
		CompanyName:       request.CompanyName,
		DateOfBirth:       request.DateOfBirth,
		DateOfAnniversary: request.DateOfAnniversary,
		Categories:        request.Categories,
	})
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "create_contact"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: contact created",
		zap.String("contact_id", contact.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("contact", dto.FromContact(*contact)))
}

func (h *TaskHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	categories := h.Service.Categories()

	logger.Info("HTTP_OUT: categories listed",
		zap.Int("count", len(categories)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("categories", categories))
}
