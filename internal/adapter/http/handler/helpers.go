package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/demobank/demobank/internal/adapter/http/dto"
	"github.com/demobank/demobank/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps a domain error to its HTTP status and the end-user
// message shown by the SPA.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapDomainError(err), userMessage(err), err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmitterNotFound),
		errors.Is(err, domain.ErrReceiverNotFound),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNoCurrentUser):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the localized message the SPA surfaces to end users.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmitterNotFound):
		return "Compte émetteur introuvable."
	case errors.Is(err, domain.ErrReceiverNotFound):
		return "Compte destinataire introuvable."
	case errors.Is(err, domain.ErrSelfTransfer):
		return "Impossible d'effectuer un virement vers le même compte."
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Le montant doit être supérieur à 0."
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Solde insuffisant pour effectuer cette transaction."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Identifiants invalides. Pour la démo, utilisez: 12345678 / 123456"
	case errors.Is(err, domain.ErrInvalidName):
		return "Le nom doit contenir au moins 3 caractères."
	case errors.Is(err, domain.ErrInvalidPassword):
		return "Le mot de passe doit contenir exactement 6 chiffres."
	case errors.Is(err, domain.ErrNoCurrentUser):
		return "Aucun utilisateur connecté."
	case errors.Is(err, domain.ErrAccountNotFound):
		return "Compte introuvable."
	case errors.Is(err, domain.ErrTransactionNotFound):
		return "Transaction introuvable."
	default:
		return "Impossible de réaliser l'opération. Veuillez réessayer plus tard."
	}
}
