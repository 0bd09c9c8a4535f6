package maintenance

import (
	"encoding/json"
	"net/http"
)

// DatabaseResetter destroys and recreates the schema from the
// migration sequence, seed data included, and invalidates every cache
// that held entities from the old schema.
type DatabaseResetter interface {
	ResetDatabase() error
}

type MaintenanceHandler struct {
	resetter DatabaseResetter
}

func NewMaintenanceHandler(r DatabaseResetter) *MaintenanceHandler {
	return &MaintenanceHandler{resetter: r}
}

func (h *MaintenanceHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.resetter.ResetDatabase(); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Database reset successfully",
	})
}
