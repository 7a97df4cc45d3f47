package airports

import (
	"log"
	"net/http"

	"skyfare/models"
	"skyfare/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Search handles GET /api/airports?keyword=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		http.Error(w, "missing keyword", http.StatusBadRequest)
		return
	}

	matches, err := h.client.SearchLocations(r.Context(), keyword)
	if err != nil {
		log.Println("airport lookup failed:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "airport lookup failed")
		return
	}
	if matches == nil {
		matches = []models.AirportMatch{}
	}
	utils.RespondWithJSON(w, http.StatusOK, matches)
}
