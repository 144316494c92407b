package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"flower-backend/internal/apperr"
	"flower-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// decodeJSON parses the request body into dst and reports malformed input as
// a VALIDATION error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.Error(w, http.StatusBadRequest, "VALIDATION", "invalid JSON body")
		return false
	}
	return true
}

// pathID extracts the {id} route variable.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "VALIDATION", "invalid id")
		return 0, false
	}
	return id, true
}

// writeErr maps a service error to the wire error shape.
func writeErr(w http.ResponseWriter, err error) {
	ae := apperr.From(err)
	utils.Error(w, ae.Status, ae.Code, ae.Message)
}

// pageParams parses ?page= and ?per_page= with the list defaults.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

// queryInt parses an optional positive integer query param; 0 means absent.
func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	if n < 0 {
		return 0
	}
	return n
}
