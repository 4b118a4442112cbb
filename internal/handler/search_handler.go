package handler

import (
	"net/http"
	"strings"

	"devdesk-server/internal/service"
	"devdesk-server/pkg/response"
)

type SearchHandler struct {
	searchService *service.SearchService
	browseService *service.BrowseService
}

func NewSearchHandler(searchService *service.SearchService, browseService *service.BrowseService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		browseService: browseService,
	}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := query.Get("q")
	if q == "" {
		response.BadRequest(w, "Query parameter q is required")
		return
	}

	recursive := true
	if raw := query.Get("recursive"); raw != "" {
		parsed, ok := parseFlag(raw)
		if !ok {
			response.BadRequest(w, "recursive must be true or false")
			return
		}
		recursive = parsed
	}

	root := h.searchService.ResolveRoot(query.Get("folder_path"))

	results, err := h.searchService.Search(r.Context(), q, root, recursive)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, results)
}

func (h *SearchHandler) Browse(w http.ResponseWriter, r *http.Request) {
	result, err := h.browseService.Browse(r.URL.Query().Get("path"))
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, result)
}

// parseFlag accepts the boolean spellings web clients commonly send.
func parseFlag(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true
	case "0", "f", "false", "n", "no", "off":
		return false, true
	}
	return false, false
}
