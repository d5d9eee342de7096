package handler

import (
	"log/slog"
	"net/http"

	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/petpawtner/petpawtner/internal/ui"
	"github.com/petpawtner/petpawtner/internal/ui/pages"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.searchService.Search(query)
	if err != nil {
		slog.Error("search failed", "error", err, "query", query)
		http.Error(w, "Search failed", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.SearchResults(query, results.Pets, results.Vets))
}
