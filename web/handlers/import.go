package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/solacehq/solace/internal/importer"
)

// ImportHandlers serves the Markdown import route for migrating an
// existing notes folder into the journal.
type ImportHandlers struct {
	importer *importer.Importer
}

// NewImportHandlers creates the import route handlers.
func NewImportHandlers(imp *importer.Importer) *ImportHandlers {
	return &ImportHandlers{importer: imp}
}

type importRequest struct {
	Path string `json:"path"`
}

// PostMarkdownImport handles POST /api/import/markdown. The path must be
// a directory readable by the server process.
func (h *ImportHandlers) PostMarkdownImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}
	if req.Path == "" {
		respondError(w, http.StatusBadRequest, "path is required", nil)
		return
	}
	info, err := os.Stat(req.Path)
	if err != nil || !info.IsDir() {
		respondError(w, http.StatusBadRequest, "path is not a readable directory", err)
		return
	}

	report, err := h.importer.ImportDirectory(r.Context(), UserID(r), req.Path)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "import failed", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
