package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/goliatone/go-salepage/internal/catalog"
	"github.com/goliatone/go-salepage/internal/document"
	"github.com/goliatone/go-salepage/internal/report"
)

func parseBlockID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a block id", document.ErrBlockNotFound, r.PathValue("id"))
	}
	return id, nil
}

func parseIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", document.ErrProductIndexOutOfRange, r.PathValue("index"))
	}
	return index, nil
}

func (api *EditorAPI) writeDocument(w http.ResponseWriter, status int, doc *document.Document) {
	data, err := document.SaveProject(doc, api.clock())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (api *EditorAPI) handleDocumentGet(w http.ResponseWriter, _ *http.Request) {
	api.writeDocument(w, http.StatusOK, api.snapshot())
}

func (api *EditorAPI) handleShopSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShopID string `json:"shopId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	doc, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		next := doc.Clone()
		next.ShopID = req.ShopID
		return next, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.writeDocument(w, http.StatusOK, doc)
}

func (api *EditorAPI) handlePopupSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PopupImage string `json:"popupImage"`
		PopupLink  string `json:"popupLink"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	doc, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		next := doc.Clone()
		next.PopupImage = req.PopupImage
		next.PopupLink = req.PopupLink
		return next, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.writeDocument(w, http.StatusOK, doc)
}

func (api *EditorAPI) handleBlockAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type document.BlockType `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}

	var added document.Block
	_, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		next, block, err := api.documents.AddBlock(r.Context(), doc, req.Type)
		added = block
		return next, err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	encoded, err := document.EncodeBlock(added)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, encoded)
}

func (api *EditorAPI) handleBlockUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseBlockID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer r.Body.Close()
	raw, err := readAll(r)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	replacement, err := document.DecodeBlock(raw)
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		return api.documents.UpdateBlock(r.Context(), doc, id, func(document.Block) (document.Block, error) {
			return replacement, nil
		})
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.writeDocument(w, http.StatusOK, doc)
}

func (api *EditorAPI) handleBlockRemove(w http.ResponseWriter, r *http.Request) {
	id, err := parseBlockID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		return api.documents.RemoveBlock(r.Context(), doc, id)
	}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *EditorAPI) handleBlockMove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index     int `json:"index"`
		Direction int `json:"direction"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	doc, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		return api.documents.MoveBlock(r.Context(), doc, req.Index, req.Direction)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.writeDocument(w, http.StatusOK, doc)
}

func (api *EditorAPI) handleBannerHeader(w http.ResponseWriter, r *http.Request) {
	id, err := parseBlockID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		HTML     string `json:"html"`
		Markdown string `json:"markdown"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	doc, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		return api.documents.SetBannerHeader(r.Context(), doc, id, document.HeaderInput{
			HTML:     req.HTML,
			Markdown: req.Markdown,
		})
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.writeDocument(w, http.StatusOK, doc)
}

func (api *EditorAPI) handleProductAdd(w http.ResponseWriter, r *http.Request) {
	id, err := parseBlockID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		List string `json:"list"`
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	doc, err := api.update(func(doc *document.Document, dataset *catalog.Dataset) (*document.Document, error) {
		return api.documents.AddProduct(r.Context(), doc, id, document.ProductList(req.List), req.Code, dataset)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.writeDocument(w, http.StatusOK, doc)
}

func (api *EditorAPI) handleProductReplace(w http.ResponseWriter, r *http.Request) {
	id, err := parseBlockID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := parseIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		List string `json:"list"`
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	doc, err := api.update(func(doc *document.Document, dataset *catalog.Dataset) (*document.Document, error) {
		return api.documents.ReplaceProduct(r.Context(), doc, id, document.ProductList(req.List), index, req.Code, dataset)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.writeDocument(w, http.StatusOK, doc)
}

func (api *EditorAPI) handleProductRemove(w http.ResponseWriter, r *http.Request) {
	id, err := parseBlockID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := parseIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}
	list := document.ProductList(r.URL.Query().Get("list"))
	if _, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		return api.documents.RemoveProduct(r.Context(), doc, id, list, index)
	}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *EditorAPI) handleProductComment(w http.ResponseWriter, r *http.Request) {
	id, err := parseBlockID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := parseIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		List    string `json:"list"`
		Comment string `json:"comment"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	doc, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		return api.documents.SetProductComment(r.Context(), doc, id, document.ProductList(req.List), index, req.Comment)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.writeDocument(w, http.StatusOK, doc)
}

func (api *EditorAPI) handleProductMove(w http.ResponseWriter, r *http.Request) {
	id, err := parseBlockID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := parseIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Direction int `json:"direction"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	doc, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		return api.documents.MoveGridProduct(r.Context(), doc, id, index, req.Direction)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.writeDocument(w, http.StatusOK, doc)
}

// handleCatalogUpload ingests a price-list CSV as the request body. With
// ?refresh=true every placed product is re-resolved against the new data.
func (api *EditorAPI) handleCatalogUpload(w http.ResponseWriter, r *http.Request) {
	if api.importSvc == nil {
		writeError(w, fmt.Errorf("http: importer not configured"))
		return
	}
	source := r.URL.Query().Get("name")
	if source == "" {
		source = "upload.csv"
	}
	defer r.Body.Close()
	dataset, err := api.importSvc.Parse(r.Body, source, api.encoding)
	if err != nil {
		writeError(w, err)
		return
	}

	refresh := r.URL.Query().Get("refresh") == "true"
	if _, err := api.update(func(doc *document.Document, _ *catalog.Dataset) (*document.Document, error) {
		api.dataset = dataset
		if !refresh {
			return doc, nil
		}
		return api.documents.Refresh(r.Context(), doc, dataset)
	}); err != nil {
		writeError(w, err)
		return
	}

	api.logger.Info("price list uploaded", "source", source, "rows", dataset.Len(), "refresh", refresh)
	writeJSON(w, http.StatusOK, map[string]any{
		"source":    source,
		"rows":      dataset.Len(),
		"refreshed": refresh,
	})
}

func (api *EditorAPI) handleProjectSave(w http.ResponseWriter, _ *http.Request) {
	now := api.clock()
	data, err := document.SaveProject(api.snapshot(), now)
	if err != nil {
		writeError(w, err)
		return
	}
	filename := fmt.Sprintf("rakuten-sale-project_%s.json", now.UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (api *EditorAPI) handleProjectLoad(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	raw, err := readAll(r)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", document.ErrProjectInvalid, err))
		return
	}
	project, err := document.LoadProject(raw)
	if err != nil {
		writeError(w, err)
		return
	}
	doc, err := api.update(func(*document.Document, *catalog.Dataset) (*document.Document, error) {
		return project.Document, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.logger.Info("project loaded", "shop", doc.ShopID, "blocks", len(doc.Blocks), "savedAt", project.SavedAt)
	api.writeDocument(w, http.StatusOK, doc)
}

func (api *EditorAPI) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	if api.generate == nil {
		writeError(w, fmt.Errorf("http: generator not configured"))
		return
	}
	page, err := api.generate.Generate(r.Context(), api.snapshot())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

func (api *EditorAPI) handleExportReport(w http.ResponseWriter, _ *http.Request) {
	data, err := report.ProductList(api.snapshot())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=products.csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
