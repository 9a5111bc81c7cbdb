package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mpetrov/gormadmin/core"
	"github.com/mpetrov/gormadmin/filestore"
)

type handlers struct {
	admin *core.Admin
	files *filestore.Manager
	log   zerolog.Logger
}

// viewOr404 resolves the identity route parameter to a registered view.
func (h *handlers) viewOr404(w http.ResponseWriter, r *http.Request) (core.ModelView, bool) {
	identity := chi.URLParam(r, "identity")
	view, ok := h.admin.View(identity)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found")
		return nil, false
	}
	return view, true
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	view, ok := h.viewOr404(w, r)
	if !ok {
		return
	}
	query, err := parseListParams(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := view.Count(r.Context(), query.Where())
	if err != nil {
		writeError(w, err)
		return
	}
	objs, err := view.FindAll(r.Context(), query.Pagination.Offset, query.Pagination.Limit, query.Where(), query.OrderBy())
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(objs))
	for _, obj := range objs {
		item, err := serializeObject(r.Context(), h.admin, h.log, view, obj, core.RequestList)
		if err != nil {
			writeError(w, err)
			return
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

func (h *handlers) detail(w http.ResponseWriter, r *http.Request) {
	view, ok := h.viewOr404(w, r)
	if !ok {
		return
	}
	pk, err := view.ParsePK(chi.URLParam(r, "pk"))
	if err != nil {
		writeError(w, err)
		return
	}

	obj, err := view.FindByPK(r.Context(), pk)
	if err != nil {
		writeError(w, err)
		return
	}
	if obj == nil {
		writeDetail(w, http.StatusNotFound, "Not found")
		return
	}

	item, err := serializeObject(r.Context(), h.admin, h.log, view, obj, core.RequestDetail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	return data, true
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	view, ok := h.viewOr404(w, r)
	if !ok {
		return
	}
	data, ok := decodeBody(w, r)
	if !ok {
		return
	}

	obj, err := view.Create(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := serializeObject(r.Context(), h.admin, h.log, view, obj, core.RequestDetail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *handlers) edit(w http.ResponseWriter, r *http.Request) {
	view, ok := h.viewOr404(w, r)
	if !ok {
		return
	}
	pk, err := view.ParsePK(chi.URLParam(r, "pk"))
	if err != nil {
		writeError(w, err)
		return
	}
	data, ok := decodeBody(w, r)
	if !ok {
		return
	}

	obj, err := view.Edit(r.Context(), pk, data)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := serializeObject(r.Context(), h.admin, h.log, view, obj, core.RequestDetail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *handlers) delete(w http.ResponseWriter, r *http.Request) {
	view, ok := h.viewOr404(w, r)
	if !ok {
		return
	}
	pks, err := parsePKs(r, view)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(pks) == 0 {
		writeDetail(w, http.StatusBadRequest, "no primary keys given")
		return
	}

	deleted, err := view.Delete(r.Context(), pks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (h *handlers) action(w http.ResponseWriter, r *http.Request) {
	view, ok := h.viewOr404(w, r)
	if !ok {
		return
	}
	pks, err := parsePKs(r, view)
	if err != nil {
		writeError(w, err)
		return
	}

	msg, err := view.HandleAction(r.Context(), chi.URLParam(r, "name"), pks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": msg})
}

func (h *handlers) rowAction(w http.ResponseWriter, r *http.Request) {
	view, ok := h.viewOr404(w, r)
	if !ok {
		return
	}
	pk, err := view.ParsePK(chi.URLParam(r, "pk"))
	if err != nil {
		writeError(w, err)
		return
	}

	msg, err := view.HandleRowAction(r.Context(), chi.URLParam(r, "name"), pk)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": msg})
}

// serveFile serves one stored object: local files straight off disk,
// objects with a public URL by redirect, everything else streamed through.
func (h *handlers) serveFile(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		writeDetail(w, http.StatusNotFound, "Not found")
		return
	}
	store := h.files.Store(chi.URLParam(r, "storage"))
	if store == nil {
		writeDetail(w, http.StatusNotFound, "Not found")
		return
	}

	key := chi.URLParam(r, "*")
	file, err := store.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, filestore.ErrFileNotFound) {
			writeDetail(w, http.StatusNotFound, "Not found")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	switch {
	case file.IsLocal():
		http.ServeFile(w, r, file.LocalPath)
	case file.HasPublicURL():
		http.Redirect(w, r, file.PublicURL, http.StatusTemporaryRedirect)
	case file.Stream != nil:
		defer file.Stream.Close()
		w.Header().Set("Content-Type", file.ContentType)
		_, _ = io.Copy(w, file.Stream)
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
