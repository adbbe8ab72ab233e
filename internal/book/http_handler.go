package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"bookcatalog/internal/httpx"
)

const (
	msgListAll      = "Berhasil mengambil semua data buku"
	msgSearchResult = "Hasil pencarian untuk \"%s\""
	msgGetByID      = "Berhasil mengambil data buku berdasarkan ID"
	msgCreated      = "Berhasil menambahkan data buku"
	msgUpdated      = "Berhasil memperbarui data buku"
	msgDeleted      = "Berhasil menghapus data buku"

	msgInvalidJSON      = "Body permintaan harus berupa JSON yang valid"
	msgBodyTooLarge     = "Ukuran body permintaan terlalu besar"
	msgMethodNotAllowed = "Metode tidak diizinkan"
	msgRouteNotFound    = "Halaman tidak ditemukan"
)

type HTTPHandler struct {
	service *Service
	status  httpx.StatusFunc
}

// HandlerOption configures an HTTPHandler.
type HandlerOption func(*HTTPHandler)

// WithLegacyStatus makes every response use status 200; callers then rely on
// the envelope's status flag only.
func WithLegacyStatus(enabled bool) HandlerOption {
	return func(h *HTTPHandler) {
		h.status = httpx.FailureStatus(enabled)
	}
}

func NewHTTPHandler(service *Service, opts ...HandlerOption) *HTTPHandler {
	h := &HTTPHandler{service: service, status: httpx.NativeStatus}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the book routes under base, e.g. "/book".
func (h *HTTPHandler) Register(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("GET "+base+"/{$}", h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("POST "+base+"/{$}", h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.GetByID)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)

	// Anything else under base still gets an envelope.
	mux.HandleFunc(base, h.methodNotAllowed("GET, POST"))
	mux.HandleFunc(base+"/{$}", h.methodNotAllowed("GET, POST"))
	mux.HandleFunc(base+"/{id}", h.methodNotAllowed("GET, PUT, DELETE"))
	mux.HandleFunc(base+"/", h.routeNotFound)
}

// List handles GET /book?search=
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	q := Query{Search: r.URL.Query().Get("search")}

	books, err := h.service.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	message := msgListAll
	if q.Searching() {
		message = fmt.Sprintf(msgSearchResult, q.Search)
	}
	httpx.JSONSuccess(w, message, books)
}

// GetByID handles GET /book/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccess(w, msgGetByID, b)
}

// Create handles POST /book
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), req.Fields())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccess(w, msgCreated, b)
}

// Update handles PUT /book/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req, err := decodeRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.service.Update(r.Context(), id, req.Fields())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccess(w, msgUpdated, b)
}

// Delete handles DELETE /book/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONMessage(w, msgDeleted)
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := KindOf(err)
	if kind == KindStoreFailure {
		log.Printf("book store failure: method=%s path=%s request_id=%s error=%v",
			r.Method, r.URL.Path, httpx.RequestIDFrom(r), err)
	}
	httpx.JSONError(w, h.statusFor(kind), MessageOf(err))
}

func (h *HTTPHandler) methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		httpx.JSONError(w, h.status(http.StatusMethodNotAllowed), msgMethodNotAllowed)
	}
}

func (h *HTTPHandler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	httpx.JSONError(w, h.status(http.StatusNotFound), msgRouteNotFound)
}

func (h *HTTPHandler) statusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return h.status(http.StatusNotFound)
	case KindConflict:
		return h.status(http.StatusConflict)
	case KindValidation:
		return h.status(http.StatusBadRequest)
	default:
		return h.status(http.StatusInternalServerError)
	}
}

func decodeRequest(r *http.Request) (Request, error) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var bookErr *Error
		if errors.As(err, &bookErr) {
			return Request{}, bookErr
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return Request{}, Validation(msgBodyTooLarge)
		}
		return Request{}, Validation(msgInvalidJSON)
	}

	if verrs := httpx.ValidateStruct(req); len(verrs) > 0 {
		return Request{}, Validation(httpx.JoinMessages(verrs))
	}
	return req, nil
}
