package volume

import (
	"errors"
	"fmt"
	"net/http"

	"volumeapi/internal/httpx"
	"volumeapi/internal/logger"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the volume routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /volumes", h.Create)
	mux.HandleFunc("GET /volumes", h.List)
	mux.HandleFunc("GET /volumes/{title}", h.GetByTitle)
	mux.HandleFunc("POST /volumes/{volumeId}", h.Update)
	mux.HandleFunc("DELETE /volumes/{volumeId}", h.Delete)
	mux.HandleFunc("GET /volumes/author/{author}", h.ListByAuthor)
	mux.HandleFunc("GET /volumes/genre/{genre}", h.ListByGenre)
	mux.HandleFunc("GET /volumes/year/{year}", h.ListByYear)
}

type createdResponse struct {
	Message string `json:"message"`
	Volume  Volume `json:"volume"`
}

type updatedResponse struct {
	Message       string `json:"message"`
	UpdatedVolume Volume `json:"updatedVolume"`
}

// @Summary Add a volume
// @Tags volumes
// @Accept json
// @Produce json
// @Success 201 {object} createdResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 500 {object} httpx.ErrorBody
// @Router /volumes [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := DecodeFields(r.Body)
	if err != nil {
		if errors.Is(err, ErrMalformedBody) {
			h.fail(w, r, "create", err, http.StatusBadRequest, "Invalid volume data.")
			return
		}
		h.fail(w, r, "create", err, http.StatusInternalServerError, "Failed to add volume")
		return
	}

	v, err := h.service.Add(r.Context(), fields)
	if err != nil {
		h.fail(w, r, "create", err, http.StatusInternalServerError, "Failed to add volume")
		return
	}
	httpx.WriteJSON(w, r, http.StatusCreated, createdResponse{Message: "Volume added successfully.", Volume: v})
}

// List answers an empty store with 200 and an error-shaped body rather than an empty
// array; existing clients depend on that shape.
//
// @Summary List all volumes
// @Tags volumes
// @Produce json
// @Success 200 {array} Volume
// @Failure 500 {object} httpx.ErrorBody
// @Router /volumes [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	volumes, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", err, http.StatusInternalServerError, "Failed to fetch volumes.")
		return
	}
	if len(volumes) == 0 {
		httpx.JSONError(w, r, http.StatusOK, "No volumes found")
		return
	}
	httpx.WriteJSON(w, r, http.StatusOK, volumes)
}

// @Summary Get a volume by exact title
// @Tags volumes
// @Produce json
// @Param title path string true "Volume title"
// @Success 200 {object} Volume
// @Failure 404 {object} httpx.ErrorBody
// @Router /volumes/{title} [get]
func (h *HTTPHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")

	v, err := h.service.GetByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "Volume not found.")
			return
		}
		h.fail(w, r, "get by title", err, http.StatusInternalServerError, "Failed to fetch volume.")
		return
	}
	httpx.WriteJSON(w, r, http.StatusOK, v)
}

// @Summary Update a volume
// @Tags volumes
// @Accept json
// @Produce json
// @Param volumeId path string true "Volume id"
// @Success 200 {object} updatedResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Failure 500 {object} httpx.ErrorBody
// @Router /volumes/{volumeId} [post]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("volumeId")
	patch, err := DecodeFields(r.Body)
	if err != nil {
		if errors.Is(err, ErrMalformedBody) {
			h.fail(w, r, "update", err, http.StatusBadRequest, "Invalid volume data.")
			return
		}
		h.fail(w, r, "update", err, http.StatusInternalServerError, "Failed to update volume.")
		return
	}

	v, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "Volume not found.")
			return
		}
		h.fail(w, r, "update", err, http.StatusInternalServerError, "Failed to update volume.")
		return
	}
	httpx.WriteJSON(w, r, http.StatusOK, updatedResponse{Message: "Volume updated successfully.", UpdatedVolume: v})
}

// @Summary Delete a volume
// @Tags volumes
// @Produce json
// @Param volumeId path string true "Volume id"
// @Success 200 {object} httpx.MessageBody
// @Failure 404 {object} httpx.ErrorBody
// @Router /volumes/{volumeId} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("volumeId")

	_, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "Volume not found")
			return
		}
		h.fail(w, r, "delete", err, http.StatusInternalServerError, "Failed to delete volume.")
		return
	}
	httpx.JSONMessage(w, r, http.StatusOK, "Volume deleted successfully.")
}

// ListByAuthor handles GET /volumes/author/{author}
func (h *HTTPHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	author := r.PathValue("author")
	h.listFiltered(w, r, ByAuthor(author), "No volumes found for this author.", "Failed to fetch volumes by author.")
}

// ListByGenre handles GET /volumes/genre/{genre}
func (h *HTTPHandler) ListByGenre(w http.ResponseWriter, r *http.Request) {
	genre := r.PathValue("genre")
	h.listFiltered(w, r, ByGenre(genre), "No volumes found for this genre.", "Failed to fetch volumes by genre.")
}

// ListByYear handles GET /volumes/year/{year}. A year that is not a whole number is a
// failed lookup, not a client error.
func (h *HTTPHandler) ListByYear(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("year")
	if err := validate.Var(raw, "numeric"); err != nil {
		h.fail(w, r, "filter by year", errors.Join(ErrInvalidInput, err), http.StatusInternalServerError, "Failed to fetch volumes by year.")
		return
	}
	year, err := ParseYear(raw)
	if err != nil {
		h.fail(w, r, "filter by year", err, http.StatusInternalServerError, "Failed to fetch volumes by year.")
		return
	}
	h.listFiltered(w, r, ByYear(year), fmt.Sprintf("No volumes found for the year %s.", raw), "Failed to fetch volumes by year.")
}

func (h *HTTPHandler) listFiltered(w http.ResponseWriter, r *http.Request, q Filter, emptyMsg, failMsg string) {
	volumes, err := h.service.Filter(r.Context(), q)
	if err != nil {
		h.fail(w, r, "filter by "+string(q.Field), err, http.StatusInternalServerError, failMsg)
		return
	}
	if len(volumes) == 0 {
		httpx.JSONError(w, r, http.StatusNotFound, emptyMsg)
		return
	}
	httpx.WriteJSON(w, r, http.StatusOK, volumes)
}

// fail logs the raw error and answers with a static message.
func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error, status int, message string) {
	entry := logger.For(r.Context()).WithError(err).WithField("op", op)
	if status >= http.StatusInternalServerError {
		entry.Error("volume request failed")
	} else {
		entry.Warn("volume request rejected")
	}
	httpx.JSONError(w, r, status, message)
}
