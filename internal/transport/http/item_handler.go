package http

import (
	"errors"
	"net/http"

	"campusswap/internal/authz"
	"campusswap/internal/domain"
	"campusswap/internal/dto"
	"campusswap/internal/httpx"
	"campusswap/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type itemHandler struct {
	items service.ItemService
}

var (
	readMessages   = messages{notFound: msgItemNotFound}
	createMessages = messages{validation: msgItemFieldsRequired}
	editMessages   = messages{validation: msgItemFieldsRequired, notFound: msgCannotEdit}
	deleteMessages = messages{notFound: msgCannotDelete}
)

// itemID parses the {id} path parameter. Malformed ids cannot name an item,
// so callers answer them like a missing item.
func itemID(r *http.Request) (domain.ItemID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// identity returns the caller admitted by the gate.
func identity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	who, ok := authz.IdentityFrom(r.Context())
	if !ok {
		writeError(w, r, errors.New("item route reached without gate identity"), messages{})
	}
	return who, ok
}

func (h itemHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		writeError(w, r, err, readMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h itemHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		httpx.Error(w, http.StatusNotFound, msgItemNotFound)
		return
	}
	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, readMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h itemHandler) create(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.ItemRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, msgBadBody)
		return
	}
	item, err := h.items.Create(r.Context(), who, req)
	if err != nil {
		writeError(w, r, err, createMessages)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h itemHandler) update(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := itemID(r)
	if !ok {
		httpx.Error(w, http.StatusNotFound, msgCannotEdit)
		return
	}
	var req dto.ItemRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, msgBadBody)
		return
	}
	item, err := h.items.Update(r.Context(), who, id, req)
	if err != nil {
		writeError(w, r, err, editMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h itemHandler) delete(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := itemID(r)
	if !ok {
		httpx.Error(w, http.StatusNotFound, msgCannotDelete)
		return
	}
	if err := h.items.Delete(r.Context(), who, id); err != nil {
		writeError(w, r, err, deleteMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.DeleteResponse{Message: msgItemDeleted})
}
