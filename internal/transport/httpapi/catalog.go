package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/burger-oms/internal/usecase"
)

func (h *handler) createCategory(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r, usecase.SchemaCategoryCreate); err != nil {
		respondOutcome(w, err)
		return
	}
	in := &usecase.CreateCategoryInput{Name: r.Form.Get("name")}

	key, err := h.saveUpload(r)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	in.ImagePath = key

	started := time.Now()
	category, err := h.uc.CreateCategory.Execute(r.Context(), in)
	h.observe("create_category", started, err)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCategory(category))
}

func (h *handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r, usecase.SchemaCategoryUpdate); err != nil {
		respondOutcome(w, err)
		return
	}
	form := newFormReader(r, usecase.SchemaCategoryUpdate)
	in := &usecase.UpdateCategoryInput{
		CategoryID: chi.URLParam(r, "id"),
		Name:       form.optionalString("name"),
	}

	key, err := h.saveUpload(r)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	if key != "" {
		in.ImagePath = &key
	}

	started := time.Now()
	category, err := h.uc.UpdateCategory.Execute(r.Context(), in)
	h.observe("update_category", started, err)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCategory(category))
}

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.Catalog.ListCategories(r.Context())
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mapSlice(categories, toCategory))
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r, usecase.SchemaProductCreate); err != nil {
		respondOutcome(w, err)
		return
	}
	form := newFormReader(r, usecase.SchemaProductCreate)
	in := &usecase.CreateProductInput{
		Name:       r.Form.Get("name"),
		Price:      deref(form.optionalFloat("price")),
		CategoryID: r.Form.Get("category_id"),
		Offer:      deref(form.optionalBool("offer")),
	}
	if err := form.err(); err != nil {
		respondOutcome(w, err)
		return
	}

	key, err := h.saveUpload(r)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	in.ImagePath = key

	started := time.Now()
	product, err := h.uc.CreateProduct.Execute(r.Context(), in)
	h.observe("create_product", started, err)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProduct(product))
}

func (h *handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r, usecase.SchemaProductUpdate); err != nil {
		respondOutcome(w, err)
		return
	}
	form := newFormReader(r, usecase.SchemaProductUpdate)
	in := &usecase.UpdateProductInput{
		ProductID:  chi.URLParam(r, "id"),
		Name:       form.optionalString("name"),
		Price:      form.optionalFloat("price"),
		Offer:      form.optionalBool("offer"),
		CategoryID: form.optionalString("category_id"),
	}
	if err := form.err(); err != nil {
		respondOutcome(w, err)
		return
	}

	key, err := h.saveUpload(r)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	if key != "" {
		in.ImagePath = &key
	}

	started := time.Now()
	product, err := h.uc.UpdateProduct.Execute(r.Context(), in)
	h.observe("update_product", started, err)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProduct(product))
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.Catalog.ListProducts(r.Context())
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mapSlice(products, toProduct))
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.uc.Catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProduct(product))
}

func (h *handler) serveFile(w http.ResponseWriter, r *http.Request) {
	path, err := h.uploads.Path(chi.URLParam(r, "key"))
	if err != nil {
		respondError(w, http.StatusNotFound, "file_not_found", "file not found")
		return
	}
	http.ServeFile(w, r, path)
}
