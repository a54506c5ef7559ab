package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/outcome"
)

// errorResponse: тело ответа с ошибкой.
type errorResponse struct {
	Error  string              `json:"error"`
	Kind   string              `json:"kind"`
	Ref    string              `json:"ref,omitempty"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, kind, message string) {
	respondJSON(w, status, errorResponse{Error: message, Kind: kind})
}

// respondOutcome отвечает по классифицированной ошибке use case.
func respondOutcome(w http.ResponseWriter, err error) {
	out := outcome.FromError(err)
	respondJSON(w, statusFor(out.Kind), errorResponse{
		Error:  out.Message,
		Kind:   string(out.Kind),
		Ref:    out.Ref,
		Fields: out.Fields,
	})
}

// statusFor возвращает код ответа для класса ошибки; пустой Kind означает успех.
func statusFor(kind domain.Kind) int {
	switch kind {
	case "":
		return http.StatusOK
	case domain.KindMissingInput, domain.KindMissingFields, domain.KindShapeError, domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindDuplicateName, domain.KindDuplicateEmail:
		return http.StatusConflict
	case domain.KindCategoryNotFound, domain.KindProductNotFound, domain.KindOrderNotFound, domain.KindUserNotFound:
		return http.StatusNotFound
	case domain.KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

func toUser(u domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Admin: u.Admin}
}

type sessionResponse struct {
	userResponse
	Token string `json:"token"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCategory(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Path:      c.ImagePath,
		URL:       fileURL("/category-file/", c.ImagePath),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type productResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	CategoryID string    `json:"category_id"`
	Offer      bool      `json:"offer"`
	Path       string    `json:"path,omitempty"`
	URL        string    `json:"url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toProduct(p domain.Product) productResponse {
	return productResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		Offer:      p.Offer,
		Path:       p.ImagePath,
		URL:        fileURL("/product-file/", p.ImagePath),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

type orderItemResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"category_id"`
	URL        string  `json:"url,omitempty"`
	Quantity   int     `json:"quantity"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Status    string              `json:"status"`
	Products  []orderItemResponse `json:"products"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func toOrder(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			ID:         item.ProductID,
			Name:       item.Name,
			Price:      item.Price,
			CategoryID: item.CategoryID,
			URL:        fileURL("/product-file/", item.ImagePath),
			Quantity:   item.Quantity,
		})
	}
	return orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		Products:  items,
		Total:     o.Total(),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func fileURL(prefix, key string) string {
	if key == "" {
		return ""
	}
	return prefix + key
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, fn(item))
	}
	return result
}
