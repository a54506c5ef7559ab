// Пакет httpapi: HTTP-поверхность сервиса поверх use case'ов.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/auth"
	"github.com/vladislavdragonenkov/burger-oms/internal/metrics"
	"github.com/vladislavdragonenkov/burger-oms/internal/usecase"
)

const (
	defaultRequestTimeout = 30 * time.Second
	// maxUploadMemory: часть multipart-формы, которая держится в памяти.
	maxUploadMemory = 8 << 20
	maxJSONBody     = 1 << 20
)

// UseCases: операции, доступные через HTTP.
type UseCases struct {
	CreateUser     *usecase.CreateUser
	CreateSession  *usecase.CreateSession
	CreateCategory *usecase.CreateCategory
	UpdateCategory *usecase.UpdateCategory
	CreateProduct  *usecase.CreateProduct
	UpdateProduct  *usecase.UpdateProduct
	CreateOrder    *usecase.CreateOrder
	UpdateOrder    *usecase.UpdateOrder
	ListOrders     *usecase.ListOrders
	Catalog        *usecase.Catalog
}

// TokenParser проверяет токен сессии.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Uploads сохраняет файлы запроса и отдаёт их обратно.
type Uploads interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, key string) error
	Path(key string) (string, error)
}

// Config собирает зависимости роутера.
type Config struct {
	UseCases       UseCases
	Tokens         TokenParser
	Uploads        Uploads
	Logger         *log.Entry
	HTTPMetrics    *metrics.HTTPMetrics
	UseCaseMetrics *metrics.UseCaseMetrics
	RequestTimeout time.Duration
}

type handler struct {
	uc       UseCases
	uploads  Uploads
	logger   *log.Entry
	observer *metrics.UseCaseMetrics
}

// NewRouter строит chi-роутер со всеми маршрутами API.
func NewRouter(cfg Config) (http.Handler, error) {
	switch {
	case cfg.Tokens == nil:
		return nil, errors.New("httpapi: token parser is required")
	case cfg.Uploads == nil:
		return nil, errors.New("httpapi: upload store is required")
	}
	if err := cfg.UseCases.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	h := &handler{
		uc:       cfg.UseCases,
		uploads:  cfg.Uploads,
		logger:   logger,
		observer: cfg.UseCaseMetrics,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger, cfg.HTTPMetrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Post("/users", h.createUser)
	r.Post("/sessions", h.createSession)
	r.Get("/category-file/{key}", h.serveFile)
	r.Get("/product-file/{key}", h.serveFile)

	r.Group(func(r chi.Router) {
		r.Use(authenticate(cfg.Tokens))

		r.Get("/categories", h.listCategories)
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Post("/orders", h.createOrder)
		r.Get("/orders", h.listOrders)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)

			r.Post("/categories", h.createCategory)
			r.Put("/categories/{id}", h.updateCategory)
			r.Post("/products", h.createProduct)
			r.Put("/products/{id}", h.updateProduct)
			r.Put("/orders/{id}", h.updateOrder)
		})
	})

	return r, nil
}

func (u UseCases) validate() error {
	switch {
	case u.CreateUser == nil, u.CreateSession == nil:
		return errors.New("httpapi: user use cases are required")
	case u.CreateCategory == nil, u.UpdateCategory == nil:
		return errors.New("httpapi: category use cases are required")
	case u.CreateProduct == nil, u.UpdateProduct == nil:
		return errors.New("httpapi: product use cases are required")
	case u.CreateOrder == nil, u.UpdateOrder == nil, u.ListOrders == nil:
		return errors.New("httpapi: order use cases are required")
	case u.Catalog == nil:
		return errors.New("httpapi: catalog is required")
	}
	return nil
}

// observe учитывает вызов use case в метриках.
func (h *handler) observe(name string, started time.Time, err error) {
	h.observer.Observe(name, started, err)
}
