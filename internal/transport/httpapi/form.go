package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const schemaOrderUpdate domain.SchemaID = "order.update"

// bodyError сообщает клиенту, что тело запроса не разобрано.
func bodyError(schema domain.SchemaID, message string) error {
	return &domain.ShapeError{
		Schema: schema,
		Fields: []domain.FieldError{{Field: "body", Message: message}},
	}
}

// decodeJSON читает тело запроса в dst; ошибки разбора превращаются в *ShapeError.
func decodeJSON(w http.ResponseWriter, r *http.Request, schema domain.SchemaID, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return bodyError(schema, "request body is empty")
		}
		return bodyError(schema, "malformed JSON")
	}
	return nil
}

// parseForm разбирает multipart или urlencoded форму.
func parseForm(r *http.Request, schema domain.SchemaID) error {
	err := r.ParseMultipartForm(maxUploadMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return bodyError(schema, "malformed form")
	}
	return nil
}

// formReader читает поля формы и копит ошибки преобразования.
type formReader struct {
	r      *http.Request
	schema domain.SchemaID
	fields []domain.FieldError
}

func newFormReader(r *http.Request, schema domain.SchemaID) *formReader {
	return &formReader{r: r, schema: schema}
}

// optionalString возвращает nil, если поля нет в форме.
func (f *formReader) optionalString(key string) *string {
	if _, ok := f.r.Form[key]; !ok {
		return nil
	}
	value := f.r.Form.Get(key)
	return &value
}

func (f *formReader) optionalFloat(key string) *float64 {
	raw := f.optionalString(key)
	if raw == nil {
		return nil
	}
	value, err := strconv.ParseFloat(*raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		f.fail(key, "must be a finite number")
		return nil
	}
	return &value
}

func (f *formReader) optionalBool(key string) *bool {
	raw := f.optionalString(key)
	if raw == nil {
		return nil
	}
	value, err := strconv.ParseBool(*raw)
	if err != nil {
		f.fail(key, "must be a boolean")
		return nil
	}
	return &value
}

func (f *formReader) fail(key, message string) {
	f.fields = append(f.fields, domain.FieldError{Field: key, Message: message})
}

func (f *formReader) err() error {
	if len(f.fields) == 0 {
		return nil
	}
	return &domain.ShapeError{Schema: f.schema, Fields: f.fields}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// saveUpload сохраняет файл из поля "file". Пустой ключ: файла в запросе нет.
// Вызывается последним шагом перед use case: дальше удалением файла при ошибке
// занимается сам use case.
func (h *handler) saveUpload(r *http.Request) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	defer file.Close()

	key, err := h.uploads.Save(r.Context(), header.Filename, file)
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return key, nil
}
