package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// parseID проверяет формат ключа так же, как это делает uuid-колонка в PostgreSQL.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedID, id)
	}
	return parsed.String(), nil
}

func now() time.Time {
	return time.Now().UTC()
}
