package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/annel0/gopaint/internal/vec"
	"github.com/google/uuid"
)

// Типы событий движка кистей
const (
	TypeBrushApplied = "BrushApplied"
	TypeBrushUndone  = "BrushUndone"
)

const payloadVersion = 1

// BrushApplied публикуется после фиксации мазка
type BrushApplied struct {
	Actor  uuid.UUID `json:"actor"`
	Brush  string    `json:"brush"`
	Target vec.Vec3  `json:"target"`
	Cells  int       `json:"cells"`
}

// BrushUndone публикуется после отмены мазка
type BrushUndone struct {
	Actor uuid.UUID `json:"actor"`
	Cells int       `json:"cells"`
}

// NewEnvelope сериализует полезную нагрузку в JSON и заполняет служебные поля
func NewEnvelope(source, eventType string, payload any) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: eventType,
		Version:   payloadVersion,
		Priority:  3,
		Payload:   data,
	}, nil
}

// Decode разбирает полезную нагрузку события в dst
func (ev *Envelope) Decode(dst any) error {
	if err := json.Unmarshal(ev.Payload, dst); err != nil {
		return fmt.Errorf("unmarshal %s: %w", ev.EventType, err)
	}
	return nil
}
