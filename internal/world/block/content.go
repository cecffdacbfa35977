package block

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownMaterial возвращается при разборе неизвестного имени материала
var ErrUnknownMaterial = errors.New("unknown material")

// Content описывает содержимое клетки: материал и устаревший подтип (data value).
// Data == 0 означает отсутствие подтипа. Сравнение структурное.
type Content struct {
	ID   BlockID `json:"id"`
	Data uint8   `json:"data,omitempty"`
}

// Air пустая клетка
var Air = Content{ID: AirBlockID}

// Of создаёт содержимое без подтипа
func Of(id BlockID) Content {
	return Content{ID: id}
}

// IsAir сообщает, пустая ли клетка
func (c Content) IsAir() bool {
	return c.ID == AirBlockID
}

// String возвращает запись вида "stone" или "stone:2"
func (c Content) String() string {
	name := strings.ToLower(c.ID.Name())
	if name == "" {
		name = strconv.Itoa(int(c.ID))
	}
	if c.Data != 0 {
		return fmt.Sprintf("%s:%d", name, c.Data)
	}
	return name
}

// Parse разбирает запись "name" или "name:data". Вместо имени допускается
// числовой ID: так String записывает незарегистрированные материалы.
func Parse(s string) (Content, error) {
	name, data, hasData := strings.Cut(strings.TrimSpace(s), ":")

	var content Content
	if def, ok := ByName(name); ok {
		content.ID = def.ID
	} else if id, err := strconv.ParseUint(name, 10, 16); err == nil {
		content.ID = BlockID(id)
	} else {
		return Content{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}

	if hasData {
		v, err := strconv.ParseUint(data, 10, 8)
		if err != nil {
			return Content{}, fmt.Errorf("invalid data value %q: %w", data, err)
		}
		content.Data = uint8(v)
	}
	return content, nil
}
