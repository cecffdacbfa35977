package block

import (
	"sort"
	"strings"
	"sync"
)

// BlockID представляет идентификатор материала
type BlockID uint16

// Константы ID блоков
const (
	AirBlockID   BlockID = iota // 0
	StoneBlockID                // 1
	GrassBlockID                // 2
	WaterBlockID                // 3
	SandBlockID                 // 4
	DirtBlockID                 // 5
	CobblestoneBlockID
	GravelBlockID
	AndesiteBlockID
	GraniteBlockID
	DioriteBlockID
	SnowBlockID
	MossBlockID

	// Блоки, которые нельзя взять в руку (начиная с 1000)
	BedrockBlockID BlockID = 1000
	FireBlockID    BlockID = 1001
)

// Definition описывает материал
type Definition struct {
	ID    BlockID
	Name  string // Каноническое имя в верхнем регистре (STONE)
	Solid bool   // Твёрдый блок (участвует в проверке поверхности)
	Item  bool   // Может быть предметом, т.е. допустимой целью маски
}

var (
	registryMu sync.RWMutex
	registry   = make(map[BlockID]Definition)
	byName     = make(map[string]BlockID)
)

func init() {
	for _, def := range []Definition{
		{ID: AirBlockID, Name: "AIR"},
		{ID: StoneBlockID, Name: "STONE", Solid: true, Item: true},
		{ID: GrassBlockID, Name: "GRASS_BLOCK", Solid: true, Item: true},
		{ID: WaterBlockID, Name: "WATER"},
		{ID: SandBlockID, Name: "SAND", Solid: true, Item: true},
		{ID: DirtBlockID, Name: "DIRT", Solid: true, Item: true},
		{ID: CobblestoneBlockID, Name: "COBBLESTONE", Solid: true, Item: true},
		{ID: GravelBlockID, Name: "GRAVEL", Solid: true, Item: true},
		{ID: AndesiteBlockID, Name: "ANDESITE", Solid: true, Item: true},
		{ID: GraniteBlockID, Name: "GRANITE", Solid: true, Item: true},
		{ID: DioriteBlockID, Name: "DIORITE", Solid: true, Item: true},
		{ID: SnowBlockID, Name: "SNOW_BLOCK", Solid: true, Item: true},
		{ID: MossBlockID, Name: "MOSS_BLOCK", Solid: true, Item: true},
		{ID: BedrockBlockID, Name: "BEDROCK", Solid: true},
		{ID: FireBlockID, Name: "FIRE"},
	} {
		Register(def)
	}
}

// Register добавляет материал в регистр. Повторная регистрация ID заменяет описание.
func Register(def Definition) {
	def.Name = strings.ToUpper(def.Name)

	registryMu.Lock()
	defer registryMu.Unlock()

	if old, exists := registry[def.ID]; exists {
		delete(byName, old.Name)
	}
	registry[def.ID] = def
	byName[def.Name] = def.ID
}

// Get возвращает описание материала по ID
func Get(id BlockID) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	def, exists := registry[id]
	return def, exists
}

// ByName ищет материал по имени без учёта регистра
func ByName(name string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	id, exists := byName[strings.ToUpper(strings.TrimSpace(name))]
	if !exists {
		return Definition{}, false
	}
	return registry[id], true
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := Get(id)
	return exists
}

// IsItem сообщает, может ли материал быть предметом
func IsItem(id BlockID) bool {
	def, exists := Get(id)
	return exists && def.Item
}

// IsSolid сообщает, является ли материал твёрдым
func IsSolid(id BlockID) bool {
	def, exists := Get(id)
	return exists && def.Solid
}

// Name возвращает имя материала или пустую строку для неизвестного ID
func (id BlockID) Name() string {
	def, exists := Get(id)
	if !exists {
		return ""
	}
	return def.Name
}

// All возвращает все зарегистрированные материалы, отсортированные по ID
func All() []Definition {
	registryMu.RLock()
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	registryMu.RUnlock()

	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}
