package statedef

// #region category

// Category names one of the four independent state sources.
type Category string

const (
	CategorySystem      Category = "system"
	CategoryTime        Category = "time"
	CategorySpecialDate Category = "special_date"
	CategoryInteraction Category = "interaction"
)

// Categories lists every category in cross-category precedence order:
// the first category with a live candidate wins arbitration.
var Categories = []Category{
	CategoryInteraction,
	CategorySpecialDate,
	CategorySystem,
	CategoryTime,
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySystem, CategoryTime, CategorySpecialDate, CategoryInteraction:
		return true
	}
	return false
}

// #endregion category

// #region state-id

// ID names a concrete pet state. Each ID belongs to exactly one Category.
type ID string

// System states, ordered by priority (highest first).
const (
	MemoryCritical  ID = "MEMORY_CRITICAL"
	CPUCritical     ID = "CPU_CRITICAL"
	MemoryWarning   ID = "MEMORY_WARNING"
	VeryHeavyLoad   ID = "VERY_HEAVY_LOAD"
	GPUVeryBusy     ID = "GPU_VERY_BUSY"
	HeavyLoad       ID = "HEAVY_LOAD"
	DiskVeryBusy    ID = "DISK_VERY_BUSY"
	NetworkVeryBusy ID = "NETWORK_VERY_BUSY"
	GPUBusy         ID = "GPU_BUSY"
	ModerateLoad    ID = "MODERATE_LOAD"
	DiskBusy        ID = "DISK_BUSY"
	LightLoad       ID = "LIGHT_LOAD"
	NetworkBusy     ID = "NETWORK_BUSY"
	Idle            ID = "IDLE"
	SystemIdle      ID = "SYSTEM_IDLE"
)

// Time-of-day states.
const (
	Night     ID = "NIGHT"
	Morning   ID = "MORNING"
	Noon      ID = "NOON"
	Afternoon ID = "AFTERNOON"
	Evening   ID = "EVENING"
)

// Special-date states.
const (
	Birthday    ID = "BIRTHDAY"
	NewYear     ID = "NEW_YEAR"
	Anniversary ID = "ANNIVERSARY"
)

// Interaction states.
const (
	Dragged     ID = "DRAGGED"
	TailClicked ID = "TAIL_CLICKED"
	HeadClicked ID = "HEAD_CLICKED"
	BodyClicked ID = "BODY_CLICKED"
	HeadPatted  ID = "HEAD_PATTED"
)

// #endregion state-id

// #region def

// Def binds an ID to its category and within-category priority.
// Priorities are compared only between candidates of the same category;
// cross-category resolution uses the fixed Categories order.
type Def struct {
	ID       ID       `yaml:"id"`
	Category Category `yaml:"category"`
	Priority int      `yaml:"priority"`
}

// DefaultDefs returns the full built-in vocabulary with reference priorities.
func DefaultDefs() []Def {
	return []Def{
		// System
		{MemoryCritical, CategorySystem, 120},
		{CPUCritical, CategorySystem, 110},
		{MemoryWarning, CategorySystem, 105},
		{VeryHeavyLoad, CategorySystem, 100},
		{GPUVeryBusy, CategorySystem, 95},
		{HeavyLoad, CategorySystem, 90},
		{DiskVeryBusy, CategorySystem, 88},
		{NetworkVeryBusy, CategorySystem, 87},
		{GPUBusy, CategorySystem, 85},
		{ModerateLoad, CategorySystem, 80},
		{DiskBusy, CategorySystem, 75},
		{LightLoad, CategorySystem, 70},
		{NetworkBusy, CategorySystem, 70},
		{Idle, CategorySystem, 10},
		{SystemIdle, CategorySystem, 5},

		// Time
		{Night, CategoryTime, 30},
		{Morning, CategoryTime, 20},
		{Noon, CategoryTime, 20},
		{Afternoon, CategoryTime, 20},
		{Evening, CategoryTime, 20},

		// SpecialDate
		{Birthday, CategorySpecialDate, 50},
		{NewYear, CategorySpecialDate, 45},
		{Anniversary, CategorySpecialDate, 40},

		// Interaction
		{Dragged, CategoryInteraction, 160},
		{TailClicked, CategoryInteraction, 150},
		{HeadClicked, CategoryInteraction, 140},
		{BodyClicked, CategoryInteraction, 130},
		{HeadPatted, CategoryInteraction, 110},
	}
}

// #endregion def
