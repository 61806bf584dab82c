package model

// Food is a catalog reference item. Nutrition values are per 100 grams.
type Food struct {
	ID              string
	Name            string
	CaloriesPer100g float64
	ProteinPer100g  float64
	CarbsPer100g    float64
	FatPer100g      float64
	Custom          bool
}

// Exercise is a catalog reference item. Burn rate is per 60 minutes.
type Exercise struct {
	ID              string
	Name            string
	CaloriesPerHour float64
	Custom          bool
}

type MealSlot string

const (
	Breakfast MealSlot = "breakfast"
	Lunch     MealSlot = "lunch"
	Dinner    MealSlot = "dinner"
	Snacks    MealSlot = "snacks"
)

// MealSlots returns the fixed set of meal slots in display order.
func MealSlots() []MealSlot {
	return []MealSlot{Breakfast, Lunch, Dinner, Snacks}
}

func ValidMealSlot(s MealSlot) bool {
	switch s {
	case Breakfast, Lunch, Dinner, Snacks:
		return true
	}
	return false
}

// FoodEntry references a catalog food by id. The catalog row may no
// longer exist; such entries resolve to zero contribution.
type FoodEntry struct {
	ID     int64
	FoodID string
	Grams  float64
}

type ExerciseEntry struct {
	ID         int64
	ExerciseID string
	Minutes    float64
}

// DayRecord holds everything logged for one calendar date. EntrySeq is
// a per-record counter used to mint stable entry ids; it only moves
// forward so ids are never reused within a day.
type DayRecord struct {
	Date      string
	Meals     map[MealSlot][]FoodEntry
	Exercises []ExerciseEntry
	WaterMl   int
	EntrySeq  int64
}

// NewDayRecord materializes an empty record for date. Callers must not
// persist it until an actual mutation happens.
func NewDayRecord(date string) DayRecord {
	meals := make(map[MealSlot][]FoodEntry, len(MealSlots()))
	for _, slot := range MealSlots() {
		meals[slot] = []FoodEntry{}
	}
	return DayRecord{
		Date:     date,
		Meals:    meals,
		EntrySeq: 1,
	}
}

// Clone returns a deep copy so mutators can produce a new record
// without aliasing the caller's slices.
func (r DayRecord) Clone() DayRecord {
	out := r
	out.Meals = make(map[MealSlot][]FoodEntry, len(r.Meals))
	for slot, entries := range r.Meals {
		copied := make([]FoodEntry, len(entries))
		copy(copied, entries)
		out.Meals[slot] = copied
	}
	out.Exercises = make([]ExerciseEntry, len(r.Exercises))
	copy(out.Exercises, r.Exercises)
	return out
}

// Empty reports whether the record carries no logged data at all.
func (r DayRecord) Empty() bool {
	if r.WaterMl != 0 || len(r.Exercises) != 0 {
		return false
	}
	for _, entries := range r.Meals {
		if len(entries) != 0 {
			return false
		}
	}
	return true
}
