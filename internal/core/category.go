package core

// Category classifies a financial record. The set is closed and shared by
// expense and income records.
type Category string

const (
	CategoryEgg         Category = "egg"
	CategoryFeed        Category = "feed"
	CategoryMedicine    Category = "medicine"
	CategoryElectricity Category = "electricity"
	CategoryLabor       Category = "labor"
	CategoryOther       Category = "other"
	CategoryEquipment   Category = "equipment"
	CategoryChicks      Category = "chicks"
	CategoryInsurance   Category = "insurance"
	CategoryTransport   Category = "transport"
)

// FilterAll is the synthetic filter value meaning "no category filter".
// It is never persisted on a record.
const FilterAll = "all"

// Categories returns the closed enumeration in display order.
func Categories() []Category {
	return []Category{
		CategoryEgg,
		CategoryFeed,
		CategoryMedicine,
		CategoryElectricity,
		CategoryLabor,
		CategoryOther,
		CategoryEquipment,
		CategoryChicks,
		CategoryInsurance,
		CategoryTransport,
	}
}

// IsValid returns true if c is a member of the closed enumeration.
func (c Category) IsValid() bool {
	switch c {
	case CategoryEgg, CategoryFeed, CategoryMedicine, CategoryElectricity,
		CategoryLabor, CategoryOther, CategoryEquipment, CategoryChicks,
		CategoryInsurance, CategoryTransport:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
