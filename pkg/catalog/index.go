package catalog

import "slices"

// Index maps body type -> muscle -> equipment -> exercise names. It is the
// authority for which exercises appear under a muscle; names in it are not
// required to have catalog records.
type Index struct {
	muscles map[Gender][]string
	buckets map[Gender]map[string]map[Equipment][]string
}

func newIndex() *Index {
	return &Index{
		muscles: make(map[Gender][]string),
		buckets: make(map[Gender]map[string]map[Equipment][]string),
	}
}

func (x *Index) add(g Gender, muscle string, buckets map[Equipment][]string) {
	if x.buckets[g] == nil {
		x.buckets[g] = make(map[string]map[Equipment][]string)
	}
	x.muscles[g] = append(x.muscles[g], muscle)
	x.buckets[g][muscle] = buckets
}

// Filter returns the exercise names for muscle under filter. AllEquipment
// concatenates every bucket in Equipments order without de-duplicating.
// Unknown muscles, categories and genders yield an empty, non-nil list.
func (x *Index) Filter(muscle string, filter Equipment, g Gender) []string {
	buckets := x.buckets[g][muscle]
	if filter != AllEquipment {
		return append([]string{}, buckets[filter]...)
	}
	out := []string{}
	for _, eq := range Equipments {
		out = append(out, buckets[eq]...)
	}
	return out
}

// Count is len(Filter(muscle, filter, g)) without the copy.
func (x *Index) Count(muscle string, filter Equipment, g Gender) int {
	buckets := x.buckets[g][muscle]
	if filter != AllEquipment {
		return len(buckets[filter])
	}
	n := 0
	for _, eq := range Equipments {
		n += len(buckets[eq])
	}
	return n
}

// Muscles lists the muscles indexed for g in declaration order.
func (x *Index) Muscles(g Gender) []string {
	return slices.Clone(x.muscles[g])
}

// HasMuscle reports whether g has an entry for muscle, even an empty one.
func (x *Index) HasMuscle(muscle string, g Gender) bool {
	_, ok := x.buckets[g][muscle]
	return ok
}

// HasData reports whether muscle has at least one exercise for g under any
// equipment.
func (x *Index) HasData(muscle string, g Gender) bool {
	return x.Count(muscle, AllEquipment, g) > 0
}

// Equipment lists the categories with at least one exercise for muscle, in
// Equipments order.
func (x *Index) Equipment(muscle string, g Gender) []Equipment {
	buckets := x.buckets[g][muscle]
	var out []Equipment
	for _, eq := range Equipments {
		if len(buckets[eq]) > 0 {
			out = append(out, eq)
		}
	}
	return out
}

// MusclesFor returns the muscles whose index lists name for g.
func (x *Index) MusclesFor(name string, g Gender) []string {
	var out []string
	for _, m := range x.muscles[g] {
		for _, eq := range Equipments {
			if slices.Contains(x.buckets[g][m][eq], name) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
