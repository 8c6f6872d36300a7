package catalog

import (
	"fmt"
	"strings"
)

// Gender selects the body type a catalog table, index or region set belongs to.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Genders lists the supported body types.
var Genders = []Gender{Male, Female}

// Opposite returns the other body type.
func (g Gender) Opposite() Gender {
	if g == Female {
		return Male
	}
	return Female
}

func (g Gender) String() string { return string(g) }

// ParseGender is case-insensitive.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return "", fmt.Errorf("unknown gender %q (use male or female)", s)
}

// View is the side of the body diagram.
type View string

const (
	Front View = "front"
	Back  View = "back"
)

// Toggle flips front and back.
func (v View) Toggle() View {
	if v == Back {
		return Front
	}
	return Back
}

func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front":
		return Front, nil
	case "back":
		return Back, nil
	}
	return "", fmt.Errorf("unknown view %q (use front or back)", s)
}

// Equipment is a closed set of training equipment tags.
type Equipment string

const (
	Dumbbells    Equipment = "Dumbbells"
	Barbell      Equipment = "Barbell"
	Machine      Equipment = "Machine"
	Cable        Equipment = "Cable"
	Kettlebell   Equipment = "Kettlebell"
	Plate        Equipment = "Plate"
	SmithMachine Equipment = "Smith Machine"
	Bodyweight   Equipment = "Bodyweight"
	Cardio       Equipment = "Cardio"

	// AllEquipment is the filter sentinel meaning "no filter". It is never a
	// data attribute.
	AllEquipment Equipment = "All Equipment"
)

// Equipments is the fixed category order. "All Equipment" filtering
// concatenates buckets in exactly this order.
var Equipments = []Equipment{
	Dumbbells,
	Barbell,
	Machine,
	Cable,
	Kettlebell,
	Plate,
	SmithMachine,
	Bodyweight,
	Cardio,
}

// FilterOptions is Equipments preceded by the AllEquipment sentinel.
func FilterOptions() []Equipment {
	return append([]Equipment{AllEquipment}, Equipments...)
}

func (e Equipment) String() string { return string(e) }

// Rank returns the position of e in Equipments, or -1.
func (e Equipment) Rank() int {
	for i, c := range Equipments {
		if c == e {
			return i
		}
	}
	return -1
}

// ParseEquipment accepts any casing and the common short forms
// ("smith", "all", "db", "bb", "kb").
func ParseEquipment(s string) (Equipment, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "", "all", "all equipment", "any":
		return AllEquipment, nil
	case "db", "dumbbell":
		return Dumbbells, nil
	case "bb":
		return Barbell, nil
	case "kb":
		return Kettlebell, nil
	case "smith", "smithmachine", "smith-machine":
		return SmithMachine, nil
	}
	for _, c := range Equipments {
		if strings.ToLower(string(c)) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown equipment category %q", s)
}

// parseCategory is ParseEquipment restricted to concrete categories.
func parseCategory(s string) (Equipment, error) {
	e, err := ParseEquipment(s)
	if err != nil {
		return "", err
	}
	if e == AllEquipment {
		return "", fmt.Errorf("%q is a filter, not an equipment category", s)
	}
	return e, nil
}

// Difficulty is the training level of an exercise.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Variant is the gender-specific media and instructions of an exercise.
type Variant struct {
	ImagePath    string
	Description  string
	Alternatives []string
}

// Exercise is a catalog record, keyed by its display name.
type Exercise struct {
	Name       string
	MediaType  string
	Equipment  Equipment
	Difficulty Difficulty
	// Alternatives declared on the record itself rather than per variant.
	Alternatives []string

	variants map[Gender]Variant
}

// NewExercise builds a record; variants may be empty.
func NewExercise(name string, equipment Equipment, difficulty Difficulty, variants map[Gender]Variant) *Exercise {
	ex := &Exercise{
		Name:       name,
		MediaType:  "image",
		Equipment:  equipment,
		Difficulty: difficulty,
		variants:   make(map[Gender]Variant, len(variants)),
	}
	for g, v := range variants {
		ex.variants[g] = v
	}
	return ex
}

// Variant returns the data for gender g and whether the record has it.
func (e *Exercise) Variant(g Gender) (Variant, bool) {
	v, ok := e.variants[g]
	return v, ok
}

// Genders lists the body types this record carries a variant for.
func (e *Exercise) Genders() []Gender {
	var out []Gender
	for _, g := range Genders {
		if _, ok := e.variants[g]; ok {
			out = append(out, g)
		}
	}
	return out
}
