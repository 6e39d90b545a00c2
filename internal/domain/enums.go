package domain

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelAllLevels    Level = "all-levels"
)

type DurationUnit string

const (
	UnitDay   DurationUnit = "Day"
	UnitWeek  DurationUnit = "Week"
	UnitMonth DurationUnit = "Month"
	UnitHour  DurationUnit = "Hour"
)

// ValidLevels is the canonical set of accepted course level strings.
var ValidLevels = map[Level]bool{
	LevelBeginner: true, LevelIntermediate: true,
	LevelAdvanced: true, LevelAllLevels: true,
}

// ValidDurationUnits is the canonical set of accepted duration units.
var ValidDurationUnits = map[DurationUnit]bool{
	UnitDay: true, UnitWeek: true, UnitMonth: true, UnitHour: true,
}

// Option is a label/value pair offered by a select input.
type Option struct {
	Label string
	Value string
}

// LevelOptions lists levels in display order.
var LevelOptions = []Option{
	{Label: "Beginner", Value: string(LevelBeginner)},
	{Label: "Intermediate", Value: string(LevelIntermediate)},
	{Label: "Advanced", Value: string(LevelAdvanced)},
	{Label: "All Levels", Value: string(LevelAllLevels)},
}

// DurationUnitOptions lists duration units in display order.
var DurationUnitOptions = []Option{
	{Label: "Day", Value: string(UnitDay)},
	{Label: "Week", Value: string(UnitWeek)},
	{Label: "Month", Value: string(UnitMonth)},
	{Label: "Hour", Value: string(UnitHour)},
}

// LanguageOptions lists the course languages offered by the wizard.
var LanguageOptions = []Option{
	{Label: "English", Value: "English"},
	{Label: "Spanish", Value: "Spanish"},
	{Label: "French", Value: "French"},
	{Label: "Arabic", Value: "Arabic"},
	{Label: "German", Value: "German"},
}
