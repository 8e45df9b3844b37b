// Package fixture supplies the startup data for both dashboards: compile-time
// default literals and loaders for table files.
package fixture

import "chartweb/internal/dataset"

// Demographic field names.
const (
	FieldState          = "State"
	FieldTotal          = "Total"
	FieldNonHispanic    = "NonHispanic"
	FieldHispanic       = "Hispanic"
	FieldWhiteTotal     = "WhiteTotal"
	FieldBlackTotal     = "BlackTotal"
	FieldOtherTotal     = "OtherTotal"
	FieldTwoOrMoreTotal = "TwoOrMoreTotal"
)

// DemographicFields lists the demographic table headers in column order.
var DemographicFields = []string{
	FieldState, FieldTotal, FieldNonHispanic, FieldHispanic,
	FieldWhiteTotal, FieldBlackTotal, FieldOtherTotal, FieldTwoOrMoreTotal,
}

var demographicRows = [][]string{
	{"Delaware", "993635", "894939", "98696", "634244", "218266", "96881", "64130"},
	{"District of Columbia", "670587", "593419", "77168", "265633", "297101", "78157", "47278"},
	{"Florida", "21634500", "15896200", "5738280", "13807400", "3355707", "3789025", "2743468"},
	{"Georgia", "10722300", "9643870", "1078460", "5820024", "3373953", "1017540", "638881"},
}

// DefaultDemographics returns a fresh copy of the built-in four-state table.
func DefaultDemographics() dataset.Table {
	rows := make([][]string, len(demographicRows))
	for i, r := range demographicRows {
		rows[i] = append([]string(nil), r...)
	}
	t, err := dataset.NewTable(append([]string(nil), DemographicFields...), rows)
	if err != nil {
		panic("fixture: built-in demographics table is invalid: " + err.Error())
	}
	return t
}

// DefaultCategories returns a fresh copy of the category editor's fallback
// dataset.
func DefaultCategories() dataset.CategoryDataset {
	return dataset.CategoryDataset{
		Labels: []string{"A", "B", "C", "D"},
		Values: []float64{10, 20, 30, 40},
	}
}
