package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"rentdash/internal/locale"
	"rentdash/internal/models"
)

const (
	compareSheet = "Comparison"
	seriesSheet  = "Series"
)

// CrossSectionWorkbook lays the grid out as one row per area and one
// column per unit type. Missing cells stay blank; estimated values are
// followed by an "E" flag column.
func CrossSectionWorkbook(cs models.CrossSection, l *locale.Localizer) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", compareSheet); err != nil {
		f.Close()
		return nil, err
	}

	headers := []string{l.AreaAxis()}
	for _, ut := range cs.UnitTypes {
		headers = append(headers, l.UnitType(ut), "E")
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(compareSheet, cell, h)
	}
	f.SetColWidth(compareSheet, "A", "A", 48)

	for i, area := range cs.Areas {
		row := i + 2
		f.SetCellValue(compareSheet, fmt.Sprintf("A%d", row), l.Geography(area))
		for j, ut := range cs.UnitTypes {
			cv := cs.PerType[ut][i]
			valCell, _ := excelize.CoordinatesToCellName(2+2*j, row)
			flagCell, _ := excelize.CoordinatesToCellName(3+2*j, row)
			if cv.Numeric != nil {
				f.SetCellValue(compareSheet, valCell, *cv.Numeric)
			}
			if cv.Estimated {
				f.SetCellValue(compareSheet, flagCell, "E")
			}
		}
	}
	return f, nil
}

// SeriesWorkbook writes one row per quarter.
func SeriesWorkbook(s models.Series, l *locale.Localizer) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", seriesSheet); err != nil {
		f.Close()
		return nil, err
	}

	f.SetCellValue(seriesSheet, "A1", l.SeriesXAxis())
	f.SetCellValue(seriesSheet, "B1", l.SeriesName())
	f.SetCellValue(seriesSheet, "C1", "E")
	for i, p := range s.Points {
		row := i + 2
		f.SetCellValue(seriesSheet, fmt.Sprintf("A%d", row), p.Label)
		if p.Y != nil {
			f.SetCellValue(seriesSheet, fmt.Sprintf("B%d", row), *p.Y)
		}
		if p.Estimated {
			f.SetCellValue(seriesSheet, fmt.Sprintf("C%d", row), "E")
		}
	}
	return f, nil
}

// WriteWorkbook streams f to w and closes it.
func WriteWorkbook(w io.Writer, f *excelize.File) error {
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
