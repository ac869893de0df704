// Package export writes series and cross-sections in columnar (Arrow IPC)
// and spreadsheet (xlsx) form.
package export

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"rentdash/internal/models"
)

// SeriesSchema is the Arrow layout of a time series: one row per quarter.
var SeriesSchema = arrow.NewSchema([]arrow.Field{
	{Name: "quarter", Type: arrow.BinaryTypes.String},
	{Name: "label", Type: arrow.BinaryTypes.String},
	{Name: "value", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: "estimated", Type: arrow.FixedWidthTypes.Boolean},
}, nil)

// CrossSectionSchema is the Arrow layout of a comparison grid in long
// form: one row per (area, unit type).
var CrossSectionSchema = arrow.NewSchema([]arrow.Field{
	{Name: "area", Type: arrow.BinaryTypes.String},
	{Name: "unit_type", Type: arrow.BinaryTypes.String},
	{Name: "value", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: "estimated", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "present", Type: arrow.FixedWidthTypes.Boolean},
}, nil)

// SeriesRecord builds an Arrow record from a series. Missing points are
// nulls in the value column. The caller must Release the record.
func SeriesRecord(mem memory.Allocator, s models.Series) arrow.Record {
	b := array.NewRecordBuilder(mem, SeriesSchema)
	defer b.Release()

	quarters := b.Field(0).(*array.StringBuilder)
	labels := b.Field(1).(*array.StringBuilder)
	values := b.Field(2).(*array.Float64Builder)
	estimated := b.Field(3).(*array.BooleanBuilder)

	for _, p := range s.Points {
		quarters.Append(p.X)
		labels.Append(p.Label)
		if p.Y == nil {
			values.AppendNull()
		} else {
			values.Append(*p.Y)
		}
		estimated.Append(p.Estimated)
	}
	return b.NewRecord()
}

// CrossSectionRecord builds an Arrow record from a cross-section, unit
// types outer, areas inner. The caller must Release the record.
func CrossSectionRecord(mem memory.Allocator, cs models.CrossSection) arrow.Record {
	b := array.NewRecordBuilder(mem, CrossSectionSchema)
	defer b.Release()

	areas := b.Field(0).(*array.StringBuilder)
	types := b.Field(1).(*array.StringBuilder)
	values := b.Field(2).(*array.Float64Builder)
	estimated := b.Field(3).(*array.BooleanBuilder)
	present := b.Field(4).(*array.BooleanBuilder)

	for _, ut := range cs.UnitTypes {
		for i, cv := range cs.PerType[ut] {
			areas.Append(cs.Areas[i])
			types.Append(ut)
			if cv.Numeric == nil {
				values.AppendNull()
			} else {
				values.Append(*cv.Numeric)
			}
			estimated.Append(cv.Estimated)
			present.Append(cv.Present)
		}
	}
	return b.NewRecord()
}

// WriteArrow writes rec as a single-batch Arrow IPC stream.
func WriteArrow(w io.Writer, mem memory.Allocator, rec arrow.Record) error {
	iw := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return fmt.Errorf("write arrow stream: %w", err)
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("close arrow stream: %w", err)
	}
	return nil
}
