package reporting

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRender_WritesSheets(t *testing.T) {
	summary := &Sheet{Name: "Summary", Headers: []string{"Service", "Total"}, Widths: []float64{20, 10}}
	summary.AddRow("lab", 3)
	summary.AddRow("radiology", 0)
	records := &Sheet{Name: "Records", Headers: []string{"ID", "Notes"}}
	records.AddRow("a1", nil)

	out, err := Render(summary, records)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{"Summary", "Records"}) {
		t.Errorf("unexpected sheets %v", got)
	}

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	want := [][]string{{"Service", "Total"}, {"lab", "3"}, {"radiology", "0"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("summary rows = %v, want %v", rows, want)
	}

	rows, err = f.GetRows("Records")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "a1" {
		t.Errorf("unexpected record rows %v", rows)
	}
}

func TestRender_NoSheets(t *testing.T) {
	if _, err := Render(); err == nil {
		t.Error("expected error for an empty workbook")
	}
}
