package excel

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadColumns_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	content := "load,temp\n1.5,20\n,21\n3.5,not-a-number\n4.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	set, err := NewColumnReader(path).ReadColumns()
	if err != nil {
		t.Fatalf("ReadColumns failed: %v", err)
	}

	if len(set.Names) != 2 || set.Names[0] != "load" || set.Names[1] != "temp" {
		t.Fatalf("unexpected headers: %v", set.Names)
	}

	load, ok := set.Column("load")
	if !ok {
		t.Fatal("load column missing")
	}
	if len(load) != 4 {
		t.Fatalf("load length = %d, want 4", len(load))
	}
	if load[0] != 1.5 || !math.IsNaN(load[1]) || load[2] != 3.5 || load[3] != 4.0 {
		t.Errorf("load column wrong: %v", load)
	}

	// Non-numeric cells and cells missing from short rows become NaN
	temp, _ := set.Column("temp")
	if temp[0] != 20 || temp[1] != 21 || !math.IsNaN(temp[2]) || !math.IsNaN(temp[3]) {
		t.Errorf("temp column wrong: %v", temp)
	}
}

func TestReadColumns_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.xlsx")

	f := excelize.NewFile()
	cells := map[string]interface{}{
		"A1": "pressure", "B1": "flow",
		"A2": 100.5, "B2": 7,
		"A3": nil, "B3": 8, // blank A3 becomes a gap
		"A4": 102.0, "B4": 9,
	}
	for cell, value := range cells {
		if value == nil {
			continue
		}
		if err := f.SetCellValue("Sheet1", cell, value); err != nil {
			t.Fatalf("failed to set %s: %v", cell, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save fixture: %v", err)
	}

	set, err := NewColumnReader(path).ReadColumns()
	if err != nil {
		t.Fatalf("ReadColumns failed: %v", err)
	}

	pressure, ok := set.Column("pressure")
	if !ok {
		t.Fatal("pressure column missing")
	}
	if len(pressure) != 3 {
		t.Fatalf("pressure length = %d, want 3", len(pressure))
	}
	if pressure[0] != 100.5 || !math.IsNaN(pressure[1]) || pressure[2] != 102.0 {
		t.Errorf("pressure column wrong: %v", pressure)
	}
}

func TestReadColumns_MissingFile(t *testing.T) {
	_, err := NewColumnReader("/nonexistent/file.csv").ReadColumns()
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestReadColumns_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("a,b\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := NewColumnReader(path).ReadColumns()
	if err == nil {
		t.Fatal("expected an error for a file without data rows")
	}
}
