package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
)

func loadTestdata(t *testing.T, name string) *matrix.Dataset {
	t.Helper()
	d, err := Load(context.Background(), filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Load(%s): %v", name, err)
	}
	return d
}

func TestDetect(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"data.json", "json"},
		{"DATA.JSON", "json"},
		{"dir.v2/data.toml", "toml"},
		{"progress.xlsx", "xlsx"},
		{"mongodb://localhost:27017/progress", "mongodb"},
		{"mongodb+srv://cluster.example.net/progress", "mongodb"},
	}
	for _, tt := range tests {
		l, err := Detect(tt.src)
		if err != nil {
			t.Errorf("Detect(%q) error: %v", tt.src, err)
			continue
		}
		if l.Type() != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.src, l.Type(), tt.want)
		}
	}

	for _, src := range []string{"data.csv", "dir.json/data", "http://example.com/x"} {
		if _, err := Detect(src); !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("Detect(%q) error = %v, want UNSUPPORTED", src, err)
		}
	}
}

func TestLoadJSON(t *testing.T) {
	d := loadTestdata(t, "dataset.json")

	if len(d.Structures) != 2 {
		t.Fatalf("structures = %d, want 2", len(d.Structures))
	}
	st, ok := d.Structure("K-101")
	if !ok || st.Family != matrix.FamilyBridge || st.Name.Get("tr") != "Dere Köprüsü" {
		t.Errorf("K-101 = %+v", st)
	}
	if got := len(d.RowsOf("K-101")); got != 5 {
		t.Errorf("K-101 rows = %d, want 5", got)
	}
	cols := d.ColumnsOf(matrix.FamilyBridge)
	if len(cols) != 11 || cols[0].ID != "c-setout" {
		t.Errorf("bridge columns = %d, first %s", len(cols), cols[0].ID)
	}

	rows := d.RowsOf("K-101")
	if rows[1].Direction != matrix.DirectionLeft || rows[3].Direction != matrix.DirectionCenter {
		t.Errorf("directions not normalized: %s, %s", rows[1].Direction, rows[3].Direction)
	}
	if c := rows[2].Cell("c-pile"); c.Status != matrix.StatusRejected || c.Code != "PK-03" {
		t.Errorf("k101-p1-r c-pile = %+v", c)
	}
}

func TestLoadTOML(t *testing.T) {
	d := loadTestdata(t, "dataset.toml")

	if len(d.Rows) != 2 || len(d.Columns) != 2 {
		t.Fatalf("rows %d, columns %d", len(d.Rows), len(d.Columns))
	}
	c1, p1 := d.Rows[0], d.Rows[1]
	if c1.FoundationType != matrix.FoundationAbutment {
		t.Errorf("c1 foundation = %q", c1.FoundationType)
	}
	if p1.FoundationType != matrix.FoundationPier || p1.Direction != matrix.DirectionLeft {
		t.Errorf("p1 = %q %q", p1.FoundationType, p1.Direction)
	}
	if c := c1.Cell("c-pile"); matrix.ParseStatus(string(c.Status)) != matrix.StatusSigned {
		t.Errorf("c1 c-pile status = %q", c.Status)
	}
	if c := p1.Cell("c-pile"); c != matrix.Placeholder() {
		t.Errorf("missing cell = %+v, want placeholder", c)
	}
}

func TestLoadTOMLUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	doc := "[[structures]]\nid = \"K-1\"\nfamily = \"bridge\"\ncolour = \"red\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(context.Background(), path)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("error = %v, want INVALID_FORMAT", err)
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error should name the key: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"structures": [], "rowz": []}`))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := loadTestdata(t, "dataset.json")

	var buf bytes.Buffer
	if err := WriteJSON(&buf, d); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	back.Normalize()
	if !reflect.DeepEqual(d, back) {
		t.Error("dataset changed across a JSON round trip")
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	d := loadTestdata(t, "dataset.json")

	path := filepath.Join(t.TempDir(), "progress.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteXLSX(f, d); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	back, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(d.Structures, back.Structures) {
		t.Errorf("structures differ:\n got %+v\nwant %+v", back.Structures, d.Structures)
	}
	if !reflect.DeepEqual(d.Columns, back.Columns) {
		t.Errorf("columns differ")
	}
	if !reflect.DeepEqual(d.Rows, back.Rows) {
		t.Errorf("rows differ:\n got %+v\nwant %+v", back.Rows, d.Rows)
	}
}

func TestReadXLSXHeaders(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names and headers in any case and order; Sheet1 is ignored.
	mustSheet := func(name string, rows [][]any) {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}
		for i, r := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &r); err != nil {
				t.Fatal(err)
			}
		}
	}
	mustSheet("Structures", [][]any{
		{"Family", "ID", "Name", "Name_TR", "Notes"},
		{"Köprü", "K-9", "Hill Bridge", "Tepe Köprüsü", "ignored"},
	})
	mustSheet("ROWS", [][]any{
		{"id", "structure_id", "location", "order_index"},
		{"r1", "K-9", "P1", 2.0},
		{},
		{"r2", "K-9", "C1", ""},
	})
	mustSheet("cells", [][]any{
		{"row_id", "column_id", "code", "status"},
		{"r1", "c-pile", "PK-1", "signed"},
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	d, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	d.Normalize()

	want := matrix.Structure{ID: "K-9", Family: matrix.FamilyBridge, Name: matrix.LocalizedText{"en": "Hill Bridge", "tr": "Tepe Köprüsü"}}
	if len(d.Structures) != 1 || !reflect.DeepEqual(d.Structures[0], want) {
		t.Errorf("structures = %+v", d.Structures)
	}
	if len(d.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (blank lines skipped)", len(d.Rows))
	}
	if d.Rows[0].OrderIndex != 2 {
		t.Errorf("order_index = %d, want 2", d.Rows[0].OrderIndex)
	}
	if c := d.Rows[0].Cell("c-pile"); c.Status != "signed" || c.Code != "PK-1" {
		t.Errorf("cell = %+v", c)
	}
	if len(d.Columns) != 0 {
		t.Errorf("missing columns sheet should give no columns, got %d", len(d.Columns))
	}
}

func TestReadXLSXErrors(t *testing.T) {
	build := func(sheets map[string][][]any) *bytes.Buffer {
		f := excelize.NewFile()
		defer f.Close()
		for name, rows := range sheets {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatal(err)
			}
			for i, r := range rows {
				cell, _ := excelize.CoordinatesToCellName(1, i+1)
				if err := f.SetSheetRow(name, cell, &r); err != nil {
					t.Fatal(err)
				}
			}
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			t.Fatal(err)
		}
		return &buf
	}
	structures := [][]any{{"id", "family"}, {"K-1", "bridge"}}

	tests := []struct {
		name   string
		sheets map[string][][]any
		want   string
	}{
		{"no structures", map[string][][]any{"rows": {{"id"}}}, `missing sheet "structures"`},
		{"no rows", map[string][][]any{"structures": structures}, `missing sheet "rows"`},
		{"no id header", map[string][][]any{"structures": structures, "rows": {{"location"}, {"P1"}}}, `missing "id" header`},
		{"bad order", map[string][][]any{"structures": structures, "rows": {{"id", "order_index"}, {"r1", "first"}}}, "not an integer"},
		{"unknown row", map[string][][]any{
			"structures": structures,
			"rows":       {{"id"}, {"r1"}},
			"cells":      {{"row_id", "column_id"}, {"r9", "c1"}},
		}, `unknown row "r9"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadXLSX(build(tt.sheets))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() *matrix.Dataset {
		return &matrix.Dataset{
			Structures: []matrix.Structure{{ID: "K-1", Family: matrix.FamilyBridge}},
			Columns:    []matrix.Column{{ID: "c1"}},
			Rows:       []matrix.Row{{ID: "r1", StructureID: "K-1"}},
		}
	}
	if err := Validate(base()); err != nil {
		t.Fatalf("valid dataset: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*matrix.Dataset)
	}{
		{"duplicate structure", func(d *matrix.Dataset) { d.Structures = append(d.Structures, d.Structures[0]) }},
		{"duplicate column", func(d *matrix.Dataset) { d.Columns = append(d.Columns, d.Columns[0]) }},
		{"duplicate row", func(d *matrix.Dataset) { d.Rows = append(d.Rows, d.Rows[0]) }},
		{"orphan row", func(d *matrix.Dataset) { d.Rows[0].StructureID = "K-2" }},
		{"empty id", func(d *matrix.Dataset) { d.Columns[0].ID = "" }},
		{"path id", func(d *matrix.Dataset) { d.Structures[0].ID = "../K-1"; d.Rows[0].StructureID = "../K-1" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base()
			tt.mutate(d)
			if err := Validate(d); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestMongoDatabaseName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/site42", "site42"},
		{"mongodb://localhost:27017", DefaultMongoDatabase},
		{"mongodb://user:pw@db1,db2/progress?replicaSet=rs0", "progress"},
	}
	for _, tt := range tests {
		got, err := databaseName(tt.uri)
		if err != nil {
			t.Errorf("databaseName(%q) error: %v", tt.uri, err)
			continue
		}
		if got != tt.want {
			t.Errorf("databaseName(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
	if _, err := databaseName("mongodb://host/db?connectTimeoutMS=soon"); err == nil {
		t.Error("expected error for malformed option")
	}
}

func TestMongoLoader(t *testing.T) {
	uri := os.Getenv("PROGRESSTWIN_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PROGRESSTWIN_TEST_MONGO_URI not set")
	}
	d, err := Load(context.Background(), uri)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Logf("loaded %d structures, %d columns, %d rows", len(d.Structures), len(d.Columns), len(d.Rows))
}
