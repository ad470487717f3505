package source

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"
)

var formHeaders = []string{"Timestamp", "Card / Word", "Language Pack", "Issue Type", "Status"}

func TestRowsFromGrid(t *testing.T) {
	grid := [][]string{
		{"Timestamp", "Card / Word", "", "Status", "Status"},
		{"t1", "casa", "ignored", "Processed", "dup"},
		{"t2"},
		{},
	}

	rows := rowsFromGrid(grid)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0]["Card / Word"] != "casa" {
		t.Errorf("expected casa, got %q", rows[0]["Card / Word"])
	}
	if rows[0]["Status"] != "Processed" {
		t.Errorf("expected first Status column to win, got %q", rows[0]["Status"])
	}
	if _, ok := rows[0][""]; ok {
		t.Error("expected blank header to be skipped")
	}
	if v, ok := rows[1]["Status"]; !ok || v != "" {
		t.Errorf("expected missing trailing cell as empty string, got %q (present=%v)", v, ok)
	}
	if len(rows[2]) != 3 {
		t.Errorf("expected blank row to keep all headers, got %v", rows[2])
	}
}

func TestRowsFromEmptyGrid(t *testing.T) {
	if rows := rowsFromGrid(nil); rows == nil || len(rows) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", rows)
	}
}

func TestMemoryWriteCell(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(formHeaders, []string{"t1", "casa", "spanish", "Typo"})

	if err := m.WriteCell(ctx, 2, 5, "Processed"); err != nil {
		t.Fatal(err)
	}
	if got := m.Cell(2, 5); got != "Processed" {
		t.Errorf("expected Processed, got %q", got)
	}

	rows, _ := m.Rows(ctx)
	if rows[0]["Status"] != "Processed" {
		t.Errorf("expected status visible through Rows, got %q", rows[0]["Status"])
	}

	if err := m.WriteCell(ctx, 0, 1, "x"); err == nil {
		t.Error("expected error for row 0")
	}

	m.FailRows = map[int]error{3: errors.New("quota exceeded")}
	if err := m.WriteCell(ctx, 3, 5, "Processed"); err == nil {
		t.Error("expected injected failure")
	}

	writes := m.Writes()
	if len(writes) != 1 || writes[0] != (CellWrite{Row: 2, Col: 5, Value: "Processed"}) {
		t.Errorf("unexpected writes: %+v", writes)
	}
}

func TestWorkbookReadWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "responses.xlsx")
	sheet := "Form Responses 1"

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Timestamp", "Card / Word", "Language Pack", "Issue Type", "Status"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A2", &[]interface{}{"t1", "casa", "spanish", "Typo"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	wb := NewWorkbook(path, sheet)

	headers, err := wb.Headers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(headers) != 5 || headers[4] != "Status" {
		t.Errorf("unexpected headers %v", headers)
	}

	if err := wb.WriteCell(ctx, 2, 5, "Processed"); err != nil {
		t.Fatal(err)
	}

	rows, err := wb.Rows(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["Card / Word"] != "casa" || rows[0]["Status"] != "Processed" {
		t.Errorf("unexpected row %v", rows[0])
	}
}

func TestWorkbookMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	if _, err := NewWorkbook(path, "Form Responses 1").Rows(context.Background()); err == nil {
		t.Error("expected error for missing worksheet")
	}
}

type recordedRequest struct {
	method string
	path   string
	body   string
}

func TestGoogleReadWrite(t *testing.T) {
	var mu sync.Mutex
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPut {
			_, _ = w.Write([]byte(`{"updatedCells":1}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"range":          "'Form Responses 1'!A1:E3",
			"majorDimension": "ROWS",
			"values": [][]interface{}{
				{"Timestamp", "Card / Word", "Language Pack", "Issue Type", "Status"},
				{"t1", "casa", "spanish", "Typo"},
				{"t2", "haus", "german", "Translation", "Processed"},
			},
		})
	}))
	defer srv.Close()

	ctx := context.Background()
	g, err := NewGoogleWithOptions(ctx, "sheet-id", "Form Responses 1",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := g.Rows(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Status"] != "" || rows[1]["Status"] != "Processed" {
		t.Errorf("unexpected statuses %q %q", rows[0]["Status"], rows[1]["Status"])
	}

	if err := g.WriteCell(ctx, 2, 5, "Processed"); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if !strings.Contains(requests[0].path, "/spreadsheets/sheet-id/values/") {
		t.Errorf("unexpected read path %q", requests[0].path)
	}
	put := requests[1]
	if put.method != http.MethodPut {
		t.Errorf("expected PUT, got %s", put.method)
	}
	if !strings.HasSuffix(put.path, "'Form Responses 1'!E2") {
		t.Errorf("expected update of E2, got path %q", put.path)
	}
	if !strings.Contains(put.body, "Processed") {
		t.Errorf("expected value in body, got %s", put.body)
	}
}

func TestQuotedSheet(t *testing.T) {
	g := &Google{sheet: "Bob's Responses"}
	if got := g.quotedSheet(); got != "'Bob''s Responses'" {
		t.Errorf("unexpected quoting %q", got)
	}
}
