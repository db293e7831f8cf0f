package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/css-ra/tnrange-cli/internal/edf"
	"github.com/css-ra/tnrange-cli/internal/model"
	"github.com/css-ra/tnrange-cli/internal/report"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// stubExecutor serves a fixed hub-range dataset for any dial plan.
type stubExecutor struct {
	hub []model.Row
}

func (s *stubExecutor) Query(ctx context.Context, query string) (*edf.Result, error) {
	var rows []model.Row
	if strings.Contains(query, "CSI.DIAL_PLAN_SITE_RANGE") {
		rows = s.hub
	}
	if strings.HasPrefix(query, "SELECT COUNT(*) AS ROW_COUNT FROM (") {
		return &edf.Result{Rows: []model.Row{{"ROW_COUNT": strconv.Itoa(len(rows))}}}, nil
	}
	return &edf.Result{Rows: rows}, nil
}

func (s *stubExecutor) PageClause(offset, limit int) string {
	return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
}

func (s *stubExecutor) Close() {}

func testMux(exec edf.Executor) *http.ServeMux {
	builder := report.NewBuilder(exec, report.Options{
		PageSize:          100,
		PageWorkers:       2,
		RemotePageWorkers: 2,
		AccountWorkers:    2,
	})
	return newServeMux(builder, report.DefaultLayout(), 30*time.Second)
}

func TestServeHealth(t *testing.T) {
	mux := testMux(&stubExecutor{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestServeTeleNumbersBadBody(t *testing.T) {
	mux := testMux(&stubExecutor{})

	req := httptest.NewRequest(http.MethodPost, "/api/telenumbers", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeTeleNumbersMissingInputs(t *testing.T) {
	mux := testMux(&stubExecutor{})

	body := `{"params":[],"devices":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/telenumbers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "dialplanId or customerName")
}

func TestServeTeleNumbersSuccess(t *testing.T) {
	mux := testMux(&stubExecutor{hub: []model.Row{{
		model.ColSiteID:         "S1",
		model.ColSiteDetailID:   "D1",
		model.ColDialPlanID:     "DP1",
		model.ColHubRmtInd:      model.HubIndicatorCorporate,
		model.ColPBXBeginRange:  "5551000",
		model.ColLastUpdateDate: "01-JAN-20",
	}}})

	body := `{"params":[{"type":"json","name":"dialplanId","value":["DP-1"]}],"devices":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/telenumbers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp teleNumbersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "BVoIP Tele Number data completed", resp.Message)
	assert.Equal(t, "BVoIP Tele Number Ranges report load completed", resp.UserMessage)
	assert.Regexp(t,
		regexp.MustCompile(`^telenumber_ranges_\d{2}-\d{2}-\d{4}_\d{2}-\d{2}-\d{2}\.xlsx$`),
		resp.Filename)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "application/vnd.ms-excel", resp.Data[0].Type)

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].Value)
	require.NoError(t, err)
	wb, err := xlsx.OpenBinary(raw)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 3)
	// the hub row made it into the TN_RANGES sheet
	require.Len(t, wb.Sheet["TN_RANGES"].Rows, 2)
	assert.Equal(t, "S1", wb.Sheet["TN_RANGES"].Rows[1].Cells[0].String())
}

func TestServeTeleNumbersEmptyResolutionSucceeds(t *testing.T) {
	mux := testMux(&stubExecutor{})

	// customer name that resolves to no dial plans still yields a workbook
	body := `{"params":[{"type":"json","name":"customerName","value":["Nobody"]}],"devices":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/telenumbers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp teleNumbersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].Value)
	require.NoError(t, err)
	wb, err := xlsx.OpenBinary(raw)
	require.NoError(t, err)
	// header rows only
	require.Len(t, wb.Sheet["TN_RANGES"].Rows, 1)
}
