// handlers/export_handler.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/SajeedAninda/Sovereign-Assets-Server/models"
	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
	"github.com/SajeedAninda/Sovereign-Assets-Server/utils"
)

// ExportHandler produces the downloadable inventory workbook.
type ExportHandler struct {
	Assets store.AssetStore
	Logger *zap.Logger
}

var assetReportHeader = []string{
	"Product Name",
	"Product Type",
	"Quantity",
	"Availability",
	"Workflow Status",
	"Posted By",
	"Company",
}

// AssetReport streams an XLSX workbook of the admin's assets.
func (h *ExportHandler) AssetReport(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	assets, err := h.Assets.List(r.Context(), store.AssetFilter{PostedBy: email})
	if err != nil {
		h.Logger.Error("report asset query failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	payload, err := buildAssetReport(assets)
	if err != nil {
		h.Logger.Error("report generation failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	filename := fmt.Sprintf("asset-report-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func buildAssetReport(assets []models.Asset) ([]byte, error) {
	f := excelize.NewFile()

	const sheetName = "Assets"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, title := range assetReportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, err
		}
	}

	for i, asset := range assets {
		availability := "stockOut"
		if asset.Available() {
			availability = "available"
		}
		row := []any{
			asset.ProductName,
			asset.ProductType,
			asset.ProductQuantity,
			availability,
			asset.Status,
			asset.PostedBy,
			asset.CompanyName,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
