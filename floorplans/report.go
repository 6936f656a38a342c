package floorplans

import (
	"bytes"
	"fmt"
	"net/http"
	"os"

	"expofloor/middleware"
	"expofloor/models"
	"expofloor/policy"
	"expofloor/stats"
	"expofloor/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// publicViewerURL is the anonymous viewer address encoded into share QR codes.
func publicViewerURL(planID string) string {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/api/public/floorplans/" + planID
}

// Report renders a booth-inventory PDF for a floor plan. Pricing and
// exhibitor contacts are included, so it carries the mutation gate.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	plan, ok := h.loadPlan(w, r, ps)
	if !ok {
		return
	}

	caller := middleware.CallerFromRequest(r)
	if !policy.CanMutate(caller, plan.UserID) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	st := stats.CalculateBoothStats(plan.State)
	details := stats.BoothDetails(plan.State)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Booth Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Floor plan: %s", plan.Name))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s    Floor: %d    Version: %d", plan.Status, plan.Floor, plan.Version))
	pdf.Ln(6)
	if plan.EventID != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Event: %s", plan.EventID))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 8, "Booth", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Exhibitor", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, booth := range details {
		company := ""
		if booth.Exhibitor != nil {
			company = booth.Exhibitor.CompanyName
		}
		pdf.CellFormat(30, 7, booth.Number, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, booth.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", booth.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 7, company, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 7, fmt.Sprintf("Booths: %d   Available: %d   Reserved: %d   Sold: %d   On hold: %d",
		st.TotalBooths, st.Available, st.Reserved, st.Sold, st.OnHold))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Total revenue: %.2f", st.TotalRevenue))

	// Published plans get a QR link to the public viewer.
	if plan.Status == models.StatusPublished {
		if qrPNG, err := qrcode.Encode(publicViewerURL(plan.ID.Hex()), qrcode.Medium, 256); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(qrPNG))
			pdf.ImageOptions("share-qr", 160, 15, 35, 35, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=floorplan-"+plan.ID.Hex()+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ShareQR returns a QR code pointing at the public viewer for a published
// plan.
func (h *Handler) ShareQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	plan, ok := h.loadPlan(w, r, ps)
	if !ok {
		return
	}

	caller := middleware.CallerFromRequest(r)
	if !policy.CanMutate(caller, plan.UserID) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	if plan.Status != models.StatusPublished {
		utils.RespondWithError(w, http.StatusBadRequest, "Only published floor plans can be shared")
		return
	}

	png, err := qrcode.Encode(publicViewerURL(plan.ID.Hex()), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
