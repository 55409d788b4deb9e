package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// OfferSheetData holds one chosen flight/hotel pair for the printable offer
// sheet.
type OfferSheetData struct {
	TravelerName  string
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Flight        FlightOffer
	Hotel         HotelOffer
	NumNights     int
}

// GenerateOfferSheet renders a selected offer pair to PDF bytes (no
// filesystem needed).
func GenerateOfferSheet(data OfferSheetData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	estimated := data.Flight.Source == SourceFallback || data.Hotel.Source == SourceFallback

	// ── Watermark for synthetic data ─────────────────────────
	if estimated {
		pdf.SetTextColor(230, 230, 230)
		pdf.SetFont("Helvetica", "B", 55)
		pdf.TransformBegin()
		pdf.TransformRotate(42, 60, 200)
		pdf.Text(60, 200, "ESTIMATION")
		pdf.TransformEnd()
		pdf.SetTextColor(0, 0, 0)
	}

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Voyago", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Votre sélection de voyage", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "Ceci n'est pas une confirmation de réservation. Les prix peuvent changer — vérifiez auprès du partenaire avant de réserver."
	if estimated {
		disclaimer = "PRIX ESTIMÉS — données de secours, aucune offre en direct. Ceci n'est pas une confirmation de réservation."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helpers ──────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Traveler Info ─────────────────────────────────────────
	sectionHeader("Voyageur")
	name := data.TravelerName
	if name == "" {
		name = "Voyageur"
	}
	row("Nom", name)
	row("Généré le", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Aperçu du voyage")
	row("Itinéraire", fmt.Sprintf("%s - %s - %s", data.Origin, data.Destination, data.Origin))
	row("Départ", fmtDateReadable(data.DepartureDate))
	row("Retour", fmtDateReadable(data.ReturnDate))
	row("Durée", fmt.Sprintf("%d nuits", data.NumNights))
	pdf.Ln(4)

	// ── Selected Flight ───────────────────────────────────────
	sectionHeader("Vol sélectionné")
	row("Compagnie", data.Flight.Airline)
	row("Horaires", fmt.Sprintf("%s - %s (%s)", data.Flight.DepartureTime, data.Flight.ArrivalTime, data.Flight.Duration))
	stops := "Direct"
	if data.Flight.Stops > 0 {
		stops = fmt.Sprintf("%d escale(s)", data.Flight.Stops)
	}
	row("Escales", stops)
	row("Prix", offerPriceLabel(data.Flight.Price, data.Flight.PriceDisplay))
	pdf.Ln(4)

	// ── Selected Hotel ────────────────────────────────────────
	sectionHeader("Hôtel sélectionné")
	row("Hôtel", data.Hotel.Name)
	if data.Hotel.Stars > 0 {
		row("Catégorie", fmt.Sprintf("%d étoiles", data.Hotel.Stars))
	}
	if data.Hotel.Rating > 0 {
		row("Note", fmt.Sprintf("%.1f / 5.0", data.Hotel.Rating))
	}
	row("Arrivée", fmtDateReadable(data.DepartureDate))
	row("Départ", fmtDateReadable(data.ReturnDate))
	row("Prix / nuit", offerPriceLabel(data.Hotel.Price, data.Hotel.PriceDisplay))
	pdf.Ln(4)

	// ── Cost Summary ──────────────────────────────────────────
	if data.Flight.Price != nil && data.Hotel.Price != nil {
		total := *data.Flight.Price + *data.Hotel.Price*data.NumNights
		sectionHeader("Estimation du coût")
		row("Vol (par personne)", fmt.Sprintf("%d€", *data.Flight.Price))
		row("Hôtel total", fmt.Sprintf("%d€ x %d nuits = %d€", *data.Hotel.Price, data.NumNights, *data.Hotel.Price*data.NumNights))

		pdf.SetFillColor(212, 168, 67)
		pdf.SetTextColor(13, 24, 37)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(55, 9, "TOTAL ESTIMÉ", "", 0, "L", true, 0, "")
		pdf.CellFormat(115, 9, fmt.Sprintf("%d€", total), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	// ── Booking Links ─────────────────────────────────────────
	sectionHeader("Liens de réservation")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(40, 40, 90)
	pdf.MultiCell(170, 5, "Vol : "+data.Flight.BookingLink, "", "L", false)
	pdf.MultiCell(170, 5, "Hôtel : "+data.Hotel.BookingLink, "", "L", false)
	pdf.SetTextColor(0, 0, 0)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Généré par Voyago · Pas une confirmation de réservation · Prix susceptibles de changer",
		"", 0, "C", false, 0, "")

	// ── Write to buffer ───────────────────────────────────────
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse(dateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}

func offerPriceLabel(price *int, display string) string {
	if price != nil {
		return fmt.Sprintf("%d€", *price)
	}
	if display != "" {
		return display
	}
	return "Prix sur demande"
}
