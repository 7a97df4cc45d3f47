package bookings

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"skyfare/db"
	"skyfare/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reference is the short booking code printed on the ticket.
func reference(b models.Booking) string {
	hex := b.ID.Hex()
	if len(hex) > 6 {
		hex = hex[len(hex)-6:]
	}
	return strings.ToUpper(hex)
}

// PrintTicket handles GET /api/bookings/:id/ticket with a PDF e-ticket.
func PrintTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	oid, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, err := NewStore(db.BookingsCollection).Get(ctx, oid)
	if err != nil {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	}

	pdfBytes, err := RenderTicket(booking)
	if err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=ticket-"+reference(booking)+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

// RenderTicket builds the e-ticket PDF with a QR of the booking payload.
func RenderTicket(booking models.Booking) ([]byte, error) {
	qrPayload := fmt.Sprintf("%s|%s|%s", booking.ID.Hex(), booking.Flight.FlightNo, booking.JourneyDate.Format("2006-01-02"))
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "FLIGHT E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Booking Reference: #%s", reference(booking)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s %s", booking.Flight.FlightName, booking.Flight.FlightNo))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("%s -> %s", booking.From, booking.To))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Departure %s  Arrival %s  (%s)", booking.Flight.DepartureTime, booking.Flight.ArrivalTime, booking.Flight.Duration))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Journey Date: %s", booking.JourneyDate.Format("Monday, January 2, 2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Passengers")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	for i, p := range booking.Passengers {
		line := fmt.Sprintf("%d. %s, %s", i+1, p.Name, p.Age)
		if p.Gender != "" {
			line += ", " + p.Gender
		}
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}
	pdf.Ln(4)

	total := booking.TotalPrice
	if total == 0 {
		total = booking.Flight.EffectivePrice() * len(booking.Passengers)
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total Paid: %d", total))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
