// Package render lays a ticket out as a single-page PDF.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/pkg/format"
)

const (
	pageWidth   = 210.0
	margin      = 15.0
	contentW    = pageWidth - 2*margin
	lineHeight  = 6.0
	labelWidth  = 40.0
	headerColor = 22
)

func TicketPDF(t models.Ticket) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetTitle("Ticket "+t.BookingReference, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFillColor(headerColor, 58, 110)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 14, "BOARDING PASS", "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelWidth, lineHeight, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW-labelWidth, lineHeight, tr(value), "", 1, "L", false, 0, "")
	}

	field("Passenger", strings.ToUpper(t.Passenger.FullName()))
	field("Booking reference", t.BookingReference)
	field("Cabin", cabinLabel(t.CabinClass))
	field("Issued", t.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))
	pdf.Ln(3)

	it := t.Itinerary
	for i, seg := range it.Segments {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(230, 236, 245)
		title := fmt.Sprintf("Flight %d  %s  %s", i+1, seg.FlightNumber, seg.Airline.Name)
		pdf.CellFormat(contentW, 8, tr(title), "", 1, "L", true, 0, "")

		field("From", fmt.Sprintf("%s (%s)", seg.Departure.City, seg.Departure.Airport))
		field("To", fmt.Sprintf("%s (%s)", seg.Arrival.City, seg.Arrival.Airport))
		field("Departs", localLabel(seg.Departure.Local))
		arrives := localLabel(seg.Arrival.Local)
		if seg.DayOffset != 0 {
			arrives += " (" + format.DayOffset(seg.DayOffset) + ")"
		}
		field("Arrives", arrives)
		field("Duration", seg.Duration.Formatted)
		if i < len(t.Seats) {
			field("Seat", t.Seats[i])
		}
		pdf.Ln(2)

		if i == 0 && it.Layover != nil {
			pdf.SetFont("Helvetica", "I", 10)
			layover := fmt.Sprintf("Layover in %s (%s): %s", it.Layover.City, it.Layover.Airport, it.Layover.Gap.Formatted)
			pdf.CellFormat(contentW, lineHeight, tr(layover), "", 1, "L", false, 0, "")
			pdf.Ln(2)
		}
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 8, "Total travel time: "+it.TotalTravelTime, "T", 1, "L", false, 0, "")

	pdf.SetY(-margin - lineHeight)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(contentW, lineHeight, "Not a valid travel document. Ticket "+t.ID, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrapf(err, "render ticket %s", t.ID)
	}
	return buf.Bytes(), nil
}

func localLabel(l models.LocalTime) string {
	label := l.Date + " " + l.Time
	if l.Abbreviation != "" {
		label += " " + l.Abbreviation
	}
	return label
}

func cabinLabel(c string) string {
	words := strings.Split(strings.ReplaceAll(c, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
