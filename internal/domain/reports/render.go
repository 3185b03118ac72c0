package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

func WriteAttendanceCSV(w io.Writer, rows []AttendanceRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"userId", "name", "email", "daysPresent", "daysRemote", "eventsJoined"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.UserID,
			row.Name,
			row.Email,
			strconv.Itoa(row.DaysPresent),
			strconv.Itoa(row.DaysRemote),
			strconv.Itoa(row.EventsJoined),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteRoomUsageCSV(w io.Writer, rows []RoomUsageRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"roomId", "name", "location", "bookings", "minutesBooked"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.RoomID,
			row.Name,
			row.Location,
			strconv.Itoa(row.Bookings),
			strconv.Itoa(row.MinutesBooked),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteAttendancePDF(w io.Writer, period Period, rows []AttendanceRow) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Attendance Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", period.From.Format("2006-01-02"), period.To.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 7, "Employee", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 7, "Email", "1", 0, "", false, 0, "")
	pdf.CellFormat(20, 7, "Present", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Remote", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Events", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(60, 7, row.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 7, row.Email, "1", 0, "", false, 0, "")
		pdf.CellFormat(20, 7, strconv.Itoa(row.DaysPresent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, strconv.Itoa(row.DaysRemote), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, strconv.Itoa(row.EventsJoined), "1", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}

func WriteRoomUsagePDF(w io.Writer, period Period, rows []RoomUsageRow) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Room Utilisation Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", period.From.Format("2006-01-02"), period.To.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 7, "Room", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 7, "Location", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 7, "Bookings", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Minutes", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(60, 7, row.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 7, row.Location, "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 7, strconv.Itoa(row.Bookings), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, strconv.Itoa(row.MinutesBooked), "1", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}
