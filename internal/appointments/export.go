package appointments

import (
	"encoding/csv"
	"fmt"
	"io"
)

// exportHeader is the fixed 9-column projection served to administrators.
var exportHeader = []string{
	"Name",
	"Service",
	"Date",
	"Time",
	"Phone",
	"Email",
	"Status",
	"Admin Notes",
	"Created",
}

// createdAtLayout matches the timestamp format shown in the admin UI.
const createdAtLayout = "2006-01-02 15:04:05"

// WriteCSV writes the header row followed by one row per appointment, in the
// order given. No sort is imposed here; rows come out in the store's natural
// retrieval order.
func WriteCSV(w io.Writer, appts []*Appointment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("appointments: write csv header: %w", err)
	}
	for _, a := range appts {
		row := []string{
			a.Name,
			a.Service,
			a.Date,
			a.Time,
			a.Phone,
			a.Email,
			string(a.Status),
			a.AdminNotes,
			a.CreatedAt.Format(createdAtLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("appointments: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
