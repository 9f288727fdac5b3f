package geom

import (
	"encoding/csv"
	"io"
	"strconv"
)

// EncodeCSV writes records with a state,lon,lat header. The output loads
// back through LoadReader unchanged.
func EncodeCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"state", "lon", "lat"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.State,
			strconv.FormatFloat(r.Lon, 'f', -1, 64),
			strconv.FormatFloat(r.Lat, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
