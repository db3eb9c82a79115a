package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
)

var header = []string{"From", "To", "Distance", "TransportMode"}

// WriteRoute writes a route as a tab separated table: a header, one row per link and a total row.
// from and to name the requested origin and destination.
func WriteRoute(w io.Writer, from, to da.City, links []da.Link) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	if err := tw.Write(header); err != nil {
		return err
	}
	for _, l := range links {
		row := []string{
			l.GetFrom().GetName(),
			l.GetTo().GetName(),
			formatKm(l.GetDistance()),
			l.GetTransportMode().String(),
		}
		if err := tw.Write(row); err != nil {
			return err
		}
	}
	total := []string{from.GetName(), to.GetName(), formatKm(da.TotalDistance(links)), "Total"}
	if err := tw.Write(total); err != nil {
		return err
	}

	tw.Flush()
	return tw.Error()
}

func WriteRouteFile(filename string, from, to da.City, links []da.Link) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("export route to %s: %w", filename, err)
	}
	defer f.Close()

	if err := WriteRoute(f, from, to, links); err != nil {
		return fmt.Errorf("export route to %s: %w", filename, err)
	}
	return f.Close()
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', 2, 64)
}
