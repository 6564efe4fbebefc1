package room

import (
	"fmt"
	"io"
)

// WriteReport prints a human-readable inventory of the room: every surface
// with its label, extent and position, with playable tables called out.
func WriteReport(w io.Writer, r *Room) error {
	if r == nil {
		_, err := fmt.Fprintln(w, "No room loaded.")
		return err
	}

	surfaces := r.Surfaces()
	if len(surfaces) == 0 {
		_, err := fmt.Fprintf(w, "Room %q has no surfaces. Re-run the space setup.\n", r.Name)
		return err
	}

	if _, err := fmt.Fprintf(w, "Room: %s (%d surfaces)\n\n", r.Name, len(surfaces)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %-16s  %-8s  %-11s  %-22s  %s\n", "ID", "Label", "Extent", "Position", "Collider"); err != nil {
		return err
	}

	tables := 0
	for _, s := range surfaces {
		ext := "-"
		collider := "no"
		if s.HasExtent() {
			ext = fmt.Sprintf("%.2fx%.2f", s.Extent.W, s.Extent.D)
			collider = "yes"
		}
		p := s.Pose.Position
		marker := ""
		if s.Label.Playable() {
			tables++
			marker = "  <- playable"
		}
		if _, err := fmt.Fprintf(w, "  %-16s  %-8s  %-11s  (%6.2f,%6.2f,%6.2f)  %s%s\n",
			s.ID, s.Label, ext, p.X, p.Y, p.Z, collider, marker); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%d playable surface(s).\n", tables)
	return err
}
