package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mr-beerpong/internal/room"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Report the surfaces of the room description",
	Long: `Print every surface of the room loaded from --room (or the embedded
sample room) with its label, extent and position. Playable tables and
desks are marked.

Examples:
  beerpong rooms
  beerpong rooms --room ./living-room.yaml`,
	Args: cobra.NoArgs,
	RunE: runRooms,
}

func runRooms(_ *cobra.Command, _ []string) error {
	r, err := room.Load(flagRoom)
	if err != nil {
		return err
	}
	return room.WriteReport(os.Stdout, r)
}
