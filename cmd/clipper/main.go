// clipper: clipboard history with pinning and hotkey paste-back.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipper",
		Short: "Clipboard history with pinning and hotkey paste-back",
		Long: `clipper watches the system clipboard and keeps a bounded history of
recent text and image clips. Pinned clips survive restarts and are never
evicted. A global hotkey (default command+option+V) toggles the history
popup, and selecting a clip pastes it back into the previously focused
application.

Run "clipper run" to start the daemon. The other sub-commands talk to the
running daemon over a local socket.

Preferences live in a JSON file (see "clipper run --help" for the path);
the daemon re-applies them whenever the file is saved.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newListCmd(),
		newCopyCmd(),
		newPasteCmd(),
		newPinCmd(),
		newDeleteCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipper %s\n", Version)
		},
	}
}
