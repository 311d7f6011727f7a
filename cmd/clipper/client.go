package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/relentiousdragon/Mac-Clipper/internal/history"
	"github.com/relentiousdragon/Mac-Clipper/internal/ipc"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the clipboard history (pinned entries first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			resp, err := ipc.Call(&ipc.Request{Op: ipc.OpList, Filter: filter})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tKIND\tTIME\tPIN\tPREVIEW")
			for _, e := range resp.Entries {
				pin := ""
				if e.Pinned {
					pin = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortKey(e.Key), e.Kind, e.Stamp, pin, e.Preview)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("filter", "", "only show text entries containing this substring")
	return cmd
}

// shortKey renders enough of an entry key for unique-prefix addressing.
func shortKey(key string) string {
	if len(key) > 18 {
		return key[:18]
	}
	return key
}

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy stdin into the clipboard history (like pbcopy)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			if len(data) == 0 {
				return nil
			}

			kind := history.KindText
			if img, _ := cmd.Flags().GetBool("image"); img {
				kind = history.KindImage
			}
			_, err = ipc.Call(&ipc.Request{Op: ipc.OpCopy, Kind: kind, Data: data})
			return err
		},
	}
	cmd.Flags().Bool("image", false, "treat stdin as an encoded PNG")
	return cmd
}

func newPasteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paste [key]",
		Short: "Paste an entry into the previously focused application",
		Long: `Asks the daemon to write the entry to the system clipboard, refocus the
application that was frontmost when the popup was shown, and press the paste
shortcut. With no key the newest entry is pasted. Keys may be abbreviated to
any unique prefix (see "clipper list").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			}
			_, err := ipc.Call(&ipc.Request{Op: ipc.OpPaste, Key: key})
			return err
		},
	}
}

func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <key>",
		Short: "Toggle the pin on an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := ipc.Call(&ipc.Request{Op: ipc.OpPin, Key: args[0]})
			return err
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete an entry from the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := ipc.Call(&ipc.Request{Op: ipc.OpDelete, Key: args[0]})
			return err
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !ipc.IsRunning() {
				return fmt.Errorf("no clipper daemon at %s", ipc.SocketPath())
			}
			resp, err := ipc.Call(&ipc.Request{Op: ipc.OpStatus})
			if err != nil {
				return err
			}
			st := resp.Status

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "entries\t%d (%d pinned, cap %d)\n", st.Entries, st.Pinned, st.MaxItems)
			fmt.Fprintf(w, "hotkey\t%s (%s)\n", st.Hotkey, st.HotkeyState)
			fmt.Fprintf(w, "backend\t%s\n", st.Backend)
			fmt.Fprintf(w, "popup\tvisible=%t\n", st.Visible)
			return w.Flush()
		},
	}
}
