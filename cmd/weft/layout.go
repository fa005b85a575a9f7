package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grindlemire/weft"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newLayoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <scene>",
		Short: "print the boxes of a scene",
		Long: `
Build, style and lay out a scene, then print the border box of every node.
Nodes that are not displayed are left out.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScene(args[0])
			if err != nil {
				return err
			}
			f, err := sc.frame()
			if err != nil {
				return err
			}
			printBoxes(cmd.OutOrStdout(), sc, f)
			return nil
		},
	}
}

// frame builds a session for the scene and returns its first frame.
func (sc *scene) frame() (*weft.Frame, error) {
	s, err := weft.NewSession(sc.view(nil), sc.options()...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Frame()
}

func printBoxes(w io.Writer, sc *scene, f *weft.Frame) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Node", "Kind", "X", "Y", "Width", "Height", "Overflow"})
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	sc.walk(func(n *sceneNode, id weft.NodeID, depth int) {
		b, ok := f.Box(id)
		if !ok {
			return
		}
		overflow := ""
		if b.Overflow {
			overflow = "yes"
		}
		tbl.Append([]string{
			strings.Repeat("  ", depth-1) + n.Key,
			b.Kind,
			num(b.Rect.X),
			num(b.Rect.Y),
			num(b.Rect.Width),
			num(b.Rect.Height),
			overflow,
		})
	})
	tbl.Render()
	fmt.Fprintf(w, "frame %d: %d node(s) laid out, %d overflow(s)\n", f.Number, f.Stats.LaidOut, f.Stats.Overflows)
}
