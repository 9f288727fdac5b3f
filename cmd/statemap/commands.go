package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"statemap/internal/geom"
	"statemap/internal/render"
	"statemap/internal/server"
	"statemap/internal/tui"
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// statesCmd lists every state in the table
func (a *app) statesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List state names with point counts and bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			t := newTable("state", "points", "min lon", "min lat", "max lon", "max lat")
			for _, s := range store.Summaries() {
				t.Row(s.State, strconv.Itoa(s.Points),
					formatFloat(s.BBox.MinX), formatFloat(s.BBox.MinY),
					formatFloat(s.BBox.MaxX), formatFloat(s.BBox.MaxY))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

// getCmd prints one state's rows
func (a *app) getCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "get [state]",
		Short: "Print the boundary rows of a state, in file order",
		Long: `Prints every row whose state equals the argument exactly.
An unknown state prints no rows and is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			recs := store.State(args[0])
			if len(recs) == 0 {
				a.logger.Info("No rows for state", zap.String("state", args[0]))
			}
			out := cmd.OutOrStdout()
			switch format {
			case "csv":
				return geom.EncodeCSV(out, recs)
			case "table":
				t := newTable("#", "lon", "lat")
				for i, r := range recs {
					t.Row(strconv.Itoa(i+1), formatFloat(r.Lon), formatFloat(r.Lat))
				}
				fmt.Fprintln(out, t.Render())
				return nil
			}
			return fmt.Errorf("unknown format %q (want table or csv)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, csv")
	return cmd
}

// plotCmd draws a state's boundary in the terminal
func (a *app) plotCmd() *cobra.Command {
	var (
		width, height int
		closeRing     bool
	)
	cmd := &cobra.Command{
		Use:   "plot [state]",
		Short: "Draw a state's boundary as a braille plot",
		Long: `Draws the state's (lon, lat) pairs in file order as a polyline on an
equal-aspect canvas. An unknown state draws an empty canvas.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			opts := render.Options{Width: a.cfg.Plot.Width, Height: a.cfg.Plot.Height, Close: a.cfg.Plot.Close}
			if cmd.Flags().Changed("width") {
				opts.Width = width
			}
			if cmd.Flags().Changed("height") {
				opts.Height = height
			}
			if cmd.Flags().Changed("close") {
				opts.Close = closeRing
			}
			recs := store.State(args[0])
			if len(recs) == 0 {
				a.logger.Info("No rows for state", zap.String("state", args[0]))
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Plot(recs, opts))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Canvas width in cells (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "Canvas height in cells (default from config)")
	cmd.Flags().BoolVar(&closeRing, "close", false, "Join the last point back to the first")
	return cmd
}

// exportCmd writes states in a geospatial format
func (a *app) exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export [state...]",
		Short: "Export states as GeoJSON, WKT, KML or CSV",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			for _, name := range args {
				if !store.Has(name) {
					a.logger.Warn("Skipping state with no rows", zap.String("state", name))
				}
			}
			if output == "" {
				err = writeExport(cmd.OutOrStdout(), store, format, args)
			} else {
				err = writeExportFile(output, store, format, args)
			}
			if err != nil {
				return err
			}
			a.logger.Debug("Exported states", zap.Strings("states", args), zap.String("format", format))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "geojson", "Output format: geojson, wkt, kml, csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

// writeExportFile writes the export to path. A failed close is reported,
// since buffered data may not have reached the disk.
func writeExportFile(path string, store *geom.Store, format string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := writeExport(f, store, format, names); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeExport(w io.Writer, store *geom.Store, format string, names []string) error {
	switch format {
	case "geojson":
		return geom.EncodeGeoJSON(w, store, names...)
	case "kml":
		return geom.EncodeKML(w, store, names...)
	case "wkt":
		for _, name := range names {
			if s := geom.EncodeWKT(store.State(name)); s != "" {
				if _, err := fmt.Fprintln(w, s); err != nil {
					return err
				}
			}
		}
		return nil
	case "csv":
		var all []geom.Record
		for _, name := range names {
			all = append(all, store.State(name)...)
		}
		return geom.EncodeCSV(w, all)
	}
	return fmt.Errorf("unknown format %q (want geojson, wkt, kml or csv)", format)
}

// viewCmd launches the interactive viewer
func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [state]",
		Short: "Browse and plot states interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			opts := tui.Options{Close: a.cfg.Plot.Close}
			if len(args) == 1 {
				opts.State = args[0]
			}
			p := tea.NewProgram(tui.New(store, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
			_, err = p.Run()
			return err
		},
	}
}

// serveCmd runs the read-only HTTP API
func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve state lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			opts := render.Options{Width: a.cfg.Plot.Width, Height: a.cfg.Plot.Height, Close: a.cfg.Plot.Close}
			return server.New(store, opts, a.logger).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config or STATEMAP_ADDR)")
	return cmd
}
