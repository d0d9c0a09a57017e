// samrops loads a hierarchy layout from YAML, fills the declared fields,
// and reports the standard reductions over them.  It drives the dataops
// stack single-process; the reduction transport is the identity group.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jamestiotio/SAMRAI/dataops"
	"github.com/jamestiotio/SAMRAI/hier"
	"github.com/jamestiotio/SAMRAI/pdat"
	"github.com/jamestiotio/SAMRAI/reduce"
)

var (
	verbose bool
	workers int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "samrops",
	Short: "Reductions over adaptive mesh hierarchy data",
	Long: `samrops builds a patch hierarchy from a YAML layout, allocates the
declared directional fields, and evaluates norms, dot products, and
integrals over them with control-volume masking of refined regions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <layout.yaml>",
	Short: "Evaluate the standard reductions for every field in the layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := LoadLayout(args[0])
		if err != nil {
			return err
		}
		h, ids, cvolID, err := layout.Build()
		if err != nil {
			return err
		}
		ops := dataops.NewHierarchyOps[float64](h, reduce.SingleProcess{})
		ops.Workers = workers
		logger.Debug("hierarchy built",
			zap.Int("dim", h.Dim()),
			zap.Int("levels", h.NumLevels()),
			zap.Int("fields", len(ids)))
		for ln := 0; ln < h.NumLevels(); ln++ {
			logger.Debug("level",
				zap.Int("index", ln),
				zap.Int("patches", len(h.Level(ln).Patches)),
				zap.String("footprint", h.Level(ln).Footprint().String()))
		}
		for i, id := range ids {
			name := layout.Fields[i].Name
			fmt.Printf("field %s\n", name)
			fmt.Printf("  entries              %d\n", ops.NumberOfEntries(id, nil))
			fmt.Printf("  l1 norm              %.10g\n", ops.L1Norm(id, cvolID, nil))
			fmt.Printf("  l2 norm              %.10g\n", ops.L2Norm(id, cvolID, nil))
			fmt.Printf("  rms norm             %.10g\n", ops.RMSNorm(id, cvolID, nil))
			fmt.Printf("  max norm             %.10g\n", ops.MaxNorm(id, cvolID, nil))
			fmt.Printf("  integral             %.10g\n", ops.Integral(id, cvolID, nil))
		}
		if len(ids) >= 2 {
			fmt.Printf("dot(%s,%s)             %.10g\n",
				layout.Fields[0].Name, layout.Fields[1].Name,
				ops.Dot(ids[0], ids[1], cvolID, nil))
		}
		fmt.Printf("control volume total   %.10g\n", ops.SumControlVolumes(ids[0], cvolID, nil))
		return nil
	},
}

var printCmd = &cobra.Command{
	Use:   "print <layout.yaml> <field>",
	Short: "Dump every entry of one field in index order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := LoadLayout(args[0])
		if err != nil {
			return err
		}
		h, ids, _, err := layout.Build()
		if err != nil {
			return err
		}
		ops := dataops.NewHierarchyOps[float64](h, reduce.SingleProcess{})
		for i, f := range layout.Fields {
			if f.Name == args[1] {
				ops.Print(os.Stdout, ids[i], nil)
				return nil
			}
		}
		return fmt.Errorf("layout declares no field %q", args[1])
	},
}

var entriesCmd = &cobra.Command{
	Use:   "entries <layout.yaml>",
	Short: "Count the logical degrees of freedom of each field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := LoadLayout(args[0])
		if err != nil {
			return err
		}
		h, ids, _, err := layout.Build()
		if err != nil {
			return err
		}
		ops := dataops.NewHierarchyOps[float64](h, reduce.SingleProcess{})
		for i, id := range ids {
			fmt.Printf("%s\t%d\n", layout.Fields[i].Name, ops.NumberOfEntries(id, nil))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 1, "max concurrent patches per sweep")
	rootCmd.AddCommand(reportCmd, printCmd, entriesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildControlVolume fills the masked cvol field for one level: a uniform
// cell volume everywhere, zeroed where the next finer level covers.
func buildControlVolume(h *hier.PatchHierarchy, ln int, cvolID int, cellVol float64) {
	level := h.Level(ln)
	for _, p := range level.OwnedPatches() {
		cv, _ := p.PatchData(cvolID).(*pdat.Data[float64])
		cv.Fill(cellVol)
		if ln+1 >= h.NumLevels() {
			continue
		}
		finer := h.Level(ln + 1)
		rel := make(hier.IntVector, h.Dim())
		for i := range rel {
			rel[i] = finer.Ratio[i] / level.Ratio[i]
		}
		for _, fb := range finer.Boxes() {
			cb := fb.Coarsen(rel)
			cv.FillOnBox(0, cb.Intersect(p.Box))
		}
	}
}
