package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmrzaf/earthgen/internal/config"
	"github.com/mmrzaf/earthgen/internal/domain"
	"github.com/mmrzaf/earthgen/internal/generators"
	"github.com/mmrzaf/earthgen/internal/logging"
	"github.com/mmrzaf/earthgen/internal/orchestrator"
	"github.com/mmrzaf/earthgen/internal/preview"
	"github.com/mmrzaf/earthgen/internal/runs"
	"github.com/mmrzaf/earthgen/internal/storage"
)

var (
	storeKind string
	storeDSN  string
	schema    string
	logLevel  string
	logFormat string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "earthgen",
		Short: "Correlated synthetic dataset generator",
	}

	rootCmd.PersistentFlags().StringVar(&storeKind, "store-kind", cfg.StoreKind, "Store kind (sqlite|postgres)")
	rootCmd.PersistentFlags().StringVar(&storeDSN, "dsn", cfg.StoreDSN, "Store DSN")
	rootCmd.PersistentFlags().StringVar(&schema, "schema", cfg.Schema, "Raw namespace for generated tables")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (console|json)")

	rootCmd.AddCommand(runCmd(cfg))
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(entitiesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openLoader() (*storage.Loader, error) {
	logger := logging.New(logLevel, logFormat)
	return storage.Open(storage.Config{
		Kind:   storage.Kind(storeKind),
		DSN:    storeDSN,
		Schema: schema,
	}, logger)
}

func runCmd(cfg *config.Config) *cobra.Command {
	var (
		specPath    string
		entityFlags []string
		seed        int64
		batchSize   int
		writeMode   string
		maxParallel int
		format      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a dataset into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := buildSpec(specPath, entityFlags, seed, batchSize, writeMode)
			if err != nil {
				return err
			}

			logger := logging.New(logLevel, logFormat)
			loader, err := openLoader()
			if err != nil {
				return err
			}
			defer loader.Close()

			orch := orchestrator.New(
				generators.Default(),
				loader,
				runs.NewRecorder(loader),
				logger,
				orchestrator.Options{
					MaxParallel: maxParallel,
					MaxRecords:  cfg.MaxRecords,
				},
			)

			summary, err := orch.Execute(context.Background(), spec)
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(summary, "", "  ")
				fmt.Println(string(data))
			} else {
				printSummary(summary)
			}

			if !summary.Completed() {
				return fmt.Errorf("run finished with failures")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "Dataset spec yaml file")
	cmd.Flags().StringArrayVar(&entityFlags, "entity", nil, "Entity count, e.g. person=100 (repeatable)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed")
	cmd.Flags().IntVar(&batchSize, "batch-size", cfg.BatchSize, "Records per storage batch")
	cmd.Flags().StringVar(&writeMode, "write-mode", cfg.WriteMode, "Write mode (append|truncate)")
	cmd.Flags().IntVar(&maxParallel, "max-parallel", cfg.MaxParallel, "Max concurrent entity workflows")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")
	return cmd
}

// buildSpec assembles the dataset spec from a yaml file, flags, or both;
// flags win.
func buildSpec(specPath string, entityFlags []string, seed int64, batchSize int, writeMode string) (*domain.DatasetSpec, error) {
	spec := &domain.DatasetSpec{
		Entities:  make(map[string]int64),
		Seed:      seed,
		BatchSize: batchSize,
	}

	if specPath != "" {
		data, err := os.ReadFile(specPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, spec); err != nil {
			return nil, fmt.Errorf("parse spec file: %w", err)
		}
		if spec.Seed == 0 {
			spec.Seed = seed
		}
		if spec.BatchSize == 0 {
			spec.BatchSize = batchSize
		}
	}

	for _, flag := range entityFlags {
		parts := strings.SplitN(flag, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid entity format %q, expected type=count", flag)
		}
		count, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid count in %q: %w", flag, err)
		}
		spec.Entities[parts[0]] = count
	}

	if spec.WriteMode == "" {
		mode, err := domain.ParseWriteMode(writeMode)
		if err != nil {
			return nil, err
		}
		spec.WriteMode = mode
	}
	return spec, nil
}

func printSummary(summary *domain.ExecutionSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tRECORDS\tDURATION\tSTATUS\tERROR")
	for _, res := range summary.Results {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			res.EntityType, res.RecordsGenerated, res.Duration.Round(time.Millisecond), res.Status, res.Error)
	}
	w.Flush()

	fmt.Printf("\nspec hash:           %s\n", summary.SpecHash)
	fmt.Printf("seed:                %d\n", summary.Seed)
	fmt.Printf("total records:       %d\n", summary.TotalRecords)
	fmt.Printf("wall clock:          %s\n", summary.WallClock.Round(time.Millisecond))
	fmt.Printf("parallel efficiency: %.2f\n", summary.ParallelEfficiency)
	fmt.Printf("records/sec:         %.0f\n", summary.RecordsPerSecond)
}

func previewCmd() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview <entity-type>",
		Short: "Print sample records without touching the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := preview.Records(args[0], rows)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, strings.ToUpper(strings.Join(records[0].Fields, "\t")))
			for _, rec := range records {
				cells := make([]string, len(rec.Values))
				for i, v := range rec.Values {
					cells[i] = fmt.Sprintf("%v", v)
				}
				fmt.Fprintln(w, strings.Join(cells, "\t"))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 5, "Number of sample rows")
	return cmd
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect run history",
	}

	var (
		limit  int
		format string
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := openLoader()
			if err != nil {
				return err
			}
			defer loader.Close()

			history, err := runs.NewRecorder(loader).List(context.Background(), limit)
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(history, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tSTATUS\tRECORDS\tSEED\tEFFICIENCY\tSTARTED")
			for _, run := range history {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%s\n",
					run.ID, run.Status, run.TotalRecords, run.Seed,
					run.ParallelEfficiency, run.StartedAt.Format(time.RFC3339))
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Max runs to list")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	cmd.AddCommand(listCmd)
	return cmd
}

func entitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List registered entity types",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := generators.Default()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ENTITY\tTABLE\tDEPENDS ON")
			for _, entityType := range reg.Types() {
				gen, err := reg.Resolve(entityType, generators.Config{})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					entityType, gen.Table(), strings.Join(gen.DependsOn(), ", "))
			}
			w.Flush()
			return nil
		},
	}
}
