package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cnet-api/core/config"
	"cnet-api/core/logger"
	"cnet-api/core/procedure"
	"cnet-api/feature/department"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var departmentNested bool

// departmentCmd runs the child department lookup from the command line.
var departmentCmd = &cobra.Command{
	Use:   "department [code]",
	Short: "List the child departments of a department",
	Long:  `Calls the child department lookup against the configured database. Defaults to D000001.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		code := department.DefaultCode
		if len(args) == 1 {
			code = args[0]
		}
		runDepartmentLookup(cmd.Context(), code)
	},
}

func init() {
	departmentCmd.Flags().BoolVar(&departmentNested, "nested", false, "print the result as a tree")
	RootCmd.AddCommand(departmentCmd)
}

func runDepartmentLookup(ctx context.Context, code string) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	registry := procedures()
	db := connectDatabase(ctx, cfg, registry, logg)
	if db == nil {
		logg.Fatal("A database connection is required for department lookups")
	}

	exec := procedure.NewExecutor(db, registry, procedure.Config{
		Timeout: cfg.Database.QueryTimeout(),
		Logger:  logg,
	})
	svc := department.NewService(exec, logg)

	logg.Info("Searching child departments...", zap.String("code", code))
	depts, err := svc.SearchChildren(ctx, code)
	if err != nil {
		logg.Fatal("Department lookup failed", zap.Error(err))
	}

	fmt.Printf("\n--- Children of %s (%d) ---\n", code, len(depts))
	if departmentNested {
		for _, root := range department.Nest(depts) {
			printTree(root, 0)
		}
		return
	}
	for _, d := range depts {
		printDepartment(d, 0)
	}
}

func printTree(d *department.Department, depth int) {
	printDepartment(*d, depth)
	for _, child := range d.Children {
		printTree(child, depth+1)
	}
}

func printDepartment(d department.Department, depth int) {
	status := "enabled"
	if !d.IsEnabled {
		status = "disabled"
	}
	fmt.Printf("%s%-10s %-30s level=%d parent=%s %s\n",
		strings.Repeat("  ", depth), d.DeptCode, d.DeptName, d.DeptLevel, d.ParentCode, status)
}
