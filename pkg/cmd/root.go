package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/import-order/pkg/errors"
	"github.com/siyuan-infoblox/import-order/pkg/logging"
	"github.com/siyuan-infoblox/import-order/pkg/pattern"
	"github.com/siyuan-infoblox/import-order/pkg/sorter"
	"github.com/siyuan-infoblox/import-order/pkg/utils"
	"github.com/siyuan-infoblox/import-order/pkg/version"
)

const (
	UseDescription   = "iog [flags] [FILE]"
	ShortDescription = "Import order grouper - sorts import directives by a declarative ordering specification"
	LongDescription  = `iog sorts dotted import directives by a declarative ordering specification.

The specification is a ;-separated list of pattern groups, each either a
dotted namespace path or a wildcard:

  System;System.Collections;Microsoft.Win32;**

Directives are classified by longest matching pattern prefix. A single *
keeps each unmatched directive in its own group; ** merges all unmatched
directives into one trailing group, and is appended automatically when no
wildcard is declared. Within each group, directives are ordered by a
locale-aware comparison that ranks well-known roots (System, Microsoft,
Windows, Xamarin) first.

FILE contains one directive path per line; with no FILE, paths are read
from standard input.`
)

var (
	orderSpec   string
	checkOnly   bool
	verbosity   int
	showVersion bool
	versionStr  string
)

var rootCmd = &cobra.Command{
	Use:          UseDescription,
	Short:        ShortDescription,
	Long:         LongDescription,
	Args:         validateArgs,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&orderSpec, "order-spec", pattern.Grouped, "Ordering specification (e.g. \"System;Microsoft.Win32;**\")")
	rootCmd.PersistentFlags().BoolVar(&checkOnly, "check-only", false, "Validate the ordering specification and exit")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "V", "Increase logging verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
}

func validateArgs(cmd *cobra.Command, args []string) error {
	// Version and check-only runs take no file arguments
	if showVersion || checkOnly {
		return nil
	}
	return cobra.MaximumNArgs(1)(cmd, args)
}

func run(cmd *cobra.Command, args []string) error {
	// Handle version flag
	if showVersion {
		if versionStr == "" || versionStr == "(devel)" {
			fmt.Println(version.Get().String())
		} else {
			fmt.Printf("Import Order Grouper (iog) version %s\n", versionStr)
		}
		return nil
	}

	logging.Setup(verbosity)

	table, err := pattern.CachedTable(orderSpec)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgInvalidOrderSpec, err)
	}

	if checkOnly {
		fmt.Printf(errors.InfoMsgSpecValid+"\n", len(table.Patterns()))
		return nil
	}

	var directives []string
	if len(args) == 1 {
		directives, err = utils.ReadDirectiveFile(args[0])
	} else {
		directives, err = utils.ReadDirectives(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadInput, err)
	}

	groups := sorter.New(table).Sort(directives)

	var out []string
	for _, group := range groups {
		out = append(out, strings.Join(group.Directives, "\n"))
	}
	if len(out) > 0 {
		fmt.Println(strings.Join(out, "\n\n"))
	}
	return nil
}

func Execute(version string) error {
	versionStr = version
	return rootCmd.Execute()
}
