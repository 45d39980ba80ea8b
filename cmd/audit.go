package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bkrawczyk/cv-coach/pkg/engine"
	"github.com/bkrawczyk/cv-coach/pkg/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var auditCmd = &cobra.Command{
	Use:   "audit <file>",
	Short: "List the roles found in an experience section and their fact gaps",
	Long: `Audit an experience section offline: segment it into roles and report
what concrete facts each role is missing. No API calls are made.

Example:
  cv-coach audit cv.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) (err error) {
	logger.Setup(getVerbose())

	var data []byte
	data, err = os.ReadFile(args[0])
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", args[0])
		return err
	}

	eng := engine.New(nil, slog.Default())
	resp := eng.Audit(string(data))
	fmt.Println(resp.Text)

	return err
}
