package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/agentic-research/cherry/internal/keyrange"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newTranslateCmd(v *viper.Viper) *cobra.Command {
	var selector string

	translateCmd := &cobra.Command{
		Use:   "translate [file|-]",
		Short: "Convert proto3 SrvKeyspace JSON into the legacy string keyed form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), v.GetString("log-level"))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			var data []byte
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			doc, err := oj.Parse(data)
			if err != nil {
				return fmt.Errorf("failed to parse input: %w", err)
			}

			if err := keyrange.TranslateAll(doc, selector); err != nil {
				return err
			}
			logger.Debug("translated srv keyspace", zap.String("select", selector))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(doc, &oj.Options{Indent: 2, Sort: true}))
			return err
		},
	}

	translateCmd.Flags().StringVar(&selector, "select", "$", "JSONPath selecting the SrvKeyspace objects to translate")

	return translateCmd
}
