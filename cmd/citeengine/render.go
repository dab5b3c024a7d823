// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/reviewdesk/citeengine/internal/citation"
)

type renderOutput struct {
	Blocks  []citation.AnnotatedBlock `yaml:"blocks"`
	Skipped []string                  `yaml:"skipped,omitempty"`
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var citationsPath, activeID string
	cmd := &cobra.Command{
		Use:   "render BODY_FILE",
		Short: "Render an article body with citation highlights as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}

			var cites []citation.Citation
			if citationsPath != "" {
				data, err := os.ReadFile(citationsPath)
				if err != nil {
					return fmt.Errorf("read citations: %w", err)
				}
				if err := yaml.Unmarshal(data, &cites); err != nil {
					return fmt.Errorf("failed to unmarshal citations: %w", err)
				}
				if err := citation.ValidateBatch(cites); err != nil {
					return err
				}
			}

			r := citation.Highlight(citation.Project(string(body)), cites, activeID)
			for _, id := range r.Skipped {
				logger.Warn("citation text not found", "citation_id", id)
			}
			out, err := yaml.Marshal(renderOutput{Blocks: r.Blocks, Skipped: r.Skipped})
			if err != nil {
				return fmt.Errorf("marshal rendering: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&citationsPath, "citations", "", "YAML file with a list of citations")
	cmd.Flags().StringVar(&activeID, "active", "", "id of the citation to emphasize")
	return cmd
}
