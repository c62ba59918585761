package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csstokens.yaml config file",
	Long:  `Create a .csstokens.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# csstokens configuration
# Every key can also be set as CSSTOKENS_<KEY> (dots become underscores),
# e.g. CSSTOKENS_EXTRACT_FORMAT=json. Flags override both.

# Shared settings
source: .
verbose: false
log:
  format: text             # text | json

# Extraction settings
extract:
  include:
    - "**/*.{css,scss,sass}"
  exclude:
    - "**/node_modules/**"
    - "**/vendor/**"
    - "**/*.min.css"
  gitignore: true
  concurrency: 0           # 0 = GOMAXPROCS
  cache: 256               # per-file cache entries, 0 disables
  format: text             # text | json | markdown | css
  output: ""               # empty writes to stdout
  progress: false
  strict: false            # exit 1 when a stylesheet cannot be read

# Watch settings
watch:
  debounce: 200            # milliseconds
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
