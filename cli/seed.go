package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cppla/dailychallenge/services"
)

// SeedFile is the YAML catalogue accepted by the seed command.
type SeedFile struct {
	Challenges []SeedChallenge `yaml:"challenges"`
}

// SeedChallenge is one entry of a SeedFile. Dates are assigned on import.
type SeedChallenge struct {
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	Category       string `yaml:"category"`
	Difficulty     string `yaml:"difficulty"`
	ExpectedOutput string `yaml:"expected_output,omitempty"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Schedule a catalogue of challenges on consecutive free dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := LoadSeedFile(args[0])
			if err != nil {
				return err
			}
			svc, err := bootstrap()
			if err != nil {
				return err
			}

			from := services.Today(svc.Clock)
			if start != "" {
				if from, err = time.Parse("2006-01-02", start); err != nil {
					return fmt.Errorf("invalid --start %q: %w", start, err)
				}
			}

			created, err := svc.Challenges.Seed(commandContext(cmd), items, from)
			for _, ch := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-6s %s\n", ch.Day().Format("2006-01-02"), ch.Difficulty, ch.Title)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first date to fill, YYYY-MM-DD (default today, UTC)")
	return cmd
}

// LoadSeedFile reads and validates a YAML challenge catalogue.
func LoadSeedFile(path string) ([]services.NewChallenge, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Challenges) == 0 {
		return nil, fmt.Errorf("%s: no challenges", path)
	}

	out := make([]services.NewChallenge, 0, len(f.Challenges))
	for i, c := range f.Challenges {
		if c.Title == "" || c.Description == "" {
			return nil, fmt.Errorf("%s: challenge %d needs a title and a description", path, i+1)
		}
		out = append(out, services.NewChallenge{
			Title:          c.Title,
			Description:    c.Description,
			Category:       c.Category,
			Difficulty:     c.Difficulty,
			ExpectedOutput: c.ExpectedOutput,
		})
	}
	return out, nil
}
