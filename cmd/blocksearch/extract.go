package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/blocksearch"
	"github.com/fwojciec/blocksearch/bloom"
	"github.com/fwojciec/blocksearch/mapstructure"
	"github.com/fwojciec/blocksearch/scan"
)

// Deduplication filter sizing for --unique.
const (
	uniqueExpectedRecords = 10000
	uniqueFalsePositive   = 0.001
)

// record is the JSON line printed for each extracted record.
type record struct {
	Source   string         `json:"source"`
	Template string         `json:"template"`
	Position int            `json:"position"`
	Fields   map[string]any `json:"fields"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	templates, err := loadTemplates(c.TemplatesFile, c.Templates)
	if err != nil {
		return err
	}

	results, err := deps.Scanner.Scan(deps.Ctx, c.Sources, templates)
	if err != nil {
		return err
	}

	var seen *bloom.Deduper
	if c.Unique {
		seen = bloom.NewDeduper(max(uint(len(results)), uniqueExpectedRecords), uniqueFalsePositive)
	}

	enc := json.NewEncoder(deps.Stdout)
	var printed, skipped int
	for _, r := range results {
		fields, err := mapstructure.Values(r.Match)
		if err != nil {
			return fmt.Errorf("%s %s[%d]: %w", r.Source, r.Template, r.Position, err)
		}

		encoded, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		hash := scan.ComputeHash(string(encoded))
		if seen != nil && seen.Seen(hash) {
			skipped++
			continue
		}

		if c.Save {
			if err := deps.Records.CreateRecord(deps.Ctx, &blocksearch.Record{
				Source:      r.Source,
				Template:    r.Template,
				Position:    r.Position,
				Fields:      fields,
				ContentHash: hash,
			}); err != nil {
				return err
			}
		}

		if err := enc.Encode(record{
			Source:   r.Source,
			Template: r.Template,
			Position: r.Position,
			Fields:   fields,
		}); err != nil {
			return err
		}
		printed++
	}

	switch {
	case c.Save:
		fmt.Fprintf(deps.Stderr, "Saved %d records", printed)
	default:
		fmt.Fprintf(deps.Stderr, "Extracted %d records", printed)
	}
	if skipped > 0 {
		fmt.Fprintf(deps.Stderr, " (%d duplicates skipped)", skipped)
	}
	fmt.Fprintln(deps.Stderr)
	if seen != nil && deps.Logger != nil {
		deps.Logger.Debug("dedupe", "distinct", seen.EstimatedCount(), "skipped", skipped)
	}
	return nil
}
