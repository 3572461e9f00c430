package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/blocksearch"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	filter := blocksearch.RecordFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}
	if c.Template != "" {
		filter.Template = &c.Template
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'blocksearch extract --save' to store some.")
		return nil
	}

	for _, r := range records {
		fields, err := json.Marshal(r.Fields)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s[%d]  %s\n", r.ID, r.Source, r.Template, r.Position, fields)
	}
	return nil
}
