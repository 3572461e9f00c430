package main

import (
	"fmt"

	"github.com/fwojciec/blocksearch"
)

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	n, err := deps.Records.DeleteRecordsBySource(deps.Ctx, c.Source)
	if err != nil {
		return err
	}
	if n == 0 {
		return blocksearch.Errorf(blocksearch.ENOTFOUND, "no records saved for %q. Use 'blocksearch records' to see saved sources.", c.Source)
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d records for %q\n", n, c.Source)
	return nil
}
