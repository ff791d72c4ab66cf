package main

import "fmt"

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	for _, u := range c.URLs {
		if err := deps.Results.Invalidate(deps.Ctx, u); err != nil {
			return err
		}
		if err := deps.Pages.Invalidate(deps.Ctx, u); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Forgot %s\n", u)
	}
	return nil
}
