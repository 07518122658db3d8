package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/charithe/terminfo-go/expand"
)

var expandCmd = &cobra.Command{
	Use:   "expand <term> <capname> [params...]",
	Short: "locate, parse and expand one string capability",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		term, capName := args[0], args[1]
		ti, err := loadTerminfo(term)
		if err != nil {
			return err
		}

		raw, ok := ti.String(capName)
		if !ok {
			return fmt.Errorf("terminal %q has no string capability %q", term, capName)
		}

		params := make([]expand.Parameter, 0, len(args)-2)
		for _, a := range args[2:] {
			if n, err := strconv.ParseInt(a, 10, 32); err == nil {
				params = append(params, expand.Number(int32(n)))
			} else {
				params = append(params, expand.String([]byte(a)))
			}
		}

		ctx := expand.NewContext()
		out, err := ctx.Expand(raw, params)
		if err != nil {
			return fmt.Errorf("expanding %q: %w", capName, err)
		}
		fmt.Print(string(out))
		return nil
	},
}
