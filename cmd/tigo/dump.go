package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charithe/terminfo-go/capname"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <term>",
	Short: "locate, parse and print every canonical capability of a terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := args[0]
		ti, err := loadTerminfo(term)
		if err != nil {
			return err
		}

		for _, name := range capname.Bools {
			if ti.Bool(name) {
				fmt.Println(name)
			}
		}
		for _, name := range capname.Nums {
			if v, ok := ti.Number(name); ok {
				fmt.Printf("%s=%d\n", name, v)
			}
		}
		for _, name := range capname.Strings {
			if v, ok := ti.String(name); ok {
				fmt.Printf("%s=%q\n", name, v)
			}
		}
		return nil
	},
}
