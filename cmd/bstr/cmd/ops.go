package cmd

import (
	"fmt"

	"Byte_String"

	"github.com/spf13/cobra"
)

// loadPair builds two strings from the command arguments.
func loadPair(a *app, args []string) (*Byte_String.ByteString, *Byte_String.ByteString, error) {
	left, err := Byte_String.FromString(args[0], a.opts()...)
	if err != nil {
		return nil, nil, err
	}
	right, err := Byte_String.FromString(args[1], a.opts()...)
	if err != nil {
		left.Release()
		return nil, nil, err
	}
	return left, right, nil
}

func newConcatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "concat <a> <b>",
		Short: "Print a followed by b",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, right, err := loadPair(a, args)
			if err != nil {
				return err
			}
			defer left.Release()
			defer right.Release()

			out, err := Byte_String.Concat(left, right)
			if err != nil {
				return err
			}
			defer out.Release()
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newUniqueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unique <a> <b>",
		Short: "Print the ASCII bytes of each string that the other lacks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, right, err := loadPair(a, args)
			if err != nil {
				return err
			}
			defer left.Release()
			defer right.Release()

			out, err := left.UniqueCharsWith(right)
			if err != nil {
				return err
			}
			defer out.Release()
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two strings byte by byte",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, right, err := loadPair(a, args)
			if err != nil {
				return err
			}
			defer left.Release()
			defer right.Release()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "a == b: %t\n", left.Equal(right))
			fmt.Fprintf(w, "a != b: %t\n", left.NotEqual(right))
			fmt.Fprintf(w, "a < b: %t\n", left.Less(right))
			fmt.Fprintf(w, "a > b: %t\n", left.Greater(right))
			return nil
		},
	}
}
