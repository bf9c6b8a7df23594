package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete documents from the index by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args)
		},
	}
}

func runDelete(ids []string) error {
	project, err := projectRoot()
	if err != nil {
		return err
	}
	reg, err := newRegistry(project)
	if err != nil {
		return err
	}
	ix, err := reg.GetOrInit(project)
	if err != nil {
		return err
	}

	for _, id := range ids {
		found, err := ix.Delete(id)
		if err != nil {
			return err
		}
		if found {
			fmt.Printf("deleted %s\n", id)
		} else {
			fmt.Printf("not found: %s\n", id)
		}
	}
	return nil
}
