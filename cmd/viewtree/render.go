package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/viewtree/internal/demo"
	"github.com/vango-dev/viewtree/pkg/render"
)

func renderCmd(c *cli) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "render <scenario>",
		Short: "Print the document a scenario leaves behind",
		Long: `Run a scenario silently and print the final document as HTML.

Examples:
  viewtree render tree
  viewtree render reorder --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), c, args[0], pretty || c.cfg.Devtools.Pretty, os.Stdout)
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the output")

	return cmd
}

func runRender(ctx context.Context, c *cli, name string, pretty bool, w io.Writer) error {
	env := demo.NewEnv(io.Discard, c.engineOptions()...)
	if err := demo.Run(ctx, name, env); err != nil {
		return err
	}
	r := render.NewRenderer(render.RendererConfig{Pretty: pretty, Doctype: true})
	if err := r.RenderToWriter(w, env.Doc); err != nil {
		return err
	}
	if !pretty {
		io.WriteString(w, "\n")
	}
	return nil
}
