package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-sod/kdrange/internal/dataset/file"
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/spf13/cobra"
)

func (a *app) newGenCommand() *cobra.Command {
	var (
		count  int
		bounds string
		name   string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a dataset file of distinct random integer points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := geom.ParseBounds(bounds)
			if err != nil {
				return err
			}
			points, err := geom.RandomUnique(count, b)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := file.Write(w, file.PointSet{Name: name, Points: points}); err != nil {
				return fmt.Errorf("write dataset: %w", err)
			}
			logging.FromContext(a.context(cmd)).Debugf("generated %d points in %d dimensions", count, len(b))
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of points")
	cmd.Flags().StringVarP(&bounds, "bounds", "b", "-100:100,-100:100", "inclusive min:max per dimension")
	cmd.Flags().StringVar(&name, "name", "random", "dataset name")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, stdout when empty")
	return cmd
}

func (a *app) newSearchCommand() *cobra.Command {
	var (
		path     string
		min, max string
		verify   bool
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Build a tree from a dataset file and print the points inside [min, max]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromContext(a.context(cmd))
			set, tree, err := loadTree(path, 0)
			if err != nil {
				return err
			}
			lo, err := geom.Parse(min)
			if err != nil {
				return err
			}
			hi, err := geom.Parse(max)
			if err != nil {
				return err
			}

			found, err := tree.SearchRange(lo, hi)
			if err != nil {
				return err
			}
			if verify {
				expected := geom.Rect{Min: lo, Max: hi}.Filter(set.Points)
				if len(expected) != len(found) {
					return fmt.Errorf("tree found %d points, linear scan %d", len(found), len(expected))
				}
				logger.Debugf("verified %d points against a linear scan", len(found))
			}

			w := cmd.OutOrStdout()
			for _, p := range found {
				_, _ = fmt.Fprintln(w, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "dataset file")
	cmd.Flags().StringVar(&min, "min", "", "lower corner, e.g. 0,0")
	cmd.Flags().StringVar(&max, "max", "", "upper corner, e.g. 10,10")
	cmd.Flags().BoolVar(&verify, "verify", false, "compare the result size with a linear scan")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func (a *app) newInspectCommand() *cobra.Command {
	var (
		path     string
		maxDepth int
		tree     bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Build a tree from a dataset file and print its shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, t, err := loadTree(path, maxDepth)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "name: %s\npoints: %d\ndimensions: %d\ndepth: %d\n",
				set.Name, t.Len(), t.Dimensions(), t.Depth())
			if !tree {
				return nil
			}
			t.Walk(func(p kdtree.Point, depth int, leaf bool) bool {
				kind := "split"
				if leaf {
					kind = "leaf"
				}
				_, _ = fmt.Fprintf(w, "%*s%s %v\n", depth*2, "", kind, p)
				return true
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "dataset file")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "fail when the tree would be deeper, 0 disables")
	cmd.Flags().BoolVar(&tree, "tree", false, "print every node")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func loadTree(path string, maxDepth int) (file.PointSet, *kdtree.Tree, error) {
	set, err := file.Load(path)
	if err != nil {
		return file.PointSet{}, nil, err
	}
	items := make([]kdtree.Point, len(set.Points))
	for i := range set.Points {
		items[i] = set.Points[i]
	}
	var opts []kdtree.Option
	if maxDepth > 0 {
		opts = append(opts, kdtree.WithMaxDepth(maxDepth))
	}
	tree, err := kdtree.Build(items, opts...)
	if err != nil {
		return file.PointSet{}, nil, fmt.Errorf("build tree from %s: %w", path, err)
	}
	return set, tree, nil
}
