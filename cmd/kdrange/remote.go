package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/go-sod/kdrange/internal/dataset/file"
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/ingest"
	"github.com/go-sod/kdrange/internal/search"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// remote talks to a running kdrange-srv.
type remote struct {
	server string
	client *http.Client
}

func newRemote(server string) (*remote, error) {
	var cfg httputil.ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	return &remote{server: strings.TrimRight(server, "/"), client: httputil.NewClientFromConfig(cfg)}, nil
}

func (r *remote) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.server+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("content-type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%s: %s: %s", path, resp.Status, strings.TrimSpace(string(data)))
	}
	return json.Unmarshal(data, out)
}

func (a *app) newPushCommand() *cobra.Command {
	var server, path string
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload a dataset file to a kdrange server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := file.Load(path)
			if err != nil {
				return err
			}
			r, err := newRemote(server)
			if err != nil {
				return err
			}
			req := ingest.Request{Name: set.Name, Points: make([][]float64, len(set.Points))}
			for i := range set.Points {
				req.Points[i] = set.Points[i]
			}
			var info index.Info
			if err := r.post(a.context(cmd), "/datasets", req, &info); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\npoints: %d\ndimensions: %d\ndepth: %d\n",
				info.ID, info.Len, info.Dimensions, info.Depth)
			return nil
		},
	}
	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:8787", "server address")
	cmd.Flags().StringVarP(&path, "file", "f", "", "dataset file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) newQueryCommand() *cobra.Command {
	var server, dataset, min, max string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a range query against a dataset stored on a kdrange server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := geom.Parse(min)
			if err != nil {
				return err
			}
			hi, err := geom.Parse(max)
			if err != nil {
				return err
			}
			r, err := newRemote(server)
			if err != nil {
				return err
			}
			var resp search.Response
			req := search.Request{Dataset: dataset, Ranges: []search.Range{{Min: lo, Max: hi}}}
			if err := r.post(a.context(cmd), "/search", req, &resp); err != nil {
				return err
			}
			if len(resp.Results) != 1 {
				return fmt.Errorf("expected one result, got %d", len(resp.Results))
			}
			for _, p := range resp.Results[0].Points {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:8787", "server address")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset id")
	cmd.Flags().StringVar(&min, "min", "", "lower corner, e.g. 0,0")
	cmd.Flags().StringVar(&max, "max", "", "upper corner, e.g. 10,10")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}
