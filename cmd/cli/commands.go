package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamed0406/pageloadtime/internal/format"
	"github.com/hamed0406/pageloadtime/internal/probe"
)

func measureCmd() *cobra.Command {
	var (
		asJSON  bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "measure <pages>",
		Short: "Time pages from this machine, e.g. measure 'a.com&b.com'",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timer := probe.NewTimer(timeout, nil, nil)
			ms, err := timer.Measure(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := format.Text(ms)
			if asJSON {
				if out, err = format.JSONFragments(ms); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON fragments instead of text")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-page request timeout")
	return cmd
}

func getCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <page>",
		Short: "Read a stored page record from the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimRight(*apiBase, "/") + "/pages/" + url.PathEscape(args[0])
			return call(cmd, http.MethodGet, target, nil)
		},
	}
}

func putCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "put <page>",
		Short: "Time a page through the API and store the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _ := json.Marshal(map[string]string{"page": args[0]})
			return call(cmd, http.MethodPost, strings.TrimRight(*apiBase, "/")+"/pages", body)
		},
	}
}

func call(cmd *cobra.Command, method, target string, body []byte) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("contacting API: %w", err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API returned status: %s", resp.Status)
	}
	return nil
}
