package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/madhava-poojari/dashboard-web/internal/archive"
	"github.com/madhava-poojari/dashboard-web/internal/client"
	"github.com/madhava-poojari/dashboard-web/internal/config"
	"github.com/madhava-poojari/dashboard-web/internal/models"
	"github.com/spf13/cobra"
)

type options struct {
	students []string
	archive  bool
	token    string
}

func newRootCmd(cfg *config.Config, log *slog.Logger, out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "progress-log [student-id...]",
		Short: "Fetch student progress logs from the dashboard backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := append(append([]string{}, args...), opts.students...)
			if len(ids) == 0 {
				return fmt.Errorf("at least one student id is required")
			}

			cc := cfg.ClientConfig()
			if opts.token != "" {
				cc.AccessToken = opts.token
			}
			c, err := client.New(cc, client.WithLogger(log))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logs := map[string]models.ProgressLog{}
			if len(ids) == 1 {
				pl, err := c.GetStudentProgressLog(ctx, ids[0])
				if err != nil {
					return err
				}
				logs[ids[0]] = pl
			} else if logs, err = c.GetStudentProgressLogs(ctx, ids); err != nil {
				return err
			}

			if opts.archive {
				a := archive.New(cfg)
				for _, id := range ids {
					if len(logs[id]) == 0 {
						log.WarnContext(ctx, "no progress log to archive", slog.String("student_id", id))
						continue
					}
					key, err := a.SaveProgressLog(ctx, id, logs[id])
					if err != nil {
						return fmt.Errorf("archive %s: %w", id, err)
					}
					log.InfoContext(ctx, "archived progress log", slog.String("student_id", id), slog.String("key", key))
				}
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if len(ids) == 1 {
				return enc.Encode(logs[ids[0]])
			}
			return enc.Encode(logs)
		},
	}
	cmd.SetOut(out)
	cmd.Flags().StringArrayVarP(&opts.students, "student", "s", nil, "student id to fetch (repeatable)")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "store each fetched log in the archive")
	cmd.Flags().StringVar(&opts.token, "token", "", "bearer token for the backend (overrides BACKEND_ACCESS_TOKEN)")
	return cmd
}
