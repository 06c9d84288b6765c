package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "github.com/t3mr0i/video-game-clicker-sub001/internal/cli"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/config"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/store"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/syncq"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type app struct {
	cfg     config.CLIConfig
	apiBase string
	token   string
}

func main() {
	a := &app{cfg: config.LoadCLIFromEnv()}

	root := &cobra.Command{
		Use:          "studio",
		Short:        "Game studio simulation client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.apiBase, "api", "", "studio API base URL")
	root.PersistentFlags().StringVar(&a.token, "token", "", "studio API bearer token")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(),
		newWorldCmd(a),
		newTypesCmd(a),
		newDispatchCmd(a),
		newAdvanceCmd(a),
		newHireCmd(a),
		newFireCmd(a),
		newAssignCmd(a),
		newProjectCmd(a),
		newStocksCmd(a),
		newNotifyCmd(a),
		newAchievementsCmd(a),
		newResetCmd(a),
		newSyncCmd(a),
		newActionsCmd(a),
		newReplayCmd(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) client() (*cl.Client, error) {
	sess, err := cl.LoadSession()
	if err != nil {
		return nil, err
	}
	sess = sess.Merge(a.cfg.APIBaseURL, a.cfg.APIToken)
	if a.apiBase != "" {
		sess.APIBaseURL = a.apiBase
	}
	if a.token != "" {
		sess.Token = a.token
	}
	return cl.NewClient(sess.APIBaseURL, sess.Token), nil
}

// send dispatches one action. Requests that fail in transit are queued for
// `studio sync` under the same idempotency key.
func (a *app) send(cmd *cobra.Command, action game.Action) (game.World, error) {
	client, err := a.client()
	if err != nil {
		return game.World{}, err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	idem := uuid.NewString()
	w, err := client.Dispatch(ctx, action, idem)
	if err == nil {
		return w, nil
	}
	if !cl.Retryable(err) {
		return game.World{}, err
	}
	queue, qerr := syncq.Open(a.cfg.QueueDir)
	if qerr != nil {
		return game.World{}, fmt.Errorf("%w (queue unavailable: %v)", err, qerr)
	}
	if qerr := queue.Push(action, idem); qerr != nil {
		return game.World{}, fmt.Errorf("%w (queue failed: %v)", err, qerr)
	}
	return game.World{}, fmt.Errorf("request failed, queued %s for sync: %w", action.Type, err)
}

func (a *app) world(cmd *cobra.Command) (game.World, error) {
	client, err := a.client()
	if err != nil {
		return game.World{}, err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	return client.World(ctx)
}

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Save the API address and token for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := a.apiBase
			if base == "" {
				v, err := promptOptional(fmt.Sprintf("API base URL [%s]", a.cfg.APIBaseURL))
				if err != nil {
					return err
				}
				base = v
			}
			if base == "" {
				base = a.cfg.APIBaseURL
			}
			token := a.token
			if token == "" {
				v, err := promptOptional("API token (optional)")
				if err != nil {
					return err
				}
				token = v
			}
			if err := cl.SaveSession(cl.Session{APIBaseURL: strings.TrimRight(base, "/"), Token: token}); err != nil {
				return err
			}
			printSuccess("Session saved.")
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved API address and token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Logged out.")
			return nil
		},
	}
}

func newWorldCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "world",
		Aliases: []string{"dash"},
		Short:   "Show the studio dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.world(cmd)
			if err != nil {
				return err
			}
			renderWorld(w)
			return nil
		},
	}
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List action types and the domains handling them",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			types, err := client.ActionTypes(cmd.Context())
			if err != nil {
				return err
			}
			renderActionTypes(types)
			return nil
		},
	}
}

func newDispatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch TYPE [PAYLOAD_JSON]",
		Short: "Send a raw action",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := game.ActionType(strings.ToUpper(strings.TrimSpace(args[0])))
			if !game.Known(t) {
				return fmt.Errorf("unknown action type %q", t)
			}
			var payload json.RawMessage
			if len(args) == 2 {
				payload = json.RawMessage(args[1])
			}
			action, err := game.ParseAction(t, payload)
			if err != nil {
				return err
			}
			w, err := a.send(cmd, action)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Applied %s.", t))
			renderSummary(w)
			return nil
		},
	}
}

func newAdvanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "advance [DAYS]",
		Short: "Move the calendar forward",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 1
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 1 {
					return fmt.Errorf("invalid days")
				}
				days = v
			}
			w, err := a.send(cmd, game.AdvanceTime(days))
			if err != nil {
				return err
			}
			renderSummary(w)
			return nil
		},
	}
}

func newHireCmd(a *app) *cobra.Command {
	var pool int
	cmd := &cobra.Command{
		Use:   "hire [CANDIDATE]",
		Short: "Hire from the candidate pool",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			candidates, err := client.Candidates(cmd.Context(), pool)
			if err != nil {
				return err
			}
			var pick int64
			if len(args) == 1 {
				pick, err = strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid candidate number")
				}
			} else {
				renderCandidates(candidates)
				pick, err = promptInt64("Candidate #", 1)
				if err != nil {
					return err
				}
			}
			if pick < 1 || int(pick) > len(candidates) {
				return fmt.Errorf("candidate %d not in pool", pick)
			}
			c := candidates[pick-1]
			w, err := a.send(cmd, game.HireEmployee(c.Employee, c.HiringCost))
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Hired %s (%s) for %s.", c.Employee.Name, c.Employee.Role, formatMoney(c.HiringCost)))
			renderSummary(w)
			return nil
		},
	}
	cmd.Flags().IntVar(&pool, "pool", 6, "candidate pool size")
	return cmd
}

func newFireCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fire EMPLOYEE_ID",
		Short: "Let an employee go",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.send(cmd, game.FireEmployee(args[0]))
			if err != nil {
				return err
			}
			renderSummary(w)
			return nil
		},
	}
}

func newAssignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assign EMPLOYEE_ID [PROJECT_ID]",
		Short: "Assign an employee to a project, or unassign without a project",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := ""
			if len(args) == 2 {
				project = args[1]
			}
			w, err := a.send(cmd, game.AssignEmployee(args[0], project))
			if err != nil {
				return err
			}
			renderSummary(w)
			return nil
		},
	}
}

func newProjectCmd(a *app) *cobra.Command {
	project := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Project commands",
	}
	project.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Start a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.world(cmd)
			if err != nil {
				return err
			}
			name, err := promptRequired("Name")
			if err != nil {
				return err
			}
			genre, err := promptChoice("Genre", unlockedGenres(w), unlockedGenres(w)[0])
			if err != nil {
				return err
			}
			platform, err := promptChoice("Platform", unlockedPlatforms(w), unlockedPlatforms(w)[0])
			if err != nil {
				return err
			}
			size, err := promptChoice("Size", []string{"small", "medium", "large", "aaa"}, "small")
			if err != nil {
				return err
			}
			points, err := promptFloat("Required points", 0)
			if err != nil {
				return err
			}
			w, err = a.send(cmd, game.AddProject(game.Project{
				Name:           name,
				Genre:          genre,
				Platform:       platform,
				Size:           game.ProjectSize(size),
				RequiredPoints: points,
				StartDate:      w.CurrentDate,
			}))
			if err != nil {
				return err
			}
			renderProjects(w)
			return nil
		},
	})
	project.AddCommand(&cobra.Command{
		Use:   "rm PROJECT_ID",
		Short: "Cancel a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.send(cmd, game.DeleteProject(args[0]))
			if err != nil {
				return err
			}
			renderProjects(w)
			return nil
		},
	})
	project.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.world(cmd)
			if err != nil {
				return err
			}
			renderProjects(w)
			return nil
		},
	})
	return project
}

func newStocksCmd(a *app) *cobra.Command {
	stocks := &cobra.Command{
		Use:     "stocks",
		Aliases: []string{"stock"},
		Short:   "Stock market commands",
	}
	stocks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the market and your portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.world(cmd)
			if err != nil {
				return err
			}
			renderStocks(w)
			renderPortfolio(w)
			return nil
		},
	})
	stocks.AddCommand(&cobra.Command{
		Use:   "show SYMBOL",
		Short: "Inspect one stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			st, err := client.Stock(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderStockDetail(st)
			return nil
		},
	})
	stocks.AddCommand(newTradeCmd(a, "buy"), newTradeCmd(a, "sell"))
	stocks.AddCommand(&cobra.Command{
		Use:   "watch SYMBOL",
		Short: "Add a stock to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sendSymbol(cmd, args[0], game.AddWatchlist)
		},
	})
	stocks.AddCommand(&cobra.Command{
		Use:   "unwatch SYMBOL",
		Short: "Remove a stock from the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sendSymbol(cmd, args[0], game.RemoveWatchlist)
		},
	})
	stocks.AddCommand(&cobra.Command{
		Use:   "alert SYMBOL PRICE above|below",
		Short: "Create a price alert",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, err := game.NormalizeSymbol(args[0])
			if err != nil {
				return err
			}
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil || price <= 0 {
				return fmt.Errorf("invalid price")
			}
			dir := game.AlertDirection(strings.ToLower(args[2]))
			if dir != game.AlertAbove && dir != game.AlertBelow {
				return fmt.Errorf("direction must be above or below")
			}
			w, err := a.send(cmd, game.CreatePriceAlert(symbol, price, dir))
			if err != nil {
				return err
			}
			renderPortfolio(w)
			return nil
		},
	})
	return stocks
}

func (a *app) sendSymbol(cmd *cobra.Command, raw string, build func(string) game.Action) error {
	symbol, err := game.NormalizeSymbol(raw)
	if err != nil {
		return err
	}
	w, err := a.send(cmd, build(symbol))
	if err != nil {
		return err
	}
	renderPortfolio(w)
	return nil
}

func newTradeCmd(a *app, side string) *cobra.Command {
	return &cobra.Command{
		Use:   side + " SYMBOL [SHARES]",
		Short: strings.ToUpper(side[:1]) + side[1:] + " shares at the current price",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.world(cmd)
			if err != nil {
				return err
			}
			st, err := game.ListedStock(w, args[0])
			if err != nil {
				return err
			}
			var qty float64
			if len(args) == 2 {
				qty, err = strconv.ParseFloat(args[1], 64)
				if err != nil || qty <= 0 {
					return fmt.Errorf("invalid share count")
				}
			} else {
				qty, err = promptFloat("Shares to "+side, 0)
				if err != nil {
					return err
				}
			}

			action := game.BuyStock(st.ID, qty, st.Price)
			if side == "sell" {
				action = game.SellStock(st.ID, qty, st.Price)
			}
			before := w.Money
			w, err = a.send(cmd, action)
			if err != nil {
				return err
			}
			renderTrade(side, st, qty, before, w)
			return nil
		},
	}
}

func newNotifyCmd(a *app) *cobra.Command {
	n := &cobra.Command{
		Use:     "notify",
		Aliases: []string{"inbox"},
		Short:   "Show and manage notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.world(cmd)
			if err != nil {
				return err
			}
			renderNotifications(w)
			return nil
		},
	}
	n.AddCommand(&cobra.Command{
		Use:   "rm NOTIFICATION_ID",
		Short: "Dismiss a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.send(cmd, game.RemoveNotification(args[0]))
			if err != nil {
				return err
			}
			renderNotifications(w)
			return nil
		},
	})
	n.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Dismiss every notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.send(cmd, game.ClearAllNotifications()); err != nil {
				return err
			}
			printSuccess("Inbox cleared.")
			return nil
		},
	})
	return n
}

func newAchievementsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show unlocked and pending achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			w, err := client.World(cmd.Context())
			if err != nil {
				return err
			}
			pending, err := client.PendingAchievements(cmd.Context())
			if err != nil {
				return err
			}
			renderAchievements(w, pending)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start the studio over",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := promptChoice("Reset the studio? This cannot be undone", []string{"yes", "no"}, "no")
				if err != nil {
					return err
				}
				if answer != "yes" {
					printInfo("Reset cancelled.")
					return nil
				}
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			w, err := client.Reset(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("Studio reset.")
			renderSummary(w)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Send actions queued while the API was unreachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			queue, err := syncq.Open(a.cfg.QueueDir)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			sent, err := queue.Drain(func(e syncq.Entry) error {
				_, err := client.Dispatch(ctx, e.Action, e.IdempotencyKey)
				return err
			})
			left, _ := queue.Load()
			if err != nil {
				printError(fmt.Sprintf("Sync stopped: %v", err))
			}
			if sent == 0 && len(left) == 0 && err == nil {
				printInfo("Sync queue is empty.")
				return nil
			}
			printSuccess(fmt.Sprintf("Sync complete: replayed=%d remaining=%d", sent, len(left)))
			return nil
		},
	}
}

func newActionsCmd(a *app) *cobra.Command {
	var since int
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Print the action journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			actions, err := client.Actions(cmd.Context(), since)
			if err != nil {
				return err
			}
			return renderJournal(actions, since)
		},
	}
	cmd.Flags().IntVar(&since, "since", 0, "skip the first N journal entries")
	return cmd
}

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay [JOURNAL_FILE]",
		Short: "Rebuild the World from a journal and compare it with the live one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				actions, err := store.ReadJournal(f)
				if err != nil {
					return err
				}
				rebuilt := store.Replay(actions)
				accent.Printf("\nReplayed %d action(s) from %s\n", len(actions), args[0])
				renderSummary(rebuilt)
				return nil
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			actions, err := client.Actions(ctx, 0)
			if err != nil {
				return err
			}
			live, err := client.World(ctx)
			if err != nil {
				return err
			}
			consistent, err := client.Verify(ctx)
			if err != nil {
				return err
			}
			renderReplay(len(actions), store.Replay(actions), live, consistent)
			return nil
		},
	}
}
